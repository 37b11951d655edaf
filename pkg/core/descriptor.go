package core

// Reserved props keys.
const (
	// ChildrenProp carries a descriptor's child content: a single value,
	// a nested slice, or absent.
	ChildrenProp = "children"
	// KeyProp carries the reconciliation key compared during reuse decisions.
	KeyProp = "key"
)

// Props holds a component's configuration, including its children.
// Props passed to H are copied, so a built descriptor's props cannot be
// mutated through the caller's map.
type Props map[string]any

// Children returns the child content stored under ChildrenProp, or nil.
func (p Props) Children() any {
	if p == nil {
		return nil
	}
	return p[ChildrenProp]
}

// Key returns the reconciliation key stored under KeyProp, or nil.
func (p Props) Key() any {
	if p == nil {
		return nil
	}
	return p[KeyProp]
}

// String returns the named prop as a string, or "" when absent or not a string.
func (p Props) String(name string) string {
	if s, ok := p[name].(string); ok {
		return s
	}
	return ""
}

// Int returns the named prop as an int, converting from any numeric type.
// Returns 0 when the prop is absent or non-numeric.
func (p Props) Int(name string) int {
	n, _ := toInt(p[name])
	return n
}

// Float returns the named prop as a float64, converting from any numeric type.
// Returns 0 when the prop is absent or non-numeric.
func (p Props) Float(name string) float64 {
	f, _ := toFloat64(p[name])
	return f
}

// Bool returns the named prop as a bool, or false when absent or not a bool.
func (p Props) Bool(name string) bool {
	b, _ := p[name].(bool)
	return b
}

// toInt converts various numeric types to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// toFloat64 converts various numeric types to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Descriptor is an immutable description of one rendered position: a type
// plus its props. The type is a string tag, the Group marker, a Func, or a
// Constructor. Descriptors are plain data; all behavior lives in the
// reconciler.
type Descriptor struct {
	Type  any
	Props Props
}

// Key returns the descriptor's reconciliation key, or nil.
func (d Descriptor) Key() any {
	return d.Props.Key()
}

// groupType is the type of the Group marker.
type groupType struct{}

// Group is the structural splice marker. A descriptor whose Type is Group
// renders its children in order without contributing a wrapper of its own:
// in a child list it splices inline; at the root it produces a group node.
var Group groupType

// H constructs a Descriptor. The props map is copied. A single trailing
// child is stored verbatim under ChildrenProp; multiple children are stored
// as a []any in order. With no trailing children, any "children" entry
// already present in props is kept.
func H(typ any, props Props, children ...any) Descriptor {
	p := make(Props, len(props)+1)
	for k, v := range props {
		p[k] = v
	}
	switch len(children) {
	case 0:
	case 1:
		p[ChildrenProp] = children[0]
	default:
		kids := make([]any, len(children))
		copy(kids, children)
		p[ChildrenProp] = kids
	}
	return Descriptor{Type: typ, Props: p}
}
