package core

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/go-graft/graft/pkg/errors"
)

var errNilComponent = fmt.Errorf("constructor returned nil component")

// resolved is a classified build value: its identity plus whatever the
// identity's kind needs to proceed (leaf text, props, raw child content, or
// the render target).
type resolved struct {
	id    identity
	text  string
	props Props
	kids  any
	fn    Func
	ctor  Constructor
	key   any
}

// resolve classifies a build value. nil and booleans are empty leaves that
// still occupy their position; strings and all numeric kinds are text
// leaves; slices are anonymous groups; descriptors carry their resolved
// type. Anything else has no defined tree mapping and fails loudly.
func resolve(value any) resolved {
	switch v := value.(type) {
	case nil:
		return resolved{id: identity{kind: identityEmpty}}
	case bool:
		return resolved{id: identity{kind: identityEmpty}}
	case string:
		return resolved{id: identity{kind: identityText}, text: v}
	case Descriptor:
		return resolveDescriptor(v)
	}
	if s, ok := numberText(value); ok {
		return resolved{id: identity{kind: identityText}, text: s}
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return resolved{id: identity{kind: identityGroup}, kids: value}
	}
	panic(&errors.RenderError{
		Component:  "core.Build",
		Value:      value,
		StackTrace: errors.CaptureStack(),
		Timestamp:  time.Now(),
	})
}

func resolveDescriptor(d Descriptor) resolved {
	key := d.Key()
	switch t := d.Type.(type) {
	case nil:
		return resolved{id: identity{kind: identityEmpty}}
	case groupType:
		return resolved{id: identity{kind: identityGroup}, kids: d.Props.Children(), key: key}
	case string:
		return resolved{id: identity{kind: identityTag, tag: t}, props: d.Props, kids: d.Props.Children(), key: key}
	case Func:
		return resolved{id: funcIdentity(identityFunc, t), fn: t, props: d.Props, key: key}
	case func(Props) any:
		return resolved{id: funcIdentity(identityFunc, t), fn: t, props: d.Props, key: key}
	case Constructor:
		return resolved{id: funcIdentity(identityComponent, t), ctor: t, props: d.Props, key: key}
	case func(Props) Component:
		return resolved{id: funcIdentity(identityComponent, t), ctor: t, props: d.Props, key: key}
	default:
		panic(&errors.RenderError{
			Component:  "core.Build",
			Value:      d.Type,
			StackTrace: errors.CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// funcIdentity keys a function type by its code pointer. Func values are not
// comparable in Go; the code pointer gives named render functions the same
// reference identity their descriptors were built with.
func funcIdentity(kind identityKind, fn any) identity {
	return identity{kind: kind, fn: reflect.ValueOf(fn).Pointer()}
}

// numberText renders any numeric kind to its decimal string form. The 'g'
// float format spells NaN as "NaN" and trims integral floats to their
// shortest form.
func numberText(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), true
	default:
		return "", false
	}
}

// flatten normalizes child content into one positional sequence: nested
// slices and Group descriptors splice their children in order without
// contributing a level of their own. nil content means no children; a nil
// inside a slice keeps its position as an empty child.
func flatten(content any) []any {
	if content == nil {
		return nil
	}
	var out []any
	flattenInto(&out, content)
	return out
}

func flattenInto(out *[]any, v any) {
	if d, ok := v.(Descriptor); ok {
		if _, group := d.Type.(groupType); group {
			if kids := d.Props.Children(); kids != nil {
				flattenInto(out, kids)
			}
			return
		}
		*out = append(*out, v)
		return
	}
	if v != nil {
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				flattenInto(out, rv.Index(i).Interface())
			}
			return
		}
	}
	*out = append(*out, v)
}

// reconcile turns a build value plus an optional previous node into a fresh
// node, reusing the previous instance when identity and key match and
// unmounting the previous subtree when they do not.
func reconcile(value any, prev *TreeNode, root *rootRef) *TreeNode {
	r := resolve(value)
	if prev != nil && !prev.canReuse(r.id, r.key) {
		unmountTree(prev)
		prev = nil
	}

	switch r.id.kind {
	case identityEmpty:
		return &TreeNode{identity: r.id}
	case identityText:
		return &TreeNode{identity: r.id, text: r.text}
	case identityGroup, identityTag:
		node := &TreeNode{identity: r.id, key: r.key}
		node.children = reconcileChildren(flatten(r.kids), childrenOf(prev), root)
		return node
	case identityFunc:
		out := r.fn(r.props)
		node := &TreeNode{identity: r.id, key: r.key}
		node.children = reconcileChildren(flatten(out), childrenOf(prev), root)
		return node
	default:
		return reconcileComponent(r, prev, root)
	}
}

func childrenOf(n *TreeNode) []*TreeNode {
	if n == nil {
		return nil
	}
	return n.children
}

// reconcileComponent mounts or updates a stateful position. Order per pass:
// props are replaced wholesale, the pending queue commits FIFO into a fresh
// state map, the component renders, children reconcile, and only then do
// DidUpdate (reused instances only) and the commit's callbacks run, in
// enqueue order.
func reconcileComponent(r resolved, prev *TreeNode, root *rootRef) *TreeNode {
	var (
		inst      *Instance
		prevKids  []*TreeNode
		prevProps Props
		prevState State
		reused    bool
	)
	if prev != nil && prev.instance != nil {
		reused = true
		inst = prev.instance
		prevKids = prev.children
		prevProps = inst.props
		prevState = inst.state
		inst.props = r.props
		inst.root = root
	} else {
		comp := r.ctor(r.props)
		if comp == nil {
			panic(&errors.RenderError{
				Component:  reflect.TypeOf(r.ctor).String(),
				Err:        errNilComponent,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
		inst = &Instance{component: comp, props: r.props, root: root}
		if cb, ok := comp.(componentBase); ok {
			cb.base().bind(inst)
		}
		if si, ok := comp.(StateInitializer); ok {
			inst.state = si.InitialState(r.props)
		}
	}

	callbacks := inst.commit()
	out := inst.component.Render(inst.props, inst.state)

	node := &TreeNode{identity: r.id, key: r.key, instance: inst}
	node.children = reconcileChildren(flatten(out), prevKids, root)

	if reused {
		if du, ok := inst.component.(DidUpdater); ok {
			du.DidUpdate(prevProps, prevState)
		}
	}
	for _, cb := range callbacks {
		cb()
	}
	return node
}

// reconcileChildren matches new child values against previous child nodes by
// position. Children beyond the new sequence's length unmount.
func reconcileChildren(values []any, prev []*TreeNode, root *rootRef) []*TreeNode {
	var out []*TreeNode
	if len(values) > 0 {
		out = make([]*TreeNode, len(values))
		for i, v := range values {
			var p *TreeNode
			if i < len(prev) {
				p = prev[i]
			}
			out[i] = reconcile(v, p, root)
		}
	}
	for i := len(values); i < len(prev); i++ {
		unmountTree(prev[i])
	}
	return out
}

// unmountTree releases a discarded subtree. The instance leaves service
// first so nothing can re-enqueue into it, children unmount before their
// owner disposes, and Dispose runs only for components that opt in.
func unmountTree(n *TreeNode) {
	if n == nil {
		return
	}
	if n.instance != nil {
		n.instance.markUnmounted()
	}
	for _, child := range n.children {
		unmountTree(child)
	}
	if n.instance != nil {
		if d, ok := n.instance.component.(Disposable); ok {
			d.Dispose()
		}
	}
}
