// Package scene loads YAML scene documents and compiles them into build
// values for the core reconciler.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-graft/graft/pkg/core"
	"github.com/go-graft/graft/pkg/errors"
)

// Document is a parsed scene file.
type Document struct {
	Title string `yaml:"title,omitempty"`
	Root  *Node  `yaml:"root"`

	// path is the file the document came from, for error reporting.
	path string
}

// Node is one position in a scene document.
type Node struct {
	Type     string         `yaml:"type"`
	Name     string         `yaml:"name,omitempty"`
	Value    any            `yaml:"value,omitempty"`
	Key      any            `yaml:"key,omitempty"`
	Props    map[string]any `yaml:"props,omitempty"`
	Children []*Node        `yaml:"children,omitempty"`
}

// Load reads and parses a scene file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", path, err)
	}
	doc.path = path
	return doc, nil
}

// Parse parses scene YAML. A document without a root is an error.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("scene has no root node")
	}
	return &doc, nil
}

// Compiler turns documents into build values. Component constructors are
// allocated once per Compiler, so a position whose node is unchanged keeps
// its instance when an edited document recompiles: counters keep counting
// across file edits in watch mode.
type Compiler struct {
	counter core.Constructor
}

// NewCompiler creates a compiler. tick, when non-nil, advances every mounted
// counter by its step on each notification.
func NewCompiler(tick *core.Notifier) *Compiler {
	return &Compiler{counter: newCounterConstructor(tick)}
}

// Compile converts a document into a value for core.Scheduler.Build.
func (c *Compiler) Compile(doc *Document) (any, error) {
	return c.node(doc, doc.Root, "root")
}

func (c *Compiler) node(doc *Document, n *Node, pos string) (any, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Type {
	case "text":
		return n.Value, nil
	case "group":
		kids, err := c.children(doc, n, pos)
		if err != nil {
			return nil, err
		}
		return core.H(core.Group, c.props(n), kids...), nil
	case "tag":
		if n.Name == "" {
			return nil, c.fail(doc, n, fmt.Errorf("%s: tag node requires a name", pos))
		}
		kids, err := c.children(doc, n, pos)
		if err != nil {
			return nil, err
		}
		return core.H(n.Name, c.props(n), kids...), nil
	case "greeting":
		return core.H(Greeting, c.props(n)), nil
	case "repeat":
		kids, err := c.children(doc, n, pos)
		if err != nil {
			return nil, err
		}
		return core.H(Repeat, c.props(n), kids...), nil
	case "counter":
		return core.H(c.counter, c.props(n)), nil
	case "":
		return nil, c.fail(doc, n, fmt.Errorf("%s: node is missing a type", pos))
	default:
		return nil, c.fail(doc, n, fmt.Errorf("%s: unknown node kind", pos))
	}
}

func (c *Compiler) children(doc *Document, n *Node, pos string) ([]any, error) {
	if len(n.Children) == 0 {
		return nil, nil
	}
	kids := make([]any, len(n.Children))
	for i, child := range n.Children {
		v, err := c.node(doc, child, fmt.Sprintf("%s.children[%d]", pos, i))
		if err != nil {
			return nil, err
		}
		kids[i] = v
	}
	return kids, nil
}

func (c *Compiler) props(n *Node) core.Props {
	if len(n.Props) == 0 && n.Key == nil {
		return nil
	}
	p := make(core.Props, len(n.Props)+1)
	for k, v := range n.Props {
		p[k] = v
	}
	if n.Key != nil {
		p[core.KeyProp] = n.Key
	}
	return p
}

func (c *Compiler) fail(doc *Document, n *Node, err error) error {
	return &errors.SceneError{Path: doc.path, Node: n.Type, Err: err}
}

// Greeting renders "Hello, <name>!" from its name prop.
var Greeting core.Func = func(props core.Props) any {
	return "Hello, " + props.String("name") + "!"
}

// Repeat expands its children count times, joined by the separator prop.
var Repeat core.Func = func(props core.Props) any {
	count := props.Int("count")
	sep := props.String("separator")
	kids := props.Children()
	out := make([]any, 0, 2*count)
	for i := 0; i < count; i++ {
		if i > 0 && sep != "" {
			out = append(out, sep)
		}
		out = append(out, kids)
	}
	return out
}

// counter is the stateful scene component. Its state advances by the step
// prop on every tick notification.
type counter struct {
	core.ComponentBase
}

func newCounterConstructor(tick *core.Notifier) core.Constructor {
	return func(props core.Props) core.Component {
		c := &counter{}
		if tick != nil {
			unsub := tick.AddListener(func() {
				c.UpdateState(func(props core.Props, state core.State) core.State {
					n, _ := state["n"].(int)
					return core.State{"n": n + step(props)}
				}, nil)
			})
			c.OnDispose(unsub)
		}
		return c
	}
}

func step(props core.Props) int {
	if s := props.Int("step"); s != 0 {
		return s
	}
	return 1
}

func (c *counter) InitialState(props core.Props) core.State {
	return core.State{"n": props.Int("start")}
}

func (c *counter) Render(props core.Props, state core.State) any {
	label := props.String("label")
	if label == "" {
		return state["n"]
	}
	return core.H(core.Group, nil, label, state["n"])
}
