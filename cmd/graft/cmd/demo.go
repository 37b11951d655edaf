package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/go-graft/graft/pkg/core"
	"github.com/go-graft/graft/pkg/text"
)

func init() {
	RegisterCommand(&Command{
		Name:  "demo",
		Short: "Run a built-in reconciliation demo",
		Long: `Run one of the built-in demos. Each demo drives the scheduler for a
number of frames and prints the rendered tree after every frame.

Demos:
  counter    state patches through SetState, flushed per frame
  clock      an observable time source plus UpdateState tick counting
  greeting   changing props reconciled onto the same live instance

Examples:
  graft demo counter
  graft demo clock --frames 10
  graft demo --list`,
		Usage: "graft demo [name] [--frames N] [--list]",
		Run:   runDemo,
	})
}

// Demo represents a built-in demo program.
type Demo struct {
	Name     string
	Title    string
	Subtitle string
	Run      func(frames int) error
}

// demos is the registry of built-in demos.
// Add new demos here to automatically update `graft demo --list`.
var demos = []Demo{
	{"counter", "Counter", "State patches through SetState, one flush per frame", runCounterDemo},
	{"clock", "Clock", "Observable time source with UpdateState tick counting", runClockDemo},
	{"greeting", "Greeting", "Changing props reconciled onto the same instance", runGreetingDemo},
}

func runDemo(args []string) error {
	frames := 5
	list := false
	name := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--list":
			list = true
		case "--frames":
			if i+1 >= len(args) {
				return fmt.Errorf("--frames requires a number")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid frame count %q", args[i+1])
			}
			frames = n
			i++
		default:
			if strings.HasPrefix(args[i], "--") {
				return fmt.Errorf("unknown flag %q for demo", args[i])
			}
			if name != "" {
				return fmt.Errorf("unexpected argument %q", args[i])
			}
			name = args[i]
		}
	}

	if list || name == "" {
		printDemoList()
		return nil
	}

	for _, d := range demos {
		if d.Name == name {
			return d.Run(frames)
		}
	}

	valid := make([]string, len(demos))
	for i, d := range demos {
		valid[i] = d.Name
	}
	return fmt.Errorf("unknown demo %q (available: %s)", name, strings.Join(valid, ", "))
}

func printDemoList() {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Name", "Title", "Description"})
	for _, d := range demos {
		t.AppendRow(table.Row{d.Name, d.Title, d.Subtitle})
	}
	t.Render()
	fmt.Println()
	fmt.Println("Run a demo with: graft demo <name>")
}

// demoCounter keeps a single counter in component state.
type demoCounter struct {
	core.ComponentBase
}

func (c *demoCounter) InitialState(core.Props) core.State {
	return core.State{"n": 0}
}

func (c *demoCounter) Render(props core.Props, state core.State) any {
	return core.H(core.Group, nil, "count: ", state["n"])
}

// runCounterDemo patches state with SetState and flushes once per frame.
func runCounterDemo(frames int) error {
	var inst *demoCounter
	ctor := func(core.Props) core.Component {
		inst = &demoCounter{}
		return inst
	}

	sched := core.NewScheduler()
	var tree *core.TreeNode
	var rebuild func()
	rebuild = func() {
		tree = sched.Build(core.H(ctor, nil), tree, rebuild)
		fmt.Println(text.Render(tree))
	}
	rebuild()

	for i := 1; i < frames; i++ {
		inst.SetState(core.State{"n": i}, nil)
		sched.Rerender()
	}
	return nil
}

// demoClock renders an observable time source and counts ticks in state.
type demoClock struct {
	core.ComponentBase
	now *core.Observable[string]
}

func (c *demoClock) InitialState(core.Props) core.State {
	return core.State{"ticks": 0}
}

func (c *demoClock) Render(props core.Props, state core.State) any {
	return core.H(core.Group, nil, c.now.Value(), " (tick ", state["ticks"], ")")
}

// runClockDemo advances an observable clock one second per frame. The
// observable notification and the UpdateState patch coalesce into a single
// rebuild per flush.
func runClockDemo(frames int) error {
	base := time.Now()

	var inst *demoClock
	ctor := func(core.Props) core.Component {
		inst = &demoClock{now: core.NewObservable(base.Format("15:04:05"))}
		core.UseObservable(inst, inst.now)
		return inst
	}

	sched := core.NewScheduler()
	var tree *core.TreeNode
	var rebuild func()
	rebuild = func() {
		tree = sched.Build(core.H(ctor, nil), tree, rebuild)
		fmt.Println(text.Render(tree))
	}
	rebuild()

	for i := 1; i < frames; i++ {
		inst.now.Set(base.Add(time.Duration(i) * time.Second).Format("15:04:05"))
		inst.UpdateState(func(_ core.Props, state core.State) core.State {
			n, _ := state["ticks"].(int)
			return core.State{"ticks": n + 1}
		}, nil)
		sched.Rerender()
	}
	return nil
}

// demoGreeter tracks how many times it has rendered, proving the instance
// survives prop changes.
type demoGreeter struct {
	core.ComponentBase
	renders int
}

func (g *demoGreeter) Render(props core.Props, state core.State) any {
	g.renders++
	return core.H(core.Group, nil, "Hello, ", props.String("name"), "! (render ", g.renders, ")")
}

// runGreetingDemo rebuilds with different props each frame. The render count
// in the output comes from a field on the instance, so it only grows if
// reconciliation reuses the instance instead of remounting it.
func runGreetingDemo(frames int) error {
	names := []string{"John", "Paul", "George", "Ringo"}

	ctor := func(core.Props) core.Component { return &demoGreeter{} }

	sched := core.NewScheduler()
	var tree *core.TreeNode
	for i := 0; i < frames; i++ {
		name := names[i%len(names)]
		tree = sched.Build(core.H(ctor, core.Props{"name": name}), tree, nil)
		fmt.Println(text.Render(tree))
	}
	return nil
}
