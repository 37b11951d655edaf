// Package core provides the descriptor, component, and reconciliation
// framework.
//
// This package defines the foundational types for building declarative
// trees: Descriptor, Component, TreeNode, and Scheduler. Authors describe
// what the tree should contain; the reconciler diffs that description
// against the previous pass and updates live instances to match.
//
// # Core Types
//
// Descriptor is an immutable description of one position: a type plus
// props. Descriptors are lightweight values created freely on every pass
// with H:
//
//	core.H("item", nil, "Hello, ", core.H(Greeting, core.Props{"name": "World"}))
//
// TreeNode is the reconciler's output: one node per rendered position,
// rebuilt fresh every pass. Component instances, not nodes, persist across
// passes; a position keeps its instance while its type and key are
// unchanged there.
//
// Scheduler batches re-renders. State mutations mark a root dirty; a later
// Rerender invokes the root's registered flush callback once, and that
// callback calls Build again:
//
//	sched := core.NewScheduler()
//	var tree *core.TreeNode
//	tree = sched.Build(app(), nil, func() {
//	    tree = sched.Build(app(), tree, nil)
//	})
//
// # Components
//
// A stateless component is a Func: a plain function from props to output.
// A stateful component implements Component and is created by a Constructor
// once per mount. Embed ComponentBase for state mutation:
//
//	type counter struct {
//	    core.ComponentBase
//	}
//
//	func newCounter(props core.Props) core.Component { return &counter{} }
//
//	func (c *counter) InitialState(props core.Props) core.State {
//	    return core.State{"n": 0}
//	}
//
//	func (c *counter) Render(props core.Props, state core.State) any {
//	    return state["n"]
//	}
//
// SetState enqueues a shallow patch; nothing commits until the next Build.
// Optional capabilities are discovered by interface: StateInitializer seeds
// state at mount, DidUpdater observes completed updates, Disposable runs at
// unmount.
//
// # Rendered Values
//
// A render may return a descriptor, a string, any numeric kind, a bool,
// nil, or a slice of these. nil and booleans render empty but keep their
// position; numbers render their decimal form ("0", "NaN"). Slices and
// Group descriptors splice their children in order without adding a level.
// Anything else panics with a structured render error.
//
// # State Management
//
// Managed provides automatic re-render triggering:
//
//	s.count = core.NewManaged(s, 0)
//	s.count.Set(s.count.Value() + 1) // Marks the root dirty
//
// Observable provides thread-safe reactive values:
//
//	counter := core.NewObservable(0)
//	core.UseObservable(c, counter) // Subscribe to changes
//
// # Hooks
//
// UseController, UseListenable, and UseObservable manage resources and
// subscriptions with automatic cleanup at unmount.
package core
