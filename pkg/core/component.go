package core

import "sync"

// State holds a component's committed local state. It is replaced, never
// mutated in place, and only during a reconciliation pass.
type State map[string]any

// Updater computes a partial state from the instance's current props and the
// state accumulated so far in the same commit. The returned map is
// shallow-merged like an object patch.
type Updater func(props Props, state State) State

// Func is a stateless component: a function from props to rendered output.
// It keeps no state across builds beyond its own identity.
type Func func(props Props) any

// Component is the render contract for stateful components.
type Component interface {
	// Render produces the component's output from its current props and
	// committed state. The result may be a descriptor, a primitive, a
	// slice, or nil.
	Render(props Props, state State) any
}

// Constructor creates a stateful component for one tree position. It is
// invoked once per mount; the resulting component persists across builds
// while its position keeps the same type and key.
type Constructor func(props Props) Component

// StateInitializer seeds committed state when an instance mounts.
// Components without it start with nil state.
type StateInitializer interface {
	InitialState(props Props) State
}

// DidUpdater observes a completed update: it runs after the component's
// subtree has reconciled on every build that reused the instance, never on
// the mounting build. It runs before any SetState callbacks of that commit.
type DidUpdater interface {
	DidUpdate(prevProps Props, prevState State)
}

// Disposable releases resources when an instance unmounts.
type Disposable interface {
	Dispose()
}

// componentBase is satisfied by any struct that embeds ComponentBase.
// Hooks and NewManaged accept componentBase so callers can pass the
// component directly.
type componentBase interface {
	base() *ComponentBase
}

func (b *ComponentBase) base() *ComponentBase { return b }

// ComponentBase provides state mutation and cleanup plumbing for stateful
// components. Embed it in a component struct; the reconciler binds it to the
// owning instance at mount.
//
// Example:
//
//	type counter struct {
//	    core.ComponentBase
//	}
//
//	func newCounter(core.Props) core.Component { return &counter{} }
//
//	func (c *counter) InitialState(props core.Props) core.State {
//	    return core.State{"n": props.Int("start")}
//	}
//
//	func (c *counter) Render(props core.Props, state core.State) any {
//	    return state["n"]
//	}
type ComponentBase struct {
	inst      *Instance
	disposers []func()
	disposed  bool
	mu        sync.Mutex
}

// bind stores the owning instance for state mutations.
// The reconciler calls this when the instance mounts.
func (b *ComponentBase) bind(inst *Instance) {
	b.inst = inst
}

// Instance returns the instance this component is bound to.
// Returns nil before mount.
func (b *ComponentBase) Instance() *Instance {
	return b.inst
}

// SetState enqueues a shallow state patch and marks the owning root dirty in
// its scheduler. Committed state is untouched until the next build. The
// callback, if non-nil, fires after that build's DidUpdate, in enqueue order
// with other callbacks of the same commit. Safe to call before mount or
// after disposal (becomes a no-op).
func (b *ComponentBase) SetState(patch State, callback func()) {
	b.push(stateEntry{patch: patch, callback: callback})
}

// UpdateState enqueues an updater entry. At commit time the updater receives
// the instance's new props and the state accumulated so far, and its result
// is shallow-merged like a patch. Callback semantics match SetState.
func (b *ComponentBase) UpdateState(update Updater, callback func()) {
	b.push(stateEntry{update: update, callback: callback})
}

// ForceUpdate marks the owning root dirty without touching state. The next
// build re-renders unconditionally; nothing already rendered changes
// synchronously. The callback fires like a SetState callback.
func (b *ComponentBase) ForceUpdate(callback func()) {
	b.push(stateEntry{callback: callback})
}

func (b *ComponentBase) push(e stateEntry) {
	b.mu.Lock()
	inst := b.inst
	dead := b.disposed
	b.mu.Unlock()
	if dead || inst == nil {
		return
	}
	inst.enqueue(e)
}

// OnDispose registers a cleanup function to be called when the component is
// disposed. Returns an unregister function that can be called to remove the
// disposer. The cleanup function will only be called once.
func (b *ComponentBase) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		// Already disposed, run cleanup immediately
		cleanup()
		return func() {}
	}

	index := len(b.disposers)
	b.disposers = append(b.disposers, cleanup)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if index < len(b.disposers) {
			b.disposers[index] = nil
		}
	}
}

// RunDisposers executes all registered disposers in reverse order.
// This is called automatically by Dispose().
func (b *ComponentBase) RunDisposers() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return
	}
	b.disposed = true

	// Run disposers in reverse order (LIFO)
	for i := len(b.disposers) - 1; i >= 0; i-- {
		if b.disposers[i] != nil {
			b.disposers[i]()
		}
	}
	b.disposers = nil
}

// Dispose cleans up resources. Override this method if you need custom
// cleanup, but always call RunDisposers or ComponentBase.Dispose in your
// override.
func (b *ComponentBase) Dispose() {
	b.RunDisposers()
}

// IsDisposed returns true if this component has been disposed.
func (b *ComponentBase) IsDisposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disposed
}
