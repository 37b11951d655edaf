package core

// UseController creates a controller and registers it for automatic
// disposal. The controller is disposed when the component unmounts.
//
// Example:
//
//	func newClock(props core.Props) core.Component {
//	    c := &clock{}
//	    c.ticker = core.UseController(c, func() *frameTicker {
//	        return newFrameTicker()
//	    })
//	    return c
//	}
func UseController[C Disposable](c componentBase, create func() C) C {
	base := c.base()
	controller := create()
	base.OnDispose(func() {
		controller.Dispose()
	})
	return controller
}

// UseListenable subscribes to a listenable and re-renders the component on
// every notification. The subscription is removed when the component
// unmounts.
//
// Example:
//
//	func newClock(props core.Props) core.Component {
//	    c := &clock{}
//	    c.ticker = core.UseController(c, newFrameTicker)
//	    core.UseListenable(c, c.ticker)
//	    return c
//	}
func UseListenable(c componentBase, listenable Listenable) {
	base := c.base()
	unsub := listenable.AddListener(func() {
		base.ForceUpdate(nil)
	})
	base.OnDispose(unsub)
}

// UseObservable subscribes to an observable and re-renders the component
// when it changes. Call it once from the constructor, not from Render. The
// subscription is removed when the component unmounts.
//
// Example:
//
//	func newBadge(props core.Props) core.Component {
//	    b := &badge{count: core.NewObservable(0)}
//	    core.UseObservable(b, b.count)
//	    return b
//	}
//
//	func (b *badge) Render(props core.Props, state core.State) any {
//	    return b.count.Value()
//	}
func UseObservable[T any](c componentBase, obs *Observable[T]) {
	base := c.base()
	unsub := obs.AddListener(func(T) {
		base.ForceUpdate(nil)
	})
	base.OnDispose(unsub)
}

// Managed holds a value and re-renders the owning component when it
// changes. Unlike Observable it is tied to one component and is not
// thread-safe; mutate it from the same goroutine that flushes the
// scheduler.
//
// Example:
//
//	type stepper struct {
//	    core.ComponentBase
//	    n *core.Managed[int]
//	}
//
//	func newStepper(props core.Props) core.Component {
//	    s := &stepper{}
//	    s.n = core.NewManaged(s, 0)
//	    return s
//	}
//
//	func (s *stepper) Render(props core.Props, state core.State) any {
//	    return s.n.Value()
//	}
type Managed[T any] struct {
	base  *ComponentBase
	value T
}

// NewManaged creates a new managed value owned by the given component.
// Changes to the value re-render the component on the next flush.
func NewManaged[T any](c componentBase, initial T) *Managed[T] {
	return &Managed[T]{
		base:  c.base(),
		value: initial,
	}
}

// Value returns the current value.
func (m *Managed[T]) Value() T {
	return m.value
}

// Set updates the value and marks the component for re-render.
func (m *Managed[T]) Set(value T) {
	m.value = value
	m.base.ForceUpdate(nil)
}

// Update applies a transformation to the current value and marks the
// component for re-render.
func (m *Managed[T]) Update(transform func(T) T) {
	m.value = transform(m.value)
	m.base.ForceUpdate(nil)
}
