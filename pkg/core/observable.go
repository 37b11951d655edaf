package core

import "sync"

// Listenable notifies registered listeners when something changes.
// AddListener returns a remove function; calling it more than once is safe.
type Listenable interface {
	AddListener(listener func()) func()
}

// Notifier is a basic Listenable for controllers to embed.
//
// Example:
//
//	type ticker struct {
//	    core.Notifier
//	    frame int
//	}
//
//	func (t *ticker) Advance() {
//	    t.frame++
//	    t.Notify()
//	}
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers a listener and returns its remove function.
func (n *Notifier) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	n.mu.Lock()
	if n.listeners == nil {
		n.listeners = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = listener
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Notify invokes all registered listeners.
func (n *Notifier) Notify() {
	n.mu.Lock()
	listeners := make([]func(), 0, len(n.listeners))
	for _, l := range n.listeners {
		listeners = append(listeners, l)
	}
	n.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}

// Observable is a thread-safe reactive value. Listeners receive the new
// value after every change; with an equality function, writes of an equal
// value are suppressed.
type Observable[T any] struct {
	mu        sync.Mutex
	value     T
	equals    func(a, b T) bool
	nextID    int
	listeners map[int]func(T)
}

// NewObservable creates an observable holding the initial value.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial}
}

// NewObservableWithEquality creates an observable that skips notification
// when equals reports the new value unchanged.
func NewObservableWithEquality[T any](initial T, equals func(a, b T) bool) *Observable[T] {
	return &Observable[T]{value: initial, equals: equals}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set stores a new value and notifies listeners.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	if o.equals != nil && o.equals(o.value, value) {
		o.mu.Unlock()
		return
	}
	o.value = value
	listeners := o.snapshot()
	o.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
}

// Update applies a transformation to the current value and notifies
// listeners with the result.
func (o *Observable[T]) Update(transform func(T) T) {
	o.mu.Lock()
	value := transform(o.value)
	if o.equals != nil && o.equals(o.value, value) {
		o.mu.Unlock()
		return
	}
	o.value = value
	listeners := o.snapshot()
	o.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
}

// AddListener registers a listener and returns its remove function.
func (o *Observable[T]) AddListener(listener func(T)) func() {
	if listener == nil {
		return func() {}
	}
	o.mu.Lock()
	if o.listeners == nil {
		o.listeners = make(map[int]func(T))
	}
	id := o.nextID
	o.nextID++
	o.listeners[id] = listener
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

// ListenerCount returns the number of registered listeners.
func (o *Observable[T]) ListenerCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

func (o *Observable[T]) snapshot() []func(T) {
	listeners := make([]func(T), 0, len(o.listeners))
	for _, l := range o.listeners {
		listeners = append(listeners, l)
	}
	return listeners
}
