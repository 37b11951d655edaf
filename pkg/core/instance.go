package core

import "sync"

// stateEntry is one pending mutation: an object patch, an updater, or (for
// ForceUpdate) neither. A callback may ride on any of the three.
type stateEntry struct {
	patch    State
	update   Updater
	callback func()
}

// Instance is the persistent half of a stateful tree position. It is owned
// by exactly one TreeNode per pass and survives across passes while its
// position keeps the same type and key. Committed state changes only inside
// a reconciliation pass; SetState and friends merely enqueue.
type Instance struct {
	component Component
	props     Props
	state     State
	pending   []stateEntry
	root      *rootRef
	unmounted bool
	mu        sync.Mutex
}

// Component returns the stateful component bound to this instance.
func (in *Instance) Component() Component {
	return in.component
}

// Props returns the instance's current props. They are replaced wholesale on
// every build.
func (in *Instance) Props() Props {
	return in.props
}

// State returns the committed state as of the last completed commit.
func (in *Instance) State() State {
	return in.state
}

// enqueue appends a pending entry and schedules the owning root. Entries
// arriving after unmount are dropped: the position no longer exists, so
// there is nothing to rebuild.
func (in *Instance) enqueue(e stateEntry) {
	in.mu.Lock()
	if in.unmounted {
		in.mu.Unlock()
		return
	}
	in.pending = append(in.pending, e)
	root := in.root
	in.mu.Unlock()
	if root != nil {
		root.schedule()
	}
}

// commit snapshots and clears the pending queue, merges it FIFO into a fresh
// state map, and returns the entries' callbacks in enqueue order. The
// snapshot is taken before any render or callback runs, so a callback's own
// SetState lands in the next commit. With an empty queue it returns nil and
// leaves state untouched.
func (in *Instance) commit() []func() {
	in.mu.Lock()
	queue := in.pending
	in.pending = nil
	in.mu.Unlock()

	if len(queue) == 0 {
		return nil
	}

	next := make(State, len(in.state)+len(queue))
	for k, v := range in.state {
		next[k] = v
	}

	var callbacks []func()
	for _, e := range queue {
		patch := e.patch
		if e.update != nil {
			patch = e.update(in.props, next)
		}
		for k, v := range patch {
			next[k] = v
		}
		if e.callback != nil {
			callbacks = append(callbacks, e.callback)
		}
	}
	in.state = next
	return callbacks
}

// markUnmounted flips the instance out of service before disposal. Pending
// entries are discarded along with their callbacks.
func (in *Instance) markUnmounted() {
	in.mu.Lock()
	in.unmounted = true
	in.pending = nil
	in.mu.Unlock()
}
