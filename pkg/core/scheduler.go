package core

import "sync"

// rootRef is the persistent registration of one root position: its
// scheduler, its flush callback, and its place in the pending set. Like
// instances, it survives across passes; the scheduler dedups by it.
type rootRef struct {
	sched     *Scheduler
	onUpdate  func()
	scheduled bool
	epoch     uint64
}

func (r *rootRef) schedule() {
	if r == nil || r.sched == nil {
		return
	}
	r.sched.schedule(r)
}

// schedEntry is one drained unit: a root plus the epoch it was scheduled
// under. An entry whose epoch no longer matches its root is stale and is
// skipped during a flush.
type schedEntry struct {
	root  *rootRef
	epoch uint64
}

// Scheduler batches dirty roots between explicit Rerender flushes. It is an
// explicit value owned by the embedding application: one per application in
// normal use, one per test for isolation. State mutations mark roots dirty
// here; nothing reconciles until the application calls Build again, either
// directly or from a flush callback.
type Scheduler struct {
	mu      sync.Mutex
	pending []schedEntry
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Build reconciles value against prev and returns the new tree root.
//
// prev carries the previous pass's root; pass nil on first build. A non-nil
// onUpdate is registered as the flush callback for this root: Rerender
// invokes it once per flush while the root is dirty, and the callback is
// expected to call Build again with the current value and previous tree.
//
// Building manually clears the root's own pending flush entry, since this
// call already reconciled what the flush would have: a Rerender after a
// manual Build does not invoke the callback again unless new mutations
// arrived in between.
//
// Pending state on reused instances commits during the pass. A panic inside
// a component render propagates to the caller untouched.
func (s *Scheduler) Build(value any, prev *TreeNode, onUpdate func()) *TreeNode {
	root := s.adoptRoot(prev, onUpdate)
	node := reconcile(value, prev, root)
	node.root = root
	return node
}

// adoptRoot carries the root registration across passes, neutralizing any
// pending flush entry for it.
func (s *Scheduler) adoptRoot(prev *TreeNode, onUpdate func()) *rootRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	var root *rootRef
	if prev != nil && prev.root != nil {
		root = prev.root
		root.scheduled = false
		root.sched = s
	} else {
		root = &rootRef{sched: s}
	}
	if onUpdate != nil {
		root.onUpdate = onUpdate
	}
	return root
}

// schedule adds a root to the pending set, once per root no matter how many
// mutations arrive before the next flush.
func (s *Scheduler) schedule(r *rootRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.scheduled {
		return
	}
	r.scheduled = true
	r.epoch++
	s.pending = append(s.pending, schedEntry{root: r, epoch: r.epoch})
}

// Rerender drains the pending set: every live root's registered flush
// callback is invoked exactly once, in first-dirtied order. The scheduler
// only notifies; the callback does the building. Mutations made while a
// callback runs schedule fresh entries for a later Rerender, never this
// one. Calling with nothing pending is a no-op.
func (s *Scheduler) Rerender() {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	for i, e := range batch {
		s.mu.Lock()
		live := e.root.scheduled && e.root.epoch == e.epoch
		if live {
			e.root.scheduled = false
		}
		cb := e.root.onUpdate
		s.mu.Unlock()
		if live && cb != nil {
			s.runCallback(cb, batch[i+1:])
		}
	}
}

// runCallback invokes one flush callback. If it panics, the unprocessed
// remainder of the batch returns to the queue before the panic continues,
// so an enqueued root still fires on the next flush.
func (s *Scheduler) runCallback(cb func(), rest []schedEntry) {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			requeued := make([]schedEntry, 0, len(rest)+len(s.pending))
			requeued = append(requeued, rest...)
			requeued = append(requeued, s.pending...)
			s.pending = requeued
			s.mu.Unlock()
			panic(r)
		}
	}()
	cb()
}

// Pending reports how many roots are awaiting a flush.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.pending {
		if e.root.scheduled && e.root.epoch == e.epoch {
			n++
		}
	}
	return n
}
