package treetest

import (
	"testing"

	"github.com/go-graft/graft/pkg/core"
	"github.com/go-graft/graft/pkg/text"
)

// Tester drives a component tree in isolation: it owns a scheduler and the
// current tree, and rebuilds through the same flush path an application
// uses. Zero rendering backends are involved; assertions run against the
// tree and its serialized text.
type Tester struct {
	sched   *core.Scheduler
	tree    *core.TreeNode
	content any
	builds  int
}

// NewTester creates a tester with an empty tree. Call Cleanup when done, or
// use NewTesterWithT instead.
func NewTester() *Tester {
	return &Tester{sched: core.NewScheduler()}
}

// NewTesterWithT creates a tester that unmounts via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the current tree, running every component's disposers.
func (t *Tester) Cleanup() {
	if t.tree != nil {
		t.content = nil
		t.tree = t.sched.Build(nil, t.tree, nil)
		t.tree = nil
	}
}

// Mount builds content against the current tree and keeps it as the content
// future flushes rebuild. Positions whose type is unchanged since the last
// Mount keep their instances.
func (t *Tester) Mount(content any) *core.TreeNode {
	t.content = content
	t.rebuild()
	return t.tree
}

// Rebuild rebuilds the mounted content manually, committing any pending
// state. A pending flush entry for this root is neutralized, exactly as with
// a manual Scheduler.Build.
func (t *Tester) Rebuild() *core.TreeNode {
	t.rebuild()
	return t.tree
}

func (t *Tester) rebuild() {
	t.builds++
	t.tree = t.sched.Build(t.content, t.tree, t.rebuild)
}

// Flush drains the scheduler: each dirty root rebuilds once.
func (t *Tester) Flush() {
	t.sched.Rerender()
}

// Builds reports how many times the tree has been built, flushes included.
func (t *Tester) Builds() int {
	return t.builds
}

// Pending reports how many roots await a flush. With a single mounted tree
// this is 0 or 1.
func (t *Tester) Pending() int {
	return t.sched.Pending()
}

// Tree returns the current tree root, or nil before the first Mount.
func (t *Tester) Tree() *core.TreeNode {
	return t.tree
}

// Scheduler returns the tester's scheduler for direct use.
func (t *Tester) Scheduler() *core.Scheduler {
	return t.sched
}

// Output serializes the current tree to text.
func (t *Tester) Output() string {
	return text.Render(t.tree)
}

// MustOutput fails the test when the serialized tree differs from want.
func (t *Tester) MustOutput(tb testing.TB, want string) {
	tb.Helper()
	if got := t.Output(); got != want {
		tb.Errorf("tree rendered %q, want %q", got, want)
	}
}

// Find evaluates a finder against the current tree.
func (t *Tester) Find(finder Finder) FinderResult {
	if t.tree == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		nodes:  finder.Evaluate(t.tree),
		finder: finder,
	}
}

// FindText is shorthand for Find(ByText(s)).
func (t *Tester) FindText(s string) FinderResult {
	return t.Find(ByText(s))
}

// NodeCount reports the number of nodes in the current tree, root included.
func (t *Tester) NodeCount() int {
	count := 0
	walkTree(t.tree, func(*core.TreeNode) bool {
		count++
		return true
	})
	return count
}
