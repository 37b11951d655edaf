// Package treetest provides an isolated harness for component-tree tests.
//
// # Quick Start
//
// Create a tester, mount content, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := treetest.NewTesterWithT(t)
//	    tester.Mount(core.H(newCounter, core.Props{"start": 1}))
//	    tester.MustOutput(t, "count: 1")
//
//	    // Mutate state, then flush the scheduler
//	    increment()
//	    tester.Flush()
//	    tester.MustOutput(t, "count: 2")
//	}
//
// # Finding Nodes
//
// Finders locate nodes in the current tree:
//
//	if !tester.FindText("count: 2").Exists() {
//	    t.Error("expected 'count: 2' leaf")
//	}
//	keyed := tester.Find(treetest.ByKey("row-3")).First()
//
// Mount replaces the tree's content; Rebuild rebuilds the same content
// manually; Flush drains the scheduler the way an application's frame loop
// would.
//
// # Snapshot Testing
//
// Capture and compare tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	GRAFT_UPDATE_SNAPSHOTS=1 go test ./...
package treetest
