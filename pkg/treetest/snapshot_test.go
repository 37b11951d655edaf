package treetest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-graft/graft/pkg/core"
)

func TestCaptureSnapshot_NotNil(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(core.H("doc", nil, "hello"))

	snap := tester.CaptureSnapshot()
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Root == nil {
		t.Fatal("expected non-nil root")
	}
}

func TestCaptureSnapshot_TreeStructure(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(core.H("doc", nil,
		core.H("row", core.Props{core.KeyProp: "header"}, "alpha"),
		core.H(func(props core.Props) core.Component { return &tally{} }, core.Props{"start": 3}),
	))

	snap := tester.CaptureSnapshot()
	root := snap.Root
	if root == nil {
		t.Fatal("expected snapshot root")
	}
	if root.ID != "doc#0" {
		t.Errorf("root ID = %q, want %q", root.ID, "doc#0")
	}
	if root.Kind != "tag" {
		t.Errorf("root Kind = %q, want %q", root.Kind, "tag")
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}

	row := root.Children[0]
	if row.Key != "header" {
		t.Errorf("row Key = %v, want %q", row.Key, "header")
	}

	comp := root.Children[1]
	if comp.ID != "tally#0" {
		t.Errorf("component ID = %q, want %q", comp.ID, "tally#0")
	}
	if comp.Kind != "component" {
		t.Errorf("component Kind = %q, want %q", comp.Kind, "component")
	}

	if snap.Text != tester.Output() {
		t.Errorf("snapshot Text = %q, want %q", snap.Text, tester.Output())
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(core.H("doc", nil, "same"))

	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()

	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	tester := NewTesterWithT(t)

	tester.Mount(core.H("doc", nil, "before"))
	a := tester.CaptureSnapshot()

	tester.Mount(core.H("doc", nil, "after"))
	b := tester.CaptureSnapshot()

	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(core.H("doc", nil, "golden"))

	snap := tester.CaptureSnapshot()

	dir := t.TempDir()
	path := filepath.Join(dir, "testdata", "doc.snapshot.json")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	// MatchesFile should pass now
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv("GRAFT_UPDATE_SNAPSHOTS", "")
	tester := NewTesterWithT(t)
	tester.Mount(core.H("doc", nil, "missing"))
	snap := tester.CaptureSnapshot()

	// Use a recorder to intercept the Fatal
	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, filepath.Join(t.TempDir(), "absent", "snap.json"))

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv("GRAFT_UPDATE_SNAPSHOTS", "")
	tester := NewTesterWithT(t)

	tester.Mount(core.H("doc", nil, "first"))
	first := tester.CaptureSnapshot()

	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	if err := first.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}

	tester.Mount(core.H("doc", nil, "second"))
	second := tester.CaptureSnapshot()

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(core.H("doc", nil, "updated"))
	snap := tester.CaptureSnapshot()

	dir := t.TempDir()
	path := filepath.Join(dir, "update.snapshot.json")

	t.Setenv("GRAFT_UPDATE_SNAPSHOTS", "1")
	snap.MatchesFile(t, path)

	// File should now exist
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
