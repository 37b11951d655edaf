package treetest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-graft/graft/pkg/core"
	"github.com/go-graft/graft/pkg/text"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures a built tree's structure and its text serialization.
type Snapshot struct {
	Root *SnapshotNode `json:"root"`
	Text string        `json:"text"`
}

// SnapshotNode represents one node in the serialized tree.
type SnapshotNode struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Text     string          `json:"text,omitempty"`
	Key      any             `json:"key,omitempty"`
	Children []*SnapshotNode `json:"children,omitempty"`
}

// CaptureSnapshot captures the currently mounted tree. An empty tester
// produces a snapshot with a nil root.
func (t *Tester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	if t.tree != nil {
		counter := &typeCounter{}
		snap.Root = captureNode(t.tree, counter)
		snap.Text = text.Render(t.tree)
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When GRAFT_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("GRAFT_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: GRAFT_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: GRAFT_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line-oriented diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

// typeCounter assigns stable IDs like "counter#0", "counter#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(label string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[label]
	c.counts[label] = n + 1
	return fmt.Sprintf("%s#%d", label, n)
}

func captureNode(n *core.TreeNode, counter *typeCounter) *SnapshotNode {
	node := &SnapshotNode{
		ID:   counter.next(nodeLabel(n)),
		Kind: n.Kind(),
		Text: n.Text(),
		Key:  n.Key(),
	}
	for _, child := range n.Children() {
		node.Children = append(node.Children, captureNode(child, counter))
	}
	return node
}

// nodeLabel picks the ID label: the component's struct name for stateful
// positions, the tag for tag nodes, the kind otherwise.
func nodeLabel(n *core.TreeNode) string {
	if inst := n.Instance(); inst != nil {
		t := reflect.TypeOf(inst.Component())
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if name := t.Name(); name != "" {
			return name
		}
	}
	if tag := n.Tag(); tag != "" {
		return tag
	}
	return n.Kind()
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := len(expectedLines)
	if len(actualLines) > maxLen {
		maxLen = len(actualLines)
	}

	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
