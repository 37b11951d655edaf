package treetest

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-graft/graft/pkg/core"
)

// Finder locates nodes in a component tree.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(root *core.TreeNode) []*core.TreeNode
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*core.TreeNode
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *core.TreeNode {
	if len(r.nodes) == 0 {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("finder found no nodes: %s", desc))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *core.TreeNode {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *core.TreeNode {
	if index < 0 || index >= len(r.nodes) {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("finder index %d out of range (found %d): %s", index, len(r.nodes), desc))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*core.TreeNode {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// --- Concrete finders ---

// textFinder matches text leaves by exact content.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root *core.TreeNode) []*core.TreeNode {
	return collectMatches(root, func(n *core.TreeNode) bool {
		return n.Text() != "" && n.Text() == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches text leaves with exact content.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches text leaves containing a substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root *core.TreeNode) []*core.TreeNode {
	return collectMatches(root, func(n *core.TreeNode) bool {
		return n.Text() != "" && strings.Contains(n.Text(), f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches text leaves containing the
// given substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// keyFinder matches nodes whose key equals the given key.
type keyFinder struct {
	key any
}

func (f *keyFinder) Evaluate(root *core.TreeNode) []*core.TreeNode {
	return collectMatches(root, func(n *core.TreeNode) bool {
		k := n.Key()
		if k == nil && f.key == nil {
			return false
		}
		// Guard against non-comparable keys (slices, maps).
		if k == nil || f.key == nil ||
			!reflect.TypeOf(k).Comparable() || !reflect.TypeOf(f.key).Comparable() {
			return reflect.DeepEqual(k, f.key)
		}
		return k == f.key
	})
}

func (f *keyFinder) Description() string {
	return fmt.Sprintf("ByKey(%v)", f.key)
}

// ByKey returns a finder that matches nodes built with the given key.
func ByKey(key any) Finder {
	return &keyFinder{key: key}
}

// predicateFinder matches nodes satisfying a predicate.
type predicateFinder struct {
	fn   func(*core.TreeNode) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *core.TreeNode) []*core.TreeNode {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches nodes satisfying fn.
func ByPredicate(fn func(*core.TreeNode) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// ByInstance returns a finder that matches nodes holding a component
// instance, in traversal order.
func ByInstance() Finder {
	return &predicateFinder{
		fn:   func(n *core.TreeNode) bool { return n.Instance() != nil },
		desc: "ByInstance()",
	}
}

// collectMatches performs a depth-first pre-order traversal, collecting
// nodes that satisfy the predicate.
func collectMatches(root *core.TreeNode, predicate func(*core.TreeNode) bool) []*core.TreeNode {
	var results []*core.TreeNode
	walkTree(root, func(n *core.TreeNode) bool {
		if predicate(n) {
			results = append(results, n)
		}
		return true
	})
	return results
}

// walkTree performs a depth-first pre-order traversal. The visitor returns
// false to stop traversal.
func walkTree(root *core.TreeNode, visitor func(*core.TreeNode) bool) {
	if root == nil {
		return
	}
	if !visitor(root) {
		return
	}
	for _, child := range root.Children() {
		walkTree(child, visitor)
	}
}
