// Package text serializes component trees to plain text.
//
// The core stringifies leaf values while it builds; this package only
// concatenates. Render backends with real layout needs walk the tree
// themselves.
package text

import (
	"io"
	"strings"

	"github.com/go-graft/graft/pkg/core"
)

// Render returns the concatenated text of every leaf under root, in document
// order. Empty leaves contribute nothing. A nil root renders as "".
func Render(root *core.TreeNode) string {
	var sb strings.Builder
	walk(root, &sb)
	return sb.String()
}

func walk(n *core.TreeNode, sb *strings.Builder) {
	if n == nil {
		return
	}
	sb.WriteString(n.Text())
	for _, child := range n.Children() {
		walk(child, sb)
	}
}

// Fprint streams the output of Render to w, stopping at the first write
// error.
func Fprint(w io.Writer, root *core.TreeNode) error {
	if root == nil {
		return nil
	}
	if t := root.Text(); t != "" {
		if _, err := io.WriteString(w, t); err != nil {
			return err
		}
	}
	for _, child := range root.Children() {
		if err := Fprint(w, child); err != nil {
			return err
		}
	}
	return nil
}
