package core

import "reflect"

// identityKind classifies what produced a tree position.
type identityKind uint8

const (
	identityEmpty identityKind = iota
	identityText
	identityTag
	identityGroup
	identityFunc
	identityComponent
)

func (k identityKind) String() string {
	switch k {
	case identityEmpty:
		return "empty"
	case identityText:
		return "text"
	case identityTag:
		return "tag"
	case identityGroup:
		return "group"
	case identityFunc:
		return "func"
	case identityComponent:
		return "component"
	default:
		return "invalid"
	}
}

// identity is the resolved type of a tree position, used for reuse matching.
// It is comparable: tag carries the string tag for tag nodes, fn carries the
// function code pointer for Func and Constructor nodes.
type identity struct {
	kind identityKind
	tag  string
	fn   uintptr
}

// TreeNode is one rendered position. Nodes are fresh values every pass; only
// the Instance persists across passes. A node's identity never changes in
// place: a type change at a position always produces a new node with no
// state carried over.
type TreeNode struct {
	identity identity
	key      any
	instance *Instance
	text     string
	children []*TreeNode
	root     *rootRef
}

// Children returns the node's resolved children in document order.
func (n *TreeNode) Children() []*TreeNode {
	return n.children
}

// Text returns the node's leaf text. Non-leaf nodes and empty leaves
// return "".
func (n *TreeNode) Text() string {
	return n.text
}

// Instance returns the node's component instance, or nil for stateless
// positions.
func (n *TreeNode) Instance() *Instance {
	return n.instance
}

// Key returns the reconciliation key the node was built with, or nil.
func (n *TreeNode) Key() any {
	return n.key
}

// Kind describes what produced the node: "empty", "text", "tag", "group",
// "func", or "component".
func (n *TreeNode) Kind() string {
	return n.identity.kind.String()
}

// Tag returns the tag string for tag nodes, or "".
func (n *TreeNode) Tag() string {
	return n.identity.tag
}

// canReuse reports whether a previous node may keep its instance for a new
// value with the given identity and key: identities must be equal and keys
// must match by deep equality.
func (n *TreeNode) canReuse(id identity, key any) bool {
	if n == nil {
		return false
	}
	if n.identity != id {
		return false
	}
	return reflect.DeepEqual(n.key, key)
}
