// Package snapshot defines the acyclic, serializable copy of a search tree
// that crosses from the tree engines into renderers and transports.
package snapshot

// Node is a detached copy of one tree node. It never carries leaf-chain
// links, so a snapshot can be walked recursively or encoded as JSON without
// cycle detection.
type Node struct {
	Keys          []int   `json:"keys"`
	Children      []*Node `json:"children"`
	IsLeaf        bool    `json:"isLeaf"`
	IsHighlighted *bool   `json:"isHighlighted,omitempty"`
}

// Highlighted reports whether the node carries the highlight annotation.
func (n *Node) Highlighted() bool {
	return n != nil && n.IsHighlighted != nil && *n.IsHighlighted
}

// Clone returns a deep copy of the snapshot rooted at n.
// A nil receiver yields nil.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	out := &Node{
		Keys:     append(make([]int, 0, len(n.Keys)), n.Keys...),
		Children: make([]*Node, 0, len(n.Children)),
		IsLeaf:   n.IsLeaf,
	}
	if n.IsHighlighted != nil {
		h := *n.IsHighlighted
		out.IsHighlighted = &h
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, child.Clone())
	}
	return out
}

// Height returns the number of levels below and including n.
func (n *Node) Height() int {
	if n == nil {
		return 0
	}
	height := 1
	for len(n.Children) > 0 {
		n = n.Children[0]
		height++
	}
	return height
}

// Count returns the number of nodes in the snapshot.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	count := 1
	for _, child := range n.Children {
		count += child.Count()
	}
	return count
}

// Flag returns a pointer suitable for IsHighlighted, or nil when the node is
// not highlighted so the field is omitted from JSON.
func Flag(highlighted bool) *bool {
	if !highlighted {
		return nil
	}
	return &highlighted
}
