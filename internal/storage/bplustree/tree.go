package bplustree

import (
	"github.com/cockroachdb/errors"

	"github.com/KilimcininKorOglu/treelab/internal/invariants"
)

// Tree is a B+ tree of distinct integer keys that splits a node once it
// reaches Order() keys.
type Tree struct {
	root  *Node
	order int
	count int
}

// New creates an empty tree with the given order. The order is not
// validated here; callers reject values below 3 before construction.
func New(order int) *Tree {
	return &Tree{order: order}
}

// Root returns the live root node, or nil when the tree is empty.
// The returned structure belongs to the tree and must not be modified.
func (t *Tree) Root() *Node {
	return t.root
}

// Order returns the split threshold m.
func (t *Tree) Order() int {
	return t.order
}

// MaxKeys returns the largest number of keys a node holds at rest.
func (t *Tree) MaxKeys() int {
	return t.order - 1
}

// MinLeafKeys returns the minimum occupancy of a non-root leaf.
func (t *Tree) MinLeafKeys() int {
	return t.order / 2
}

// MinInternalKeys returns the minimum occupancy of a non-root internal node.
func (t *Tree) MinInternalKeys() int {
	return (t.order - 1) / 2
}

// Len returns the number of keys stored in the leaves.
func (t *Tree) Len() int {
	return t.count
}

// IsEmpty returns true if the tree holds no keys.
func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// Height returns the number of levels in the tree; zero when empty.
func (t *Tree) Height() int {
	height := 0
	for n := t.root; n != nil; {
		height++
		if n.IsLeaf {
			break
		}
		n = n.Children[0]
	}
	return height
}

func (t *Tree) overflows(n *Node) bool {
	return n.KeyCount() >= t.order
}

func (t *Tree) minKeys(n *Node) int {
	if n.IsLeaf {
		return t.MinLeafKeys()
	}
	return t.MinInternalKeys()
}

func (t *Tree) underflows(n *Node) bool {
	return n.KeyCount() < t.minKeys(n)
}

func (t *Tree) canLend(n *Node) bool {
	return n.KeyCount() > t.minKeys(n)
}

// check verifies the whole tree after a mutation when invariant checking is
// compiled in.
func (t *Tree) check(op string) {
	if !invariants.Enabled {
		return
	}
	if err := t.Verify(); err != nil {
		panic(errors.AssertionFailedf("bplustree: %s broke the tree: %v", errors.Safe(op), err))
	}
}

// Stats holds structural statistics about the tree. TotalKeys counts leaf
// keys only; separators are reported separately.
type Stats struct {
	Height        int
	InternalNodes int
	LeafNodes     int
	TotalKeys     int
	Separators    int
}

// Nodes returns the total number of nodes.
func (s Stats) Nodes() int {
	return s.InternalNodes + s.LeafNodes
}

// Stats walks the tree and counts its nodes and keys.
func (t *Tree) Stats() Stats {
	stats := Stats{Height: t.Height()}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf {
			stats.LeafNodes++
			stats.TotalKeys += n.KeyCount()
			return
		}
		stats.InternalNodes++
		stats.Separators += n.KeyCount()
		for _, child := range n.Children {
			walk(child)
		}
	}
	if t.root != nil {
		walk(t.root)
	}
	return stats
}
