package btree

import (
	"github.com/cockroachdb/errors"

	"github.com/KilimcininKorOglu/treelab/internal/invariants"
)

// Tree is a B-tree of distinct integer keys with minimum degree Order().
type Tree struct {
	root  *Node
	order int
	count int
}

// New creates an empty tree with the given minimum degree. The order is not
// validated here; callers reject values below 2 before construction.
func New(order int) *Tree {
	return &Tree{order: order}
}

// Root returns the live root node, or nil when the tree is empty. The
// returned structure belongs to the tree and must not be modified; use
// Snapshot to hand the tree to other components.
func (t *Tree) Root() *Node {
	return t.root
}

// Order returns the minimum degree t.
func (t *Tree) Order() int {
	return t.order
}

// MaxKeys returns the capacity of a node, 2t-1.
func (t *Tree) MaxKeys() int {
	return 2*t.order - 1
}

// MinKeys returns the minimum occupancy of a non-root node, t-1.
func (t *Tree) MinKeys() int {
	return t.order - 1
}

// Len returns the number of keys stored in the tree.
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

// isFull reports whether n cannot take another key without a split.
func (t *Tree) isFull(n *Node) bool {
	return n.KeyCount() >= t.MaxKeys()
}

// check verifies the whole tree after a mutation when invariant checking is
// compiled in.
func (t *Tree) check(op string) {
	if !invariants.Enabled {
		return
	}
	if err := t.Verify(); err != nil {
		panic(errors.AssertionFailedf("btree: %s broke the tree: %v", errors.Safe(op), err))
	}
}

// Stats holds structural statistics about the tree.
type Stats struct {
	Height        int
	InternalNodes int
	LeafNodes     int
	TotalKeys     int
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
		stats.TotalKeys += n.KeyCount()
		if n.IsLeaf {
			stats.LeafNodes++
			return
		}
		stats.InternalNodes++
		for _, child := range n.Children {
			walk(child)
		}
	}
	if t.root != nil {
		walk(t.root)
	}
	return stats
}
