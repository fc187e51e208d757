package bplustree

import (
	"github.com/cockroachdb/errors"
)

// Verification errors.
var (
	ErrUnsortedKeys    = errors.New("keys not strictly ascending")
	ErrOccupancy       = errors.New("node occupancy out of bounds")
	ErrChildCount      = errors.New("child count does not match key count")
	ErrKeyOutOfRange   = errors.New("key outside the range allowed by its parent")
	ErrUnevenLeaves    = errors.New("leaves at different depths")
	ErrKeyCount        = errors.New("key count does not match bookkeeping")
	ErrLeafHasChildren = errors.New("leaf node has children")
	ErrStaleSeparator  = errors.New("separator differs from the first key to its right")
	ErrBrokenChain     = errors.New("leaf chain does not follow key order")
)

// keyRange bounds the keys allowed in a subtree: low is inclusive, high is
// exclusive. A nil end is unbounded.
type keyRange struct {
	low, high *int
}

func (r keyRange) contains(key int) bool {
	if r.low != nil && key < *r.low {
		return false
	}
	if r.high != nil && key >= *r.high {
		return false
	}
	return true
}

// Verify checks the structural invariants of the tree: sorted keys, node
// occupancy, child counts, separator ranges and exactness, uniform leaf
// depth, the leaf chain and the key count. It returns nil for a well-formed
// tree.
func (t *Tree) Verify() error {
	if t.root == nil {
		if t.count != 0 {
			return errors.Wrapf(ErrKeyCount, "empty tree reports %d keys", t.count)
		}
		return nil
	}

	v := verifier{tree: t, leafDepth: -1}
	if err := v.node(t.root, 0, keyRange{}); err != nil {
		return err
	}
	if v.keys != t.count {
		return errors.Wrapf(ErrKeyCount, "found %d keys, expected %d", v.keys, t.count)
	}
	return v.chain()
}

type verifier struct {
	tree      *Tree
	leafDepth int
	keys      int
	leaves    []*Node
}

func (v *verifier) node(n *Node, depth int, bounds keyRange) error {
	count := len(n.Keys)

	minKeys := v.tree.minKeys(n)
	if depth == 0 {
		minKeys = 1
	}
	if count < minKeys || count > v.tree.MaxKeys() {
		return errors.Wrapf(ErrOccupancy, "depth %d holds %d keys, allowed [%d,%d]",
			depth, count, minKeys, v.tree.MaxKeys())
	}

	for i, key := range n.Keys {
		if i > 0 && n.Keys[i-1] >= key {
			return errors.Wrapf(ErrUnsortedKeys, "depth %d keys %v", depth, n.Keys)
		}
		if !bounds.contains(key) {
			return errors.Wrapf(ErrKeyOutOfRange, "depth %d key %d", depth, key)
		}
	}

	if n.IsLeaf {
		if len(n.Children) != 0 {
			return errors.Wrapf(ErrLeafHasChildren, "depth %d has %d children", depth, len(n.Children))
		}
		if v.leafDepth == -1 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return errors.Wrapf(ErrUnevenLeaves, "leaf at depth %d, expected %d", depth, v.leafDepth)
		}
		v.keys += count
		v.leaves = append(v.leaves, n)
		return nil
	}

	if len(n.Children) != count+1 {
		return errors.Wrapf(ErrChildCount, "depth %d has %d keys and %d children",
			depth, count, len(n.Children))
	}
	if n.Next != nil {
		return errors.Wrapf(ErrBrokenChain, "internal node at depth %d has a next link", depth)
	}

	for i, child := range n.Children {
		childBounds := bounds
		if i > 0 {
			childBounds.low = &n.Keys[i-1]
		}
		if i < count {
			childBounds.high = &n.Keys[i]
		}
		if err := v.node(child, depth+1, childBounds); err != nil {
			return err
		}
		if i > 0 {
			if first := minKey(child); first != n.Keys[i-1] {
				return errors.Wrapf(ErrStaleSeparator, "depth %d separator %d, subtree starts at %d",
					depth, n.Keys[i-1], first)
			}
		}
	}
	return nil
}

// chain checks that the next links visit the leaves in the order the tree
// holds them and that the last leaf ends the chain.
func (v *verifier) chain() error {
	for i, leaf := range v.leaves {
		var want *Node
		if i+1 < len(v.leaves) {
			want = v.leaves[i+1]
		}
		if leaf.Next != want {
			return errors.Wrapf(ErrBrokenChain, "leaf %d of %d links to the wrong node", i, len(v.leaves))
		}
	}
	return nil
}
