package btree

import (
	"github.com/cockroachdb/errors"

	"github.com/KilimcininKorOglu/treelab/internal/invariants"
)

// Delete removes key from the tree. Deleting an absent key, or deleting from
// an empty tree, is a no-op.
//
// Algorithm (top-down, single pass):
// 1. If the key sits in a leaf, remove it
// 2. If the key sits in an internal node, replace it with its predecessor or
//    successor when the neighbouring child can spare a key, otherwise merge
//    the two children around it and continue in the merged node
// 3. Before stepping into a child holding only t-1 keys, borrow a key from a
//    sibling or merge with one
// 4. If the root ends up without keys, its only child becomes the root
func (t *Tree) Delete(key int) {
	if t.root == nil || !t.Contains(key) {
		return
	}

	t.deleteFrom(t.root, key)
	t.count--

	if t.root.KeyCount() == 0 {
		if t.root.IsLeaf {
			t.root = nil
		} else {
			t.root = t.root.Children[0]
		}
	}

	t.check("delete")
}

// deleteFrom removes key from the subtree rooted at n. Every node it descends
// into holds at least t keys, except possibly the root.
func (t *Tree) deleteFrom(n *Node, key int) {
	idx, found := n.FindKeyIndex(key)

	if found {
		if n.IsLeaf {
			n.removeKeyAt(idx)
			return
		}
		t.deleteInternalKey(n, idx)
		return
	}

	if n.IsLeaf {
		return
	}

	if n.Children[idx].KeyCount() < t.order {
		t.fillChild(n, idx)
	}

	// Filling the last child may merge it into its left sibling, which then
	// holds the range being searched.
	if idx > n.KeyCount() {
		idx--
	}

	t.deleteFrom(n.Children[idx], key)
}

// deleteInternalKey removes n.Keys[idx] from the internal node n.
func (t *Tree) deleteInternalKey(n *Node, idx int) {
	key := n.Keys[idx]
	left := n.Children[idx]
	right := n.Children[idx+1]

	switch {
	case left.KeyCount() >= t.order:
		pred := maxKey(left)
		n.Keys[idx] = pred
		t.deleteFrom(left, pred)
	case right.KeyCount() >= t.order:
		succ := minKey(right)
		n.Keys[idx] = succ
		t.deleteFrom(right, succ)
	default:
		t.merge(n, idx)
		t.deleteFrom(left, key)
	}
}

// maxKey returns the largest key in the subtree rooted at n.
func maxKey(n *Node) int {
	for !n.IsLeaf {
		n = n.Children[len(n.Children)-1]
	}
	return n.Keys[len(n.Keys)-1]
}

// minKey returns the smallest key in the subtree rooted at n.
func minKey(n *Node) int {
	for !n.IsLeaf {
		n = n.Children[0]
	}
	return n.Keys[0]
}

// fillChild tops up parent.Children[idx], which holds t-1 keys.
func (t *Tree) fillChild(parent *Node, idx int) {
	last := parent.KeyCount()

	switch {
	case idx > 0 && parent.Children[idx-1].KeyCount() >= t.order:
		t.borrowFromLeft(parent, idx)
	case idx < last && parent.Children[idx+1].KeyCount() >= t.order:
		t.borrowFromRight(parent, idx)
	case idx < last:
		t.merge(parent, idx)
	default:
		t.merge(parent, idx-1)
	}
}

// borrowFromLeft rotates one key from the left sibling through the parent
// into parent.Children[idx].
func (t *Tree) borrowFromLeft(parent *Node, idx int) {
	child := parent.Children[idx]
	sibling := parent.Children[idx-1]

	child.insertKeyAt(0, parent.Keys[idx-1])
	parent.Keys[idx-1] = sibling.popKey()

	if !child.IsLeaf {
		child.insertChildAt(0, sibling.popChild())
	}
}

// borrowFromRight rotates one key from the right sibling through the parent
// into parent.Children[idx].
func (t *Tree) borrowFromRight(parent *Node, idx int) {
	child := parent.Children[idx]
	sibling := parent.Children[idx+1]

	child.Keys = append(child.Keys, parent.Keys[idx])
	parent.Keys[idx] = sibling.removeKeyAt(0)

	if !child.IsLeaf {
		child.Children = append(child.Children, sibling.removeChildAt(0))
	}
}

// merge folds parent.Keys[idx] and parent.Children[idx+1] into
// parent.Children[idx] and discards the right sibling.
func (t *Tree) merge(parent *Node, idx int) {
	if invariants.Enabled && (idx < 0 || idx+1 >= len(parent.Children)) {
		panic(errors.AssertionFailedf("btree: merge index %d outside %d children", idx, len(parent.Children)))
	}

	child := parent.Children[idx]
	sibling := parent.Children[idx+1]

	child.Keys = append(child.Keys, parent.Keys[idx])
	child.Keys = append(child.Keys, sibling.Keys...)
	if !child.IsLeaf {
		child.Children = append(child.Children, sibling.Children...)
	}

	parent.removeKeyAt(idx)
	parent.removeChildAt(idx + 1)
}
