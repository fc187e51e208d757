package bplustree

// Delete removes key from the tree. Deleting a key that is not stored leaves
// the tree untouched.
func (t *Tree) Delete(key int) {
	if t.root == nil {
		return
	}

	path := t.findLeafWithPath(key)
	leaf := path[len(path)-1].node

	idx, found := leaf.FindKeyIndex(key)
	if !found {
		return
	}
	leaf.removeKeyAt(idx)
	t.count--

	if len(path) == 1 {
		if leaf.KeyCount() == 0 {
			t.root = nil
		}
		t.check("delete")
		return
	}

	if t.underflows(leaf) {
		t.handleLeafUnderflow(path)
	}
	t.refreshSeparator(key)
	t.check("delete")
}

// refreshSeparator replaces the one separator that may still hold a deleted
// key with the smallest key now stored to its right.
func (t *Tree) refreshSeparator(key int) {
	for n := t.root; n != nil && !n.IsLeaf; {
		next := n.childIndex(key)
		if idx, found := n.FindKeyIndex(key); found {
			n.Keys[idx] = minKey(n.Children[idx+1])
			return
		}
		n = n.Children[next]
	}
}

// handleLeafUnderflow restores the minimum occupancy of the leaf at the end
// of path by borrowing from a sibling or merging with one.
func (t *Tree) handleLeafUnderflow(path []step) {
	leaf := path[len(path)-1].node
	parent := path[len(path)-2].node
	leafIdx := path[len(path)-2].child

	if leafIdx > 0 {
		left := parent.Children[leafIdx-1]
		if t.canLend(left) {
			t.borrowFromLeftLeaf(leaf, left, parent, leafIdx)
			return
		}
	}

	if leafIdx < len(parent.Children)-1 {
		right := parent.Children[leafIdx+1]
		if t.canLend(right) {
			t.borrowFromRightLeaf(leaf, right, parent, leafIdx)
			return
		}
	}

	parentPath := path[:len(path)-1]
	if leafIdx > 0 {
		t.mergeLeaves(parentPath, parent.Children[leafIdx-1], leaf, leafIdx-1)
	} else {
		t.mergeLeaves(parentPath, leaf, parent.Children[leafIdx+1], leafIdx)
	}
}

func (t *Tree) borrowFromLeftLeaf(leaf, left, parent *Node, leafIdx int) {
	key := left.removeKeyAt(left.KeyCount() - 1)
	leaf.insertKeyAt(0, key)
	parent.Keys[leafIdx-1] = leaf.Keys[0]
}

func (t *Tree) borrowFromRightLeaf(leaf, right, parent *Node, leafIdx int) {
	key := right.removeKeyAt(0)
	leaf.Keys = append(leaf.Keys, key)
	parent.Keys[leafIdx] = right.Keys[0]
}

// mergeLeaves appends right into left, unlinks right from the leaf chain and
// removes the separator between them from the parent at the end of path.
func (t *Tree) mergeLeaves(path []step, left, right *Node, keyIdx int) {
	left.Keys = append(left.Keys, right.Keys...)
	left.Next = right.Next
	t.deleteFromParent(path, keyIdx)
}

// deleteFromParent removes the separator at keyIdx and the child to its
// right from the node at the end of path, then rebalances that node.
func (t *Tree) deleteFromParent(path []step, keyIdx int) {
	parent := path[len(path)-1].node
	parent.removeKeyAt(keyIdx)
	parent.removeChildAt(keyIdx + 1)

	if len(path) == 1 {
		if parent.KeyCount() == 0 {
			t.root = parent.Children[0]
		}
		return
	}

	if t.underflows(parent) {
		t.handleInternalUnderflow(path)
	}
}

// handleInternalUnderflow restores the minimum occupancy of the internal node
// at the end of path.
func (t *Tree) handleInternalUnderflow(path []step) {
	node := path[len(path)-1].node
	parent := path[len(path)-2].node
	idx := path[len(path)-2].child

	if idx > 0 {
		left := parent.Children[idx-1]
		if t.canLend(left) {
			t.borrowFromLeftInternal(node, left, parent, idx)
			return
		}
	}

	if idx < len(parent.Children)-1 {
		right := parent.Children[idx+1]
		if t.canLend(right) {
			t.borrowFromRightInternal(node, right, parent, idx)
			return
		}
	}

	parentPath := path[:len(path)-1]
	if idx > 0 {
		t.mergeInternals(parentPath, parent.Children[idx-1], node, idx-1)
	} else {
		t.mergeInternals(parentPath, node, parent.Children[idx+1], idx)
	}
}

// borrowFromLeftInternal rotates the last child of left into node. The key
// moved down is recomputed from the subtree it now separates.
func (t *Tree) borrowFromLeftInternal(node, left, parent *Node, idx int) {
	node.insertKeyAt(0, minKey(node.Children[0]))
	node.insertChildAt(0, left.removeChildAt(len(left.Children)-1))
	parent.Keys[idx-1] = left.removeKeyAt(left.KeyCount() - 1)
}

// borrowFromRightInternal rotates the first child of right into node.
func (t *Tree) borrowFromRightInternal(node, right, parent *Node, idx int) {
	node.Keys = append(node.Keys, minKey(right.Children[0]))
	node.Children = append(node.Children, right.removeChildAt(0))
	parent.Keys[idx] = right.removeKeyAt(0)
}

// mergeInternals pulls the separator between left and right down and appends
// right into left.
func (t *Tree) mergeInternals(path []step, left, right *Node, keyIdx int) {
	left.Keys = append(left.Keys, minKey(right.Children[0]))
	left.Keys = append(left.Keys, right.Keys...)
	left.Children = append(left.Children, right.Children...)
	t.deleteFromParent(path, keyIdx)
}
