package btree

// Insert adds key to the tree. Inserting a key that is already present leaves
// the tree unchanged.
//
// Algorithm:
// 1. If the root is full, split it first so the tree grows by one level
// 2. Walk down, splitting any full child before stepping into it
// 3. Place the key in the leaf reached, which is guaranteed to have room
func (t *Tree) Insert(key int) {
	if t.root == nil {
		t.root = newNode(true, t.MaxKeys())
		t.root.Keys = append(t.root.Keys, key)
		t.count++
		t.check("insert")
		return
	}

	if t.Contains(key) {
		return
	}

	if t.isFull(t.root) {
		newRoot := newNode(false, t.MaxKeys())
		newRoot.Children = append(newRoot.Children, t.root)
		t.splitChild(newRoot, 0)
		t.root = newRoot
	}

	t.insertNonFull(t.root, key)
	t.count++
	t.check("insert")
}

// insertNonFull inserts key into the subtree rooted at n, which must not be
// full.
func (t *Tree) insertNonFull(n *Node, key int) {
	for {
		idx, _ := n.FindKeyIndex(key)

		if n.IsLeaf {
			n.insertKeyAt(idx, key)
			return
		}

		if t.isFull(n.Children[idx]) {
			t.splitChild(n, idx)
			if key > n.Keys[idx] {
				idx++
			}
		}

		n = n.Children[idx]
	}
}

// splitChild splits the full child at position index of parent. The median
// key moves up into parent at index; the upper half of the child moves into a
// new right sibling at index+1.
func (t *Tree) splitChild(parent *Node, index int) {
	degree := t.order
	child := parent.Children[index]
	sibling := newNode(child.IsLeaf, t.MaxKeys())

	median := child.Keys[degree-1]

	// Keys t..2t-2 move to the sibling.
	sibling.Keys = append(sibling.Keys, child.Keys[degree:]...)

	// Children t..2t-1 move to the sibling.
	if !child.IsLeaf {
		sibling.Children = append(sibling.Children, child.Children[degree:]...)
		clear(child.Children[degree:])
		child.Children = child.Children[:degree]
	}

	// The child keeps keys 0..t-2.
	child.Keys = child.Keys[:degree-1]

	parent.insertKeyAt(index, median)
	parent.insertChildAt(index+1, sibling)
}
