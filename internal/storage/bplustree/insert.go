package bplustree

// Insert adds key to the tree. Inserting a key that is already stored is a
// no-op.
func (t *Tree) Insert(key int) {
	if t.root == nil {
		leaf := newLeafNode(t.order)
		leaf.Keys = append(leaf.Keys, key)
		t.root = leaf
		t.count++
		t.check("insert")
		return
	}

	path := t.findLeafWithPath(key)
	leaf := path[len(path)-1].node

	idx, found := leaf.FindKeyIndex(key)
	if found {
		return
	}
	leaf.insertKeyAt(idx, key)
	t.count++

	if t.overflows(leaf) {
		right, separator := t.splitLeaf(leaf)
		t.insertIntoParent(path[:len(path)-1], leaf, separator, right)
	}
	t.check("insert")
}

// splitLeaf moves the upper half of leaf into a new leaf linked after it.
// It returns the new leaf and a copy of its first key for the parent.
func (t *Tree) splitLeaf(leaf *Node) (*Node, int) {
	split := t.order / 2

	right := newLeafNode(t.order)
	right.Keys = append(right.Keys, leaf.Keys[split:]...)
	leaf.Keys = leaf.Keys[:split]

	right.Next = leaf.Next
	leaf.Next = right

	return right, right.Keys[0]
}

// splitInternal moves the keys and children right of the middle key into a
// new internal node. The middle key moves up and is returned.
func (t *Tree) splitInternal(n *Node) (*Node, int) {
	split := t.order / 2
	promoted := n.Keys[split]

	right := newInternalNode(t.order)
	right.Keys = append(right.Keys, n.Keys[split+1:]...)
	right.Children = append(right.Children, n.Children[split+1:]...)

	clear(n.Children[split+1:])
	n.Keys = n.Keys[:split]
	n.Children = n.Children[:split+1]

	return right, promoted
}

// insertIntoParent places separator and right next to left in the parent at
// the end of path, splitting ancestors as far up as needed.
func (t *Tree) insertIntoParent(path []step, left *Node, separator int, right *Node) {
	if len(path) == 0 {
		t.createNewRoot(left, separator, right)
		return
	}

	parent := path[len(path)-1].node
	idx := path[len(path)-1].child
	parent.insertKeyAt(idx, separator)
	parent.insertChildAt(idx+1, right)

	if t.overflows(parent) {
		sibling, promoted := t.splitInternal(parent)
		t.insertIntoParent(path[:len(path)-1], parent, promoted, sibling)
	}
}

// createNewRoot grows the tree by one level.
func (t *Tree) createNewRoot(left *Node, separator int, right *Node) {
	root := newInternalNode(t.order)
	root.Keys = append(root.Keys, separator)
	root.Children = append(root.Children, left, right)
	t.root = root
}
