package bplustree

// step records a node visited on the way down and the index of the child
// taken from it. The leaf at the end of a path has child -1.
type step struct {
	node  *Node
	child int
}

// findLeafWithPath descends from the root to the leaf whose range holds key,
// recording every node visited. The tree must not be empty.
func (t *Tree) findLeafWithPath(key int) []step {
	path := make([]step, 0, t.Height())
	n := t.root
	for !n.IsLeaf {
		idx := n.childIndex(key)
		path = append(path, step{node: n, child: idx})
		n = n.Children[idx]
	}
	return append(path, step{node: n, child: -1})
}

// findLeaf returns the leaf whose range holds key, or nil for an empty tree.
func (t *Tree) findLeaf(key int) *Node {
	n := t.root
	if n == nil {
		return nil
	}
	for !n.IsLeaf {
		n = n.Children[n.childIndex(key)]
	}
	return n
}

// findLeftmostLeaf returns the first leaf of the chain, or nil when empty.
func (t *Tree) findLeftmostLeaf() *Node {
	n := t.root
	if n == nil {
		return nil
	}
	for !n.IsLeaf {
		n = n.Children[0]
	}
	return n
}

// Search returns the leaf holding key, or nil if the key is not stored.
// Separators are never reported as hits.
func (t *Tree) Search(key int) *Node {
	leaf := t.findLeaf(key)
	if leaf == nil {
		return nil
	}
	if _, found := leaf.FindKeyIndex(key); found {
		return leaf
	}
	return nil
}

// Contains reports whether key is stored in the tree.
func (t *Tree) Contains(key int) bool {
	return t.Search(key) != nil
}

// TraverseLeaves returns all keys in ascending order by walking the leaf
// chain from the leftmost leaf.
func (t *Tree) TraverseLeaves() []int {
	keys := make([]int, 0, t.count)
	for leaf := t.findLeftmostLeaf(); leaf != nil; leaf = leaf.Next {
		keys = append(keys, leaf.Keys...)
	}
	return keys
}

// Highlight marks the leaf holding key and clears any earlier mark.
// It returns false if the key is not stored.
func (t *Tree) Highlight(key int) bool {
	t.ClearHighlight()
	leaf := t.Search(key)
	if leaf == nil {
		return false
	}
	leaf.Highlighted = true
	return true
}

// ClearHighlight removes every display mark in the tree.
func (t *Tree) ClearHighlight() {
	var clearNode func(n *Node)
	clearNode = func(n *Node) {
		n.Highlighted = false
		for _, child := range n.Children {
			clearNode(child)
		}
	}
	if t.root != nil {
		clearNode(t.root)
	}
}
