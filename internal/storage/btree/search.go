package btree

// Search returns the node holding key, or nil if the key is absent.
// Keys live at every depth, so the walk stops at the first match.
func (t *Tree) Search(key int) *Node {
	n := t.root
	for n != nil {
		idx, found := n.FindKeyIndex(key)
		if found {
			return n
		}
		if n.IsLeaf {
			return nil
		}
		n = n.Children[idx]
	}
	return nil
}

// Contains returns true if key is stored in the tree.
func (t *Tree) Contains(key int) bool {
	return t.Search(key) != nil
}

// InOrderTraversal returns every key in ascending order.
func (t *Tree) InOrderTraversal() []int {
	keys := make([]int, 0, t.count)
	return appendInOrder(keys, t.root)
}

func appendInOrder(keys []int, n *Node) []int {
	if n == nil {
		return keys
	}
	for i, key := range n.Keys {
		if !n.IsLeaf {
			keys = appendInOrder(keys, n.Children[i])
		}
		keys = append(keys, key)
	}
	if !n.IsLeaf {
		keys = appendInOrder(keys, n.Children[len(n.Keys)])
	}
	return keys
}

// Highlight marks the node holding key for display and clears any previous
// mark. It returns false, leaving nothing marked, when the key is absent.
func (t *Tree) Highlight(key int) bool {
	t.ClearHighlight()
	n := t.Search(key)
	if n == nil {
		return false
	}
	n.Highlighted = true
	return true
}

// ClearHighlight removes the display mark from every node.
func (t *Tree) ClearHighlight() {
	var walk func(n *Node)
	walk = func(n *Node) {
		n.Highlighted = false
		for _, child := range n.Children {
			walk(child)
		}
	}
	if t.root != nil {
		walk(t.root)
	}
}
