package bplustree

// Node represents a node in the B+ tree.
// It is either an internal node (separators and child pointers) or a leaf
// (keys and a link to the next leaf).
type Node struct {
	// IsLeaf indicates whether this is a leaf node. It never changes after
	// the node is created.
	IsLeaf bool

	// Keys contains the node's keys in ascending order.
	// For internal nodes: Keys[i] is the separator between Children[i] and
	// Children[i+1] and equals the smallest key under Children[i+1].
	Keys []int

	// Children contains the owned child nodes (only used in internal nodes).
	// len(Children) = len(Keys) + 1 for internal nodes.
	Children []*Node

	// Next is the next leaf in key order, or nil for the last leaf.
	// Only valid for leaf nodes. The link does not own its target.
	Next *Node

	// Highlighted is a display annotation. The tree algorithms never read it.
	Highlighted bool
}

// newInternalNode creates a new internal node with room for order keys.
func newInternalNode(order int) *Node {
	return &Node{
		IsLeaf:   false,
		Keys:     make([]int, 0, order),
		Children: make([]*Node, 0, order+1),
	}
}

// newLeafNode creates a new leaf node with room for order keys.
func newLeafNode(order int) *Node {
	return &Node{
		IsLeaf: true,
		Keys:   make([]int, 0, order),
	}
}

// KeyCount returns the number of keys in the node.
func (n *Node) KeyCount() int {
	return len(n.Keys)
}

// FindKeyIndex returns the index where the key should be inserted
// or the index of the key if it exists.
// Returns (index, found) where found is true if the exact key exists.
func (n *Node) FindKeyIndex(key int) (int, bool) {
	low, high := 0, len(n.Keys)

	for low < high {
		mid := (low + high) / 2
		if n.Keys[mid] < key {
			low = mid + 1
		} else if n.Keys[mid] > key {
			high = mid
		} else {
			return mid, true
		}
	}

	return low, false
}

// childIndex returns the index of the child whose range holds key.
// A key equal to a separator belongs to the right of it.
func (n *Node) childIndex(key int) int {
	idx, found := n.FindKeyIndex(key)
	if found {
		return idx + 1
	}
	return idx
}

// insertKeyAt inserts a key at the specified index.
func (n *Node) insertKeyAt(index, key int) {
	n.Keys = append(n.Keys, 0)
	copy(n.Keys[index+1:], n.Keys[index:])
	n.Keys[index] = key
}

// removeKeyAt removes and returns the key at the specified index.
func (n *Node) removeKeyAt(index int) int {
	key := n.Keys[index]
	n.Keys = append(n.Keys[:index], n.Keys[index+1:]...)
	return key
}

// insertChildAt inserts a child pointer at the specified index.
func (n *Node) insertChildAt(index int, child *Node) {
	n.Children = append(n.Children, nil)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = child
}

// removeChildAt removes and returns the child at the specified index.
func (n *Node) removeChildAt(index int) *Node {
	child := n.Children[index]
	copy(n.Children[index:], n.Children[index+1:])
	n.Children[len(n.Children)-1] = nil
	n.Children = n.Children[:len(n.Children)-1]
	return child
}

// GetFirstKey returns the first key in the node and false if it is empty.
func (n *Node) GetFirstKey() (int, bool) {
	if len(n.Keys) == 0 {
		return 0, false
	}
	return n.Keys[0], true
}

// minKey returns the smallest key under n by following first children down
// to the leftmost leaf.
func minKey(n *Node) int {
	for !n.IsLeaf {
		n = n.Children[0]
	}
	key, _ := n.GetFirstKey()
	return key
}
