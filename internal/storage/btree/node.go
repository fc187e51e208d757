package btree

// Node is a B-tree node. Keys are strictly ascending. An internal node owns
// len(Keys)+1 children; a leaf owns none.
type Node struct {
	// Keys holds the node's keys in ascending order.
	Keys []int

	// Children holds the owned subtrees. Children[i] covers the keys below
	// Keys[i]; the last child covers the keys above the last key.
	Children []*Node

	// IsLeaf is fixed when the node is created.
	IsLeaf bool

	// Highlighted is a display annotation. The tree algorithms never read it.
	Highlighted bool
}

// newNode creates an empty node with room for capacity keys.
func newNode(isLeaf bool, capacity int) *Node {
	n := &Node{
		IsLeaf: isLeaf,
		Keys:   make([]int, 0, capacity),
	}
	if !isLeaf {
		n.Children = make([]*Node, 0, capacity+1)
	}
	return n
}

// KeyCount returns the number of keys in the node.
func (n *Node) KeyCount() int {
	return len(n.Keys)
}

// FindKeyIndex returns the index of the first key not less than key, and
// whether that key equals key.
func (n *Node) FindKeyIndex(key int) (int, bool) {
	low, high := 0, len(n.Keys)

	for low < high {
		mid := (low + high) / 2
		switch {
		case n.Keys[mid] < key:
			low = mid + 1
		case n.Keys[mid] > key:
			high = mid
		default:
			return mid, true
		}
	}

	return low, false
}

// insertKeyAt inserts key at index, shifting the following keys right.
func (n *Node) insertKeyAt(index, key int) {
	n.Keys = append(n.Keys, 0)
	copy(n.Keys[index+1:], n.Keys[index:])
	n.Keys[index] = key
}

// removeKeyAt removes and returns the key at index.
func (n *Node) removeKeyAt(index int) int {
	key := n.Keys[index]
	n.Keys = append(n.Keys[:index], n.Keys[index+1:]...)
	return key
}

// insertChildAt inserts child at index, shifting the following children right.
func (n *Node) insertChildAt(index int, child *Node) {
	n.Children = append(n.Children, nil)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = child
}

// removeChildAt removes and returns the child at index.
func (n *Node) removeChildAt(index int) *Node {
	child := n.Children[index]
	copy(n.Children[index:], n.Children[index+1:])
	n.Children[len(n.Children)-1] = nil
	n.Children = n.Children[:len(n.Children)-1]
	return child
}

// popKey removes and returns the last key.
func (n *Node) popKey() int {
	key := n.Keys[len(n.Keys)-1]
	n.Keys = n.Keys[:len(n.Keys)-1]
	return key
}

// popChild removes and returns the last child.
func (n *Node) popChild() *Node {
	last := len(n.Children) - 1
	child := n.Children[last]
	n.Children[last] = nil
	n.Children = n.Children[:last]
	return child
}
