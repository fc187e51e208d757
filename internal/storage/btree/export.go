package btree

import "github.com/KilimcininKorOglu/treelab/internal/storage/snapshot"

// Snapshot returns a detached deep copy of the tree for rendering or
// transport, or nil when the tree is empty.
func (t *Tree) Snapshot() *snapshot.Node {
	return export(t.root)
}

func export(n *Node) *snapshot.Node {
	if n == nil {
		return nil
	}

	out := &snapshot.Node{
		Keys:          append(make([]int, 0, len(n.Keys)), n.Keys...),
		Children:      make([]*snapshot.Node, 0, len(n.Children)),
		IsLeaf:        n.IsLeaf,
		IsHighlighted: snapshot.Flag(n.Highlighted),
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, export(child))
	}
	return out
}
