package snapshot

import (
	"strconv"
	"strings"

	"github.com/xlab/treeprint"
)

// EmptyLabel is printed for a nil snapshot.
const EmptyLabel = "(empty)"

// Render draws the snapshot as an indented text tree.
func Render(root *Node) string {
	if root == nil {
		return EmptyLabel + "\n"
	}

	tree := treeprint.New()
	tree.SetValue(Label(root))
	for _, child := range root.Children {
		addBranch(tree, child)
	}
	return tree.String()
}

func addBranch(parent treeprint.Tree, n *Node) {
	if len(n.Children) == 0 {
		parent.AddNode(Label(n))
		return
	}
	branch := parent.AddBranch(Label(n))
	for _, child := range n.Children {
		addBranch(branch, child)
	}
}

// Label formats the keys of a single node, e.g. "[5 | 6 | 7]". A highlighted
// node gets a trailing "*".
func Label(n *Node) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, key := range n.Keys {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(strconv.Itoa(key))
	}
	b.WriteByte(']')
	if n.Highlighted() {
		b.WriteString(" *")
	}
	return b.String()
}
