package workbench

import (
	"github.com/KilimcininKorOglu/treelab/internal/storage/bplustree"
	"github.com/KilimcininKorOglu/treelab/internal/storage/btree"
	"github.com/KilimcininKorOglu/treelab/internal/storage/snapshot"
)

// Engine is the behavior the workbench needs from a tree.
type Engine interface {
	Insert(key int)
	Delete(key int)
	Contains(key int) bool
	Highlight(key int) bool
	ClearHighlight()
	// Keys returns every stored key in ascending order.
	Keys() []int
	Snapshot() *snapshot.Node
	Len() int
	Order() int
	Stats() Stats
	Verify() error
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Height        int `json:"height"`
	InternalNodes int `json:"internalNodes"`
	LeafNodes     int `json:"leafNodes"`
	Keys          int `json:"keys"`
	Separators    int `json:"separators"`
	MaxKeys       int `json:"maxKeys"`
	MinKeys       int `json:"minKeys"`
}

// btreeEngine adapts a B-tree to Engine.
type btreeEngine struct {
	*btree.Tree
}

func newBTree(order int) Engine {
	return btreeEngine{btree.New(order)}
}

func (e btreeEngine) Keys() []int {
	return e.InOrderTraversal()
}

func (e btreeEngine) Stats() Stats {
	s := e.Tree.Stats()
	return Stats{
		Height:        s.Height,
		InternalNodes: s.InternalNodes,
		LeafNodes:     s.LeafNodes,
		Keys:          s.TotalKeys,
		MaxKeys:       e.MaxKeys(),
		MinKeys:       e.MinKeys(),
	}
}

// bplustreeEngine adapts a B+ tree to Engine.
type bplustreeEngine struct {
	*bplustree.Tree
}

func newBPlusTree(order int) Engine {
	return bplustreeEngine{bplustree.New(order)}
}

func (e bplustreeEngine) Keys() []int {
	return e.TraverseLeaves()
}

func (e bplustreeEngine) Stats() Stats {
	s := e.Tree.Stats()
	return Stats{
		Height:        s.Height,
		InternalNodes: s.InternalNodes,
		LeafNodes:     s.LeafNodes,
		Keys:          s.TotalKeys,
		Separators:    s.Separators,
		MaxKeys:       e.MaxKeys(),
		MinKeys:       e.MinLeafKeys(),
	}
}
