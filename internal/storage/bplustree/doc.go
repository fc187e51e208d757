// Package bplustree implements an in-memory B+ tree of integer keys.
//
// # Overview
//
// Only leaves hold keys authoritatively. Internal nodes hold separators,
// copies of the first key of the leaf range to their right, used purely for
// routing. Leaves are linked left to right so a full ordered scan never has
// to climb back up the tree.
//
// # Capacity
//
// The tree is parameterized by its order m:
//
//   - any node splits as soon as it holds m keys, so m-1 keys fit
//   - a leaf other than the root keeps at least floor(m/2) keys
//   - an internal node other than the root keeps at least floor((m-1)/2) keys
//
// # Usage
//
//	tree := bplustree.New(3)
//	for k := 1; k <= 7; k++ {
//	    tree.Insert(k)
//	}
//
//	tree.Contains(4)        // true
//	tree.Delete(5)
//	tree.TraverseLeaves()   // [1 2 3 4 6 7]
//
//	snap := tree.Snapshot() // detached copy without leaf links
//
// A Tree is not safe for concurrent use. Callers serialize access.
package bplustree
