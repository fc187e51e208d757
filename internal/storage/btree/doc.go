// Package btree implements a classic in-memory B-tree of integer keys.
//
// # Overview
//
// Every node, leaf or internal, stores keys directly, so a lookup can stop at
// any depth. The tree is parameterized by its minimum degree t (the order):
//
//   - a node holds at most 2t-1 keys and, if internal, at most 2t children
//   - every node except the root holds at least t-1 keys
//   - all leaves sit at the same depth
//
// # Mutation
//
// Insert splits full nodes proactively on the way down, so the node that
// finally receives the key always has room. Delete follows the top-down
// CLRS scheme: before descending into a child with only t-1 keys the child is
// topped up by borrowing from a sibling or by merging with one.
//
// # Usage
//
//	tree := btree.New(3)
//	for _, k := range []int{10, 20, 5, 6, 12, 30, 7, 17} {
//	    tree.Insert(k)
//	}
//
//	tree.Contains(12)        // true
//	tree.Delete(6)
//	tree.InOrderTraversal()  // [5 7 10 12 17 20 30]
//
//	snap := tree.Snapshot()  // detached copy for rendering
//
// A Tree is not safe for concurrent use. Callers serialize access.
package btree
