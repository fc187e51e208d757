package bplustree

import (
	"fmt"
	"math/rand"
	"testing"
)

// benchmarkOrders covers the smallest, a middling and the largest order.
var benchmarkOrders = []int{3, 6, 10}

func filledTree(order, n int) *Tree {
	tree := New(order)
	for i := 0; i < n; i++ {
		tree.Insert(i)
	}
	return tree
}

// BenchmarkInsertAscending benchmarks inserting increasing keys.
func BenchmarkInsertAscending(b *testing.B) {
	for _, order := range benchmarkOrders {
		b.Run(fmt.Sprintf("order=%d", order), func(b *testing.B) {
			tree := New(order)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				tree.Insert(i)
			}
		})
	}
}

// BenchmarkInsertRandom benchmarks inserting keys in random order.
func BenchmarkInsertRandom(b *testing.B) {
	for _, order := range benchmarkOrders {
		b.Run(fmt.Sprintf("order=%d", order), func(b *testing.B) {
			keys := rand.New(rand.NewSource(1)).Perm(b.N)
			tree := New(order)
			b.ResetTimer()
			b.ReportAllocs()
			for _, k := range keys {
				tree.Insert(k)
			}
		})
	}
}

// BenchmarkContains benchmarks point lookups in a tree of 10000 keys.
func BenchmarkContains(b *testing.B) {
	const numKeys = 10000
	for _, order := range benchmarkOrders {
		b.Run(fmt.Sprintf("order=%d", order), func(b *testing.B) {
			tree := filledTree(order, numKeys)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tree.Contains(i % numKeys)
			}
		})
	}
}

// BenchmarkInsertDelete benchmarks a delete followed by a re-insert of the
// same key, which exercises underflow repair and splits at steady size.
func BenchmarkInsertDelete(b *testing.B) {
	const numKeys = 10000
	for _, order := range benchmarkOrders {
		b.Run(fmt.Sprintf("order=%d", order), func(b *testing.B) {
			tree := filledTree(order, numKeys)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				k := (i * 7919) % numKeys
				tree.Delete(k)
				tree.Insert(k)
			}
		})
	}
}

// BenchmarkSnapshot benchmarks exporting a tree of 1000 keys.
func BenchmarkSnapshot(b *testing.B) {
	for _, order := range benchmarkOrders {
		b.Run(fmt.Sprintf("order=%d", order), func(b *testing.B) {
			tree := filledTree(order, 1000)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = tree.Snapshot()
			}
		})
	}
}
