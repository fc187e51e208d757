// Package invariants exposes a compile-time switch for expensive structural
// assertions.
//
// Build with the "invariants" tag (or with -race) to turn the assertions on:
//
//	go test -tags invariants ./...
//
// Code guarded by Enabled is removed by the compiler in regular builds.
package invariants
