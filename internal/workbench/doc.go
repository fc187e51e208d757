// Package workbench drives the two tree engines the way an interactive
// controls panel does: one selected tree type, one shared order, a reset
// button, and search results highlighted in place.
//
// Both a B-tree and a B+ tree are kept alive at all times, so switching the
// selected type shows the other tree as it was left. Changing the order
// discards both and starts over.
//
// Every operation that can change what a viewer sees bumps a version number
// and is announced to subscribers as an Event. Viewers compare versions
// instead of cloning trees to notice change.
//
// A Workbench is not safe for concurrent use; callers serialize access.
package workbench
