// Package console interprets the line-oriented command language used by
// the interactive shell and by scripts.
//
// # Commands
//
//	insert <n|a..b>...   add keys (a range expands to a, a+1, ..., b)
//	delete <n|a..b>...   remove keys
//	search <n>           look a key up and mark the node holding it
//	print                list keys in ascending order
//	show                 draw the selected tree
//	json                 print the snapshot as JSON
//	type [btree|bplustree]
//	order [n]
//	reset                empty both trees
//	stats                height, node counts and capacity
//	diff on|off          print a structural diff after each mutation
//	help
//	quit
//
// Text after '#' is a comment. Blank lines are ignored.
package console
