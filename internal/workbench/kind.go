package workbench

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind selects one of the two engines.
type Kind string

// Supported kinds.
const (
	KindBTree     Kind = "btree"
	KindBPlusTree Kind = "bplustree"
)

// Kinds lists the supported kinds in display order.
var Kinds = []Kind{KindBTree, KindBPlusTree}

// String returns the kind's name.
func (k Kind) String() string {
	return string(k)
}

// Label returns a human readable name.
func (k Kind) Label() string {
	switch k {
	case KindBTree:
		return "B-Tree"
	case KindBPlusTree:
		return "B+ Tree"
	default:
		return string(k)
	}
}

// ParseKind parses a kind name. A few common spellings are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "btree", "b-tree", "b":
		return KindBTree, nil
	case "bplustree", "bplus", "b+tree", "b+", "bptree":
		return KindBPlusTree, nil
	default:
		return "", errors.Wrapf(ErrUnknownKind, "%q, want %s", s, JoinKinds(" or "))
	}
}

// JoinKinds joins the names of Kinds with sep.
func JoinKinds(sep string) string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = k.String()
	}
	return strings.Join(names, sep)
}

func (k Kind) valid() bool {
	return k == KindBTree || k == KindBPlusTree
}
