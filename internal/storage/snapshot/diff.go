package snapshot

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// envelope wraps a snapshot so that an empty tree still diffs as an object.
type envelope struct {
	Root *Node `json:"root"`
}

// Diff compares two snapshots and returns an ASCII rendering of the
// structural change. The boolean is false when the snapshots are equal, in
// which case the text is empty.
func Diff(before, after *Node, coloring bool) (string, bool, error) {
	left, err := json.Marshal(envelope{Root: before})
	if err != nil {
		return "", false, errors.Wrap(err, "encode left snapshot")
	}
	right, err := json.Marshal(envelope{Root: after})
	if err != nil {
		return "", false, errors.Wrap(err, "encode right snapshot")
	}

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", false, errors.Wrap(err, "compare snapshots")
	}
	if !delta.Modified() {
		return "", false, nil
	}

	var leftObj map[string]interface{}
	if err := json.Unmarshal(left, &leftObj); err != nil {
		return "", false, errors.Wrap(err, "decode left snapshot")
	}

	ascii := formatter.NewAsciiFormatter(leftObj, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	})
	text, err := ascii.Format(delta)
	if err != nil {
		return "", true, errors.Wrap(err, "format snapshot diff")
	}
	return text, true, nil
}
