package console

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Console errors.
var (
	ErrInvalidInput   = errors.New("invalid input: please enter a valid number")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	ErrRangeTooLarge  = errors.New("range too large")
	ErrQuit           = errors.New("quit")
)

// maxRange bounds how many keys a single a..b argument may expand to.
const maxRange = 100000

// splitLine strips a trailing comment and splits the rest into fields.
func splitLine(line string) []string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	return strings.Fields(line)
}

// parseKey parses a single integer key.
func parseKey(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidInput
	}
	return n, nil
}

// parseKeys expands arguments into keys. An argument is either an integer
// or an inclusive range a..b with a <= b.
func parseKeys(args []string) ([]int, error) {
	var keys []int
	for _, arg := range args {
		lo, hi, isRange := strings.Cut(arg, "..")
		if !isRange {
			k, err := parseKey(arg)
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
			continue
		}

		from, err := parseKey(lo)
		if err != nil {
			return nil, err
		}
		to, err := parseKey(hi)
		if err != nil {
			return nil, err
		}
		if from > to {
			return nil, ErrInvalidInput
		}
		// from <= to, so the unsigned difference cannot wrap.
		if uint64(to)-uint64(from) >= maxRange {
			return nil, errors.Wrapf(ErrRangeTooLarge, "%s spans more than %d keys", arg, maxRange)
		}
		for k := from; ; k++ {
			keys = append(keys, k)
			if k == to {
				break
			}
		}
	}
	return keys, nil
}
