package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/memsim/sim/alloc"
)

// ParseRequest parses "name:size" or "size". The size follows the last colon
// so names may contain colons. The name is kept as given; SubmitBatch cleans it.
func ParseRequest(s string) (Request, error) {
	name, size := "", s
	if i := strings.LastIndex(s, ":"); i >= 0 {
		name, size = s[:i], s[i+1:]
	}
	n, err := strconv.Atoi(strings.TrimSpace(size))
	if err != nil {
		return Request{}, fmt.Errorf("%w: %q is not a whole number of KB", alloc.ErrInvalidSize, strings.TrimSpace(size))
	}
	return Request{Name: name, Size: n}, nil
}

// ParseRequests parses a comma or semicolon separated list of requests, as
// typed into a single input line. Empty entries are skipped.
func ParseRequests(list string) ([]Request, error) {
	fields := strings.FieldsFunc(list, func(r rune) bool { return r == ',' || r == ';' })
	reqs := make([]Request, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			continue
		}
		r, err := ParseRequest(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}
