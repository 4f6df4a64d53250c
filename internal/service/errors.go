// Package service implements the business rules over the store:
// validation, ownership checks, and the query/statistics operations.
package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound means the referenced project/task/user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the acting user is not the resource's effective
	// owner. The operation performed no side effect.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError maps field names to messages. It is terminal for the
// triggering request; nothing was written.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f, e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
