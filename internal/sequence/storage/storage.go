// Package storage defines persistence contracts for sequence state.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrMalformedState indicates a persisted record exists but does not hold a
// base-10 integer in [0, 2^32).
var ErrMalformedState = errors.New("malformed sequence state")

// MalformedStateError describes a persisted record that could not be parsed.
type MalformedStateError struct {
	Location string
	Content  string
}

// Error implements the error interface.
func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("%s: %s: %q", ErrMalformedState, e.Location, e.Content)
}

// Is matches ErrMalformedState.
func (e *MalformedStateError) Is(target error) bool {
	return target == ErrMalformedState
}

// StateStore persists the single sequence state value.
//
// Load reports ok=false when no record exists. Save replaces any prior
// record; a failed Save leaves the prior record readable.
type StateStore interface {
	Load(ctx context.Context) (seed uint32, ok bool, err error)
	Save(ctx context.Context, seed uint32) error
	Location() string
}

// ParseState parses the textual form of a persisted record. Surrounding
// whitespace is ignored.
func ParseState(location string, content string) (uint32, error) {
	trimmed := strings.TrimSpace(content)
	value, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return 0, &MalformedStateError{Location: location, Content: truncate(trimmed, 32)}
	}
	return uint32(value), nil
}

// FormatState renders seed as the persisted textual form.
func FormatState(seed uint32) string {
	return strconv.FormatUint(uint64(seed), 10)
}

// truncate shortens value to at most limit bytes without splitting a rune.
func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut] + "..."
}
