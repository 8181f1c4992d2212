// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package projection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/dsvcut/internal/header"
)

// ErrUnknownColumn matches every UnknownColumnError.
var ErrUnknownColumn = errors.New("unknown column")

// UnknownColumnError names the first requested column missing from the header.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("%v: %q is not in the header", ErrUnknownColumn, e.Name)
}

func (e *UnknownColumnError) Unwrap() error {
	return ErrUnknownColumn
}

// Column is one requested output column and its position in the header.
type Column struct {
	Name string
	Pos  int
}

// Spec is the ordered projection. An empty Spec passes rows through as-is.
type Spec []Column

// Project resolves names against idx in the order given, which is also the
// output order. Any name missing from idx aborts the whole projection.
func Project(idx header.Index, names []string) (Spec, error) {
	if len(names) == 0 {
		return nil, nil
	}

	spec := make(Spec, 0, len(names))
	for _, name := range names {
		pos, ok := idx.Lookup(name)
		if !ok {
			return nil, &UnknownColumnError{Name: name}
		}
		spec = append(spec, Column{Name: name, Pos: pos})
	}
	log.Debugf("projection: %v", spec)

	return spec, nil
}

// ParseColumns splits a --columns value. Names are taken verbatim, so
// surrounding spaces are significant.
func ParseColumns(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

// Names returns the output header.
func (s Spec) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// MaxPos is the highest header position the Spec reads, or -1 when empty.
func (s Spec) MaxPos() int {
	maxPos := -1
	for _, c := range s {
		maxPos = max(maxPos, c.Pos)
	}
	return maxPos
}
