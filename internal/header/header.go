// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package header

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/apex/log"

	"github.com/staranto/dsvcut/internal/delim"
)

// ErrEmpty means no header could be derived from the header line, either
// because the source was empty or because the line had no comma or tab.
var ErrEmpty = errors.New("cannot infer the csv header")

// LineReader is the line source a header is read from.
type LineReader interface {
	ReadLine() (string, error)
}

// Header is the ordered list of column names. Names need not be unique.
type Header []string

// Resolve reads the header line from hdrSrc when one is given, leaving mainSrc
// untouched. Otherwise the first line of mainSrc is consumed as the header.
func Resolve(hdrSrc LineReader, mainSrc LineReader) (Header, error) {
	src := mainSrc
	if hdrSrc != nil {
		src = hdrSrc
	}

	line, err := src.ReadLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	h := Parse(line)
	if len(h) == 0 {
		return nil, ErrEmpty
	}
	log.Debugf("header: %d columns: %v", len(h), []string(h))

	return h, nil
}

// Parse splits a single header line. Trailing whitespace is dropped before
// the delimiter is inferred. A line without a delimiter yields nil.
func Parse(line string) Header {
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	d, ok := delim.Infer(line)
	if !ok {
		return nil
	}

	return Header(d.Split(line))
}

// Join renders the header with d between names.
func (h Header) Join(d delim.Delimiter) string {
	return d.Join(h)
}

// Index builds the name to position lookup for h. When a name repeats, the
// position of its last occurrence wins.
func (h Header) Index() Index {
	m := make(map[string]int, len(h))
	for i, name := range h {
		m[name] = i
	}
	return Index{positions: m}
}

// Index maps a column name to its zero-based position in a Header. It has no
// mutators; build a new one from a Header instead.
type Index struct {
	positions map[string]int
}

// Lookup returns the position of name.
func (x Index) Lookup(name string) (int, bool) {
	pos, ok := x.positions[name]
	return pos, ok
}

// Len is the number of distinct names.
func (x Index) Len() int {
	return len(x.positions)
}
