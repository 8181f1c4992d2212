// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package header

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/dsvcut/internal/delim"
)

// lines is a canned LineReader.
type lines struct {
	items []string
	err   error
}

func (l *lines) ReadLine() (string, error) {
	if l.err != nil {
		return "", l.err
	}
	if len(l.items) == 0 {
		return "", io.EOF
	}
	s := l.items[0]
	l.items = l.items[1:]
	return s, nil
}

func TestResolve_FromMainSource(t *testing.T) {
	main := &lines{items: []string{"a,b,c", "1,2,3"}}

	h, err := Resolve(nil, main)
	require.NoError(t, err)
	assert.Equal(t, Header{"a", "b", "c"}, h)

	// The header line is consumed; the next read is content.
	next, err := main.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "1,2,3", next)
}

func TestResolve_FromHeaderSource(t *testing.T) {
	hdr := &lines{items: []string{"a\tb"}}
	main := &lines{items: []string{"1,2", "3,4"}}

	h, err := Resolve(hdr, main)
	require.NoError(t, err)
	assert.Equal(t, Header{"a", "b"}, h)

	// The main source is untouched.
	next, err := main.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "1,2", next)
}

func TestResolve_Empty(t *testing.T) {
	tests := []struct {
		name string
		src  *lines
	}{
		{name: "empty source", src: &lines{}},
		{name: "no delimiter", src: &lines{items: []string{"justonecolumn"}}},
		{name: "blank line", src: &lines{items: []string{"   "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Resolve(nil, tt.src)
			assert.ErrorIs(t, err, ErrEmpty)
			assert.Nil(t, h)
		})
	}
}

func TestResolve_ReadError(t *testing.T) {
	_, err := Resolve(&lines{err: errors.New("boom")}, &lines{})
	assert.ErrorContains(t, err, "failed to read header: boom")
	assert.NotErrorIs(t, err, ErrEmpty)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Header
	}{
		{name: "comma", line: "a,b,c", want: Header{"a", "b", "c"}},
		{name: "tab", line: "a\tb", want: Header{"a", "b"}},
		{name: "trailing whitespace trimmed", line: "a,b,c \t\r", want: Header{"a", "b", "c"}},
		{name: "comma wins, tabs stay in names", line: "a\tx,b", want: Header{"a\tx", "b"}},
		{name: "empty names kept", line: "a,,c", want: Header{"a", "", "c"}},
		{name: "no delimiter", line: "abc", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.line))
		})
	}
}

func TestHeader_Index(t *testing.T) {
	h := Header{"id", "name", "id", "size"}
	idx := h.Index()

	pos, ok := idx.Lookup("id")
	assert.True(t, ok)
	assert.Equal(t, 2, pos, "last occurrence wins")

	pos, ok = idx.Lookup("size")
	assert.True(t, ok)
	assert.Equal(t, 3, pos)

	_, ok = idx.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, 3, idx.Len())
}

func TestHeader_Join(t *testing.T) {
	h := Header{"a", "b"}
	assert.Equal(t, "a,b", h.Join(delim.Comma))
	assert.Equal(t, "a\tb", h.Join(delim.Tab))
}
