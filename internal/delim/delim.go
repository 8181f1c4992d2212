// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package delim

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter is the single field separator in effect for a stream. The zero
// value, Unset, means no delimiter has been established yet.
type Delimiter string

const (
	Unset Delimiter = ""
	Comma Delimiter = ","
	Tab   Delimiter = "\t"
)

// ErrUnknownDelimiter is returned by Parse for names it does not recognize.
var ErrUnknownDelimiter = errors.New("unknown delimiter")

// Infer decides whether line is comma or tab separated. Comma always wins when
// both are present. The second return value is false when neither is found.
func Infer(line string) (Delimiter, bool) {
	if strings.Contains(line, string(Comma)) {
		return Comma, true
	}
	if strings.Contains(line, string(Tab)) {
		return Tab, true
	}
	return Unset, false
}

// Parse maps a --delimiter value to a Delimiter. "auto" and "" yield Unset so
// the stream falls back to inference.
func Parse(name string) (Delimiter, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return Unset, nil
	case "comma", ",":
		return Comma, nil
	case "tab", "\t", `\t`:
		return Tab, nil
	}
	return Unset, fmt.Errorf("%w: %q (must be one of auto, comma, tab)", ErrUnknownDelimiter, name)
}

// IsSet reports whether d has been established.
func (d Delimiter) IsSet() bool {
	return d != Unset
}

// Name is the human form used in logs and help text.
func (d Delimiter) Name() string {
	switch d {
	case Comma:
		return "comma"
	case Tab:
		return "tab"
	}
	return "auto"
}

// Split breaks line into its fields.
func (d Delimiter) Split(line string) []string {
	return strings.Split(line, string(d))
}

// Join is the inverse of Split.
func (d Delimiter) Join(fields []string) string {
	return strings.Join(fields, string(d))
}
