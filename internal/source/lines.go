// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const readBufferSize = 1 << 20

// LineReader hands out one line at a time with the line terminator (\n or
// \r\n) removed. A final line without a terminator is still returned; no empty
// line is invented after a trailing newline.
type LineReader struct {
	br    *bufio.Reader
	lines int
	bytes int64
}

// NewLineReader wraps r with a 1 MiB buffer.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{br: bufio.NewReaderSize(r, readBufferSize)}
}

// ReadLine returns the next line or io.EOF once the source is exhausted.
func (l *LineReader) ReadLine() (string, error) {
	s, err := l.br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if s == "" {
			return "", io.EOF
		}
	}

	l.lines++
	l.bytes += int64(len(s))

	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// Lines is the number of lines returned so far.
func (l *LineReader) Lines() int {
	return l.lines
}

// BytesRead is the number of raw bytes consumed, terminators included.
func (l *LineReader) BytesRead() int64 {
	return l.bytes
}
