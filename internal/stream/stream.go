// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/apex/log"

	"github.com/staranto/dsvcut/internal/delim"
	"github.com/staranto/dsvcut/internal/header"
	"github.com/staranto/dsvcut/internal/projection"
)

var (
	// ErrNoDelimiter is a line seen before any delimiter was established that
	// has neither a comma nor a tab.
	ErrNoDelimiter = errors.New("cannot infer a delimiter")
	// ErrShortRow is a line with fewer fields than the projection reads.
	ErrShortRow = errors.New("too few fields for the requested columns")
	// ErrUnknownPolicy is returned by ParsePolicy.
	ErrUnknownPolicy = errors.New("unknown bad line policy")
)

// LineError ties a per-line failure to its 1-based line number in the source
// it was read from.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Policy decides what happens to a line that cannot be processed.
type Policy string

const (
	// Fail stops the run at the first bad line.
	Fail Policy = "fail"
	// Skip drops the line, reports it on the diagnostics writer, and keeps going.
	Skip Policy = "skip"
)

// ParsePolicy maps an --on_bad_line value to a Policy. Empty means Fail.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(s)) {
	case "", Fail:
		return Fail, nil
	case Skip:
		return Skip, nil
	}
	return "", fmt.Errorf("%w: %q (must be one of fail, skip)", ErrUnknownPolicy, s)
}

// LineReader is the data source consumed by Run.
type LineReader interface {
	ReadLine() (string, error)
}

// Stats summarizes a run.
type Stats struct {
	// Lines read from the data source.
	Lines int64
	// Rows written, not counting the header line.
	Rows int64
	// Skipped lines under the Skip policy.
	Skipped int64
}

// Processor re-emits a DSV stream, optionally projected. Header and Spec are
// read-only once Run starts.
type Processor struct {
	Header header.Header
	Spec   projection.Spec
	// Delimiter presets the data delimiter. Unset means infer it from the
	// first content line.
	Delimiter delim.Delimiter
	OnBadLine Policy
	// Diag receives per-line warnings under the Skip policy. Nil discards them.
	Diag io.Writer
	// LineOffset is added to data line numbers in errors and warnings. Set it
	// to 1 when the header was consumed from the same source so numbers match
	// the file.
	LineOffset int
}

// Run copies src to w line by line. The header line is written immediately
// before the first content row, so an empty src produces no output.
func (p *Processor) Run(ctx context.Context, src LineReader, w io.Writer) (Stats, error) {
	var (
		stats       Stats
		d           = p.Delimiter
		headerDone  bool
		maxPos      = p.Spec.MaxPos()
		passThrough = len(p.Spec) == 0
	)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read line %d: %w", int(stats.Lines)+1+p.LineOffset, err)
		}
		stats.Lines++

		if !d.IsSet() {
			if inferred, ok := delim.Infer(line); ok {
				d = inferred
				log.Debugf("delimiter: %s (from line %d)", d.Name(), stats.Lines)
			} else {
				if err := p.badLine(&stats, ErrNoDelimiter); err != nil {
					return stats, err
				}
				continue
			}
		}

		row := line
		if !passThrough {
			fields := d.Split(strings.TrimRightFunc(line, unicode.IsSpace))
			if maxPos >= len(fields) {
				if err := p.badLine(&stats, ErrShortRow); err != nil {
					return stats, err
				}
				continue
			}
			out := make([]string, len(p.Spec))
			for i, c := range p.Spec {
				out[i] = fields[c.Pos]
			}
			row = d.Join(out)
		}

		if !headerDone {
			if err := writeLine(w, p.headerLine(d)); err != nil {
				return stats, err
			}
			headerDone = true
		}

		if err := writeLine(w, row); err != nil {
			return stats, err
		}
		stats.Rows++
	}

	return stats, nil
}

// headerLine is the projected names, or the full header in pass-through mode.
func (p *Processor) headerLine(d delim.Delimiter) string {
	if len(p.Spec) > 0 {
		return d.Join(p.Spec.Names())
	}
	return p.Header.Join(d)
}

// badLine applies the policy to the current line. It returns a non-nil error
// only when the run has to stop.
func (p *Processor) badLine(stats *Stats, cause error) error {
	lerr := &LineError{Line: int(stats.Lines) + p.LineOffset, Err: cause}
	if p.OnBadLine != Skip {
		return lerr
	}

	stats.Skipped++
	log.WithField("line", lerr.Line).Warn(cause.Error())
	if p.Diag != nil {
		fmt.Fprintf(p.Diag, "warning: %v, skipped\n", lerr)
	}
	return nil
}

func writeLine(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s+"\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
