// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/staranto/dsvcut/internal/delim"
	"github.com/staranto/dsvcut/internal/header"
	"github.com/staranto/dsvcut/internal/output"
	"github.com/staranto/dsvcut/internal/projection"
	"github.com/staranto/dsvcut/internal/source"
	"github.com/staranto/dsvcut/internal/stream"
)

// ErrNoInput is returned when no input file was given and stdin is an
// interactive terminal.
var ErrNoInput = errors.New("missing input file or input stream")

// Options is the parsed configuration for one run.
type Options struct {
	// HeaderFile is a dedicated header source. Empty means the first line of
	// the input is the header.
	HeaderFile string
	// Input is the data source. Empty means stdin.
	Input string
	// Columns are the requested output columns in output order. Empty means
	// every column in its original order.
	Columns []string
	// ListHeader prints the header names and stops.
	ListHeader bool
	// Format of the ListHeader output: text, json or yaml.
	Format    string
	Delimiter delim.Delimiter
	OnBadLine stream.Policy
}

// Env is the process surroundings a run reads from and writes to.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// StdinIsTerminal reports whether Stdin is an interactive terminal.
	StdinIsTerminal func() bool
	// Open opens a named source. Defaults to source.Open.
	Open func(ctx context.Context, path string) (io.ReadCloser, error)
}

// Run executes one dsvcut invocation. Every failure before the row loop
// happens before anything is written to Stdout.
func Run(ctx context.Context, opts Options, env Env) error {
	env = withDefaults(env)

	var in io.Reader
	if opts.Input == "" {
		if env.StdinIsTerminal() {
			return ErrNoInput
		}
		in = env.Stdin
	} else {
		rc, err := env.Open(ctx, opts.Input)
		if err != nil {
			return err
		}
		defer rc.Close()
		in = rc
	}
	defer closeOnCancel(ctx, in)()
	mainSrc := source.NewLineReader(in)

	var hdrSrc header.LineReader
	if opts.HeaderFile != "" {
		rc, err := env.Open(ctx, opts.HeaderFile)
		if err != nil {
			return err
		}
		defer rc.Close()
		defer closeOnCancel(ctx, rc)()
		hdrSrc = source.NewLineReader(rc)
	}

	h, err := header.Resolve(hdrSrc, mainSrc)
	if err != nil {
		return cancelled(ctx, err)
	}

	if opts.ListHeader {
		return output.ListHeader(env.Stdout, h, opts.Format)
	}

	spec, err := projection.Project(h.Index(), opts.Columns)
	if err != nil {
		return err
	}

	p := &stream.Processor{
		Header:    h,
		Spec:      spec,
		Delimiter: opts.Delimiter,
		OnBadLine: opts.OnBadLine,
		Diag:      env.Stderr,
	}
	if hdrSrc == nil {
		// The header was line 1 of the input.
		p.LineOffset = 1
	}
	stats, err := p.Run(ctx, mainSrc, env.Stdout)

	log.WithFields(log.Fields{
		"rows":    humanize.Comma(stats.Rows),
		"skipped": humanize.Comma(stats.Skipped),
		"read":    humanize.Bytes(uint64(mainSrc.BytesRead())),
	}).Info("done")

	return cancelled(ctx, err)
}

// closeOnCancel closes r, when it is a Closer, as soon as ctx is cancelled so
// that a read blocked on a pipe or FIFO returns. The returned func detaches
// it.
func closeOnCancel(ctx context.Context, r io.Reader) func() {
	c, ok := r.(io.Closer)
	if !ok {
		return func() {}
	}
	stop := context.AfterFunc(ctx, func() {
		log.Debug("cancelled, closing input")
		_ = c.Close()
	})
	return func() { stop() }
}

// cancelled reports ctx's error in place of err once ctx is done, since the
// read failure is only a consequence of closing the source.
func cancelled(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func withDefaults(env Env) Env {
	if env.Stdin == nil {
		env.Stdin = os.Stdin
	}
	if env.Stdout == nil {
		env.Stdout = os.Stdout
	}
	if env.Stderr == nil {
		env.Stderr = os.Stderr
	}
	if env.StdinIsTerminal == nil {
		env.StdinIsTerminal = func() bool { return false }
	}
	if env.Open == nil {
		env.Open = source.Open
	}
	return env
}
