// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"

	"github.com/staranto/dsvcut/internal/command"
	"github.com/staranto/dsvcut/internal/config"
	mylog "github.com/staranto/dsvcut/internal/log"
)

// exitInterrupted is the shell convention for death by SIGINT.
const exitInterrupted = 130

// shutdownGrace is how long a cancelled run may take to unwind before the
// process exits anyway, e.g. when it is blocked reading a terminal.
var shutdownGrace = 500 * time.Millisecond

func main() {
	os.Exit(realMain())
}

func realMain() int {
	// .env can set DSVCUT_LOG, so it goes first.
	envErr := config.LoadDotEnv()
	mylog.InitLogger()
	if envErr != nil {
		log.WithError(envErr).Warn("ignoring .env")
	}

	args := command.ExpandSets(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return waitRun(ctx, stop, os.Stderr, func() error {
		return app.Run(ctx, args)
	})
}

// waitRun runs run and maps its outcome to an exit code. Once ctx is done,
// stop restores the default signal handling so a second signal kills the
// process, and the run gets shutdownGrace to return before waitRun gives up
// on it.
func waitRun(ctx context.Context, stop func(), stderr io.Writer, run func() error) int {
	done := make(chan error, 1)
	go func() { done <- run() }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		stop()
		log.Debug("signal received, waiting for the run to unwind")
		select {
		case err = <-done:
		case <-time.After(shutdownGrace):
			err = ctx.Err()
		}
	}
	if ctx.Err() != nil {
		stop()
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "dsvcut: interrupted")
		return exitInterrupted
	}
	fmt.Fprintf(stderr, "dsvcut: %v\n", err)
	return 2
}
