// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/dsvcut/internal/config"
	"github.com/staranto/dsvcut/internal/meta"
)

// RootUsage is the one-line description of dsvcut.
const RootUsage = "project columns out of comma or tab separated streams"

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	// A missing config file is normal. Anything else is worth a log line but
	// not worth refusing to run.
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: %v", err)
	}

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	// -h belongs to --header_file, so help is long-form only.
	cli.HelpFlag = &cli.BoolFlag{
		Name:        "help",
		Usage:       "show help",
		HideDefault: true,
	}

	app := &cli.Command{
		Name:      "dsvcut",
		Usage:     RootUsage,
		UsageText: "dsvcut [-h header_file] [-f input] [-c col1,col2,...] [-l] [@set]",
		Flags:     NewFlags(cfg.Source),
		Metadata: map[string]any{
			"meta": meta,
		},
		Action:          CutCommandAction,
		HideHelpCommand: true,
	}

	app.Commands = append(app.Commands,
		CompletionCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}
