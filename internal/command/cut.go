// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/dsvcut/internal/delim"
	"github.com/staranto/dsvcut/internal/output"
	"github.com/staranto/dsvcut/internal/projection"
	"github.com/staranto/dsvcut/internal/runner"
	"github.com/staranto/dsvcut/internal/stream"
	"github.com/staranto/dsvcut/internal/version"
)

// Examples are rendered by --examples. tools/docgen writes them into
// docs/commands/dsvcut.md and the tldr page.
var Examples = [][2]string{
	{"dsvcut -f data.csv", "copy data.csv to stdout unchanged"},
	{"dsvcut -f data.csv -l", "list the header names, one per line"},
	{"dsvcut -f data.csv -l --format json", "list the header names as a JSON array"},
	{"dsvcut -f data.csv -c name,id", "keep the name and id columns, in that order"},
	{"zcat data.tsv.gz | dsvcut -c id", "project a tab separated stream from stdin"},
	{"dsvcut -f data.tsv.gz -c id", "the same, decompressing by extension"},
	{"dsvcut -h header.csv -f rows.csv -c b", "take the header from a separate file"},
	{"dsvcut -f s3://bucket/export.csv.zst -c id", "stream an object from S3"},
	{"dsvcut -f data.csv -c id --on_bad_line skip", "drop short rows instead of failing"},
	{"dsvcut @ids -f data.csv", "apply the ids argument set from the config file"},
}

// CutCommandAction is the root action: it turns the parsed flags into
// runner.Options and runs them against the command's reader and writers.
func CutCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)
	if m.Config.Source != "" {
		log.Debugf("config: %s", m.Config.Source)
	}

	root := cmd.Root()

	if cmd.Bool("version") {
		fmt.Fprintln(root.Writer, version.Version)
		return nil
	}
	if ShortCircuitTLDR(ctx, cmd) {
		return nil
	}
	if cmd.Bool("examples") {
		output.DumpExamples(root.Writer, Examples, cmd.Bool("color"))
		return nil
	}
	if cmd.Args().Len() > 0 {
		return fmt.Errorf("unexpected argument %q", cmd.Args().First())
	}

	opts, err := buildOptions(cmd, m.StartingDir)
	if err != nil {
		return err
	}

	stdin := root.Reader
	if stdin == nil {
		stdin = os.Stdin
	}

	env := runner.Env{
		Stdin:  stdin,
		Stdout: root.Writer,
		Stderr: root.ErrWriter,
		StdinIsTerminal: func() bool {
			return isTerminal(stdin)
		},
	}

	return runner.Run(ctx, opts, env)
}

// buildOptions maps flags to runner.Options. Flag validators have already
// vetted the enumerated values.
func buildOptions(cmd *cli.Command, dir string) (runner.Options, error) {
	d, err := delim.Parse(cmd.String("delimiter"))
	if err != nil {
		return runner.Options{}, err
	}

	policy, err := stream.ParsePolicy(cmd.String("on_bad_line"))
	if err != nil {
		return runner.Options{}, err
	}

	return runner.Options{
		HeaderFile: resolvePath(dir, cmd.String("header_file")),
		Input:      resolvePath(dir, cmd.String("input")),
		Columns:    projection.ParseColumns(cmd.String("columns")),
		ListHeader: cmd.Bool("list_header"),
		Format:     cmd.String("format"),
		Delimiter:  d,
		OnBadLine:  policy,
	}, nil
}
