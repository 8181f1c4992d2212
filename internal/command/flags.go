// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewFlags builds the root command flags. cfgSource is the config file that
// backs flag defaults and may be empty.
func NewFlags(cfgSource string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "header_file",
			Aliases: []string{"h"},
			Usage:   "read the header from this file instead of the first input line",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"f"},
			Usage:   "input file or s3://bucket/key. Defaults to stdin",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.StringFlag{
			Name:    "columns",
			Aliases: []string{"c"},
			Usage:   "comma-separated list of columns to output, in output order",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DSVCUT_COLUMNS"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolFlag{
			Name:        "list_header",
			Aliases:     []string{"l"},
			Usage:       "list the header names and exit",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:    "format",
			Usage:   "list_header output format",
			Sources: chain(cfgSource, "DSVCUT_FORMAT", "format"),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		&cli.StringFlag{
			Name:    "delimiter",
			Aliases: []string{"d"},
			Usage:   "data delimiter: auto, comma or tab",
			Sources: chain(cfgSource, "DSVCUT_DELIMITER", "delimiter"),
			Value:   "auto",
			Validator: func(value string) error {
				return FlagValidators(value, DelimiterValidator)
			},
		},
		&cli.StringFlag{
			Name:    "on_bad_line",
			Usage:   "what to do with a line that cannot be split or projected: fail or skip",
			Sources: chain(cfgSource, "DSVCUT_ON_BAD_LINE", "on_bad_line"),
			Value:   "fail",
			Validator: func(value string) error {
				return FlagValidators(value, PolicyValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:  "color",
			Usage: "enable colored examples output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("color", altsrc.StringSourcer(cfgSource)),
			),
			Value: false,
		},
		&cli.BoolFlag{
			Name:        "examples",
			Usage:       "show example invocations",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "tldr",
			Usage:       "show tldr page",
			Hidden:      !pathHas("tldr"),
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "version",
			Aliases:     []string{"v"},
			Usage:       "dsvcut version info",
			HideDefault: true,
		},
	}

	return
}

// chain is the env var, then config file, lookup order shared by the
// defaultable flags.
func chain(cfgSource string, env string, key string) cli.ValueSourceChain {
	return cli.NewValueSourceChain(
		cli.EnvVar(env),
		yaml.YAML(key, altsrc.StringSourcer(cfgSource)),
	)
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
