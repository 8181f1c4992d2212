// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/dsvcut/internal/aws"
	"github.com/staranto/dsvcut/internal/config"
	"github.com/staranto/dsvcut/internal/meta"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr dsvcut` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "dsvcut")
			c.Stdout = cmd.Root().Writer
			c.Stderr = cmd.Root().ErrWriter
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ExpandSets replaces an @name argument with the arguments stored in the
// config file under sets.<name>. Without an @name argument, sets.defaults is
// inserted ahead of the user's arguments so that explicit flags override it.
// Only the first @name is honored.
func ExpandSets(args []string) []string {
	if len(args) < 2 || args[1] == "completion" {
		return args
	}

	idx := 1
	set := "defaults"
	rest := append([]string{}, args[1:]...)
	for i, a := range rest {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			idx += i
			rest = append(rest[:i], rest[i+1:]...)
			break
		}
	}

	var setArgs []string
	entries, err := config.GetStringSlice("sets." + set)
	if err != nil {
		log.Debugf("no argument set %q: %v", set, err)
	}
	for _, e := range entries {
		setArgs = append(setArgs, strings.Fields(e)...)
	}

	out := make([]string, 0, len(args)+len(setArgs))
	out = append(out, args[0])
	out = append(out, rest[:idx-1]...)
	out = append(out, setArgs...)
	out = append(out, rest[idx-1:]...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// resolvePath anchors a relative local path at dir. Object store URLs and
// absolute paths are returned as is.
func resolvePath(dir string, p string) string {
	if p == "" || dir == "" || filepath.IsAbs(p) {
		return p
	}
	if _, _, ok, _ := aws.ParseURL(p); ok {
		return p
	}
	return filepath.Join(dir, p)
}

// ExampleText renders examples as shell comment and command pairs, the way
// they appear in help text and in the docs.
func ExampleText(examples [][2]string) string {
	var b strings.Builder
	for i, ex := range examples {
		if i > 0 {
			b.WriteString("\n")
		}
		desc := ex[1]
		if desc != "" {
			desc = strings.ToUpper(desc[:1]) + desc[1:]
		}
		fmt.Fprintf(&b, "# %s\n%s\n", desc, ex[0])
	}
	return b.String()
}
