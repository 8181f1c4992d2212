// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docgen keeps docs/ in step with the dsvcut command definitions.
//
// For every page it rewrites the generated sections of
// docs/commands/<name>.md (examples from command.Examples, flags from
// command.NewFlags), then renders docs/man/share/man1/<page>.1 with md2man and
// docs/tldr/<page>.md from the same examples. With -check nothing is written
// and a stale file is an error, which is what CI runs.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/dsvcut/internal/command"
)

// page is one documented command.
type page struct {
	// Name is the docs/commands/<Name>.md basename.
	Name string
	// Page is the man and tldr page name.
	Page     string
	Usage    string
	Examples [][2]string
	// Flags, when set, fill the flags section.
	Flags []cli.Flag
}

func pages() []page {
	return []page{
		{
			Name:     "dsvcut",
			Page:     "dsvcut",
			Usage:    command.RootUsage,
			Examples: command.Examples,
			Flags:    command.NewFlags(""),
		},
		{
			Name:     "completion",
			Page:     "dsvcut-completion",
			Usage:    command.CompletionUsage,
			Examples: command.CompletionExamples,
		},
	}
}

func main() {
	var (
		root  string
		check bool
	)
	flag.StringVar(&root, "root", ".", "repo root")
	flag.BoolVar(&check, "check", false, "report stale docs instead of writing them")
	flag.Parse()

	stale, err := generate(root, pages(), check)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docgen: %v\n", err)
		os.Exit(1)
	}
	if len(stale) > 0 {
		verb := "updated"
		if check {
			verb = "out of date"
		}
		for _, p := range stale {
			fmt.Fprintf(os.Stderr, "%s: %s\n", verb, p)
		}
		if check {
			os.Exit(1)
		}
	}
}

// generate syncs every page under root and returns the files that changed, or
// that would change when check is set.
func generate(root string, pp []page, check bool) ([]string, error) {
	var (
		cmdDir  = filepath.Join(root, "docs", "commands")
		manDir  = filepath.Join(root, "docs", "man", "share", "man1")
		tldrDir = filepath.Join(root, "docs", "tldr")
		stale   []string
	)

	if !check {
		for _, d := range []string{manDir, tldrDir} {
			if err := os.MkdirAll(d, 0o755); err != nil {
				return nil, err
			}
		}
	}

	for _, p := range pp {
		mdPath := filepath.Join(cmdDir, p.Name+".md")
		raw, err := os.ReadFile(mdPath)
		if err != nil {
			return nil, err
		}

		md, err := syncPage(string(raw), p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", mdPath, err)
		}

		outputs := []struct {
			path string
			data []byte
		}{
			{mdPath, []byte(md)},
			{filepath.Join(manDir, p.Page+".1"), md2man.Render([]byte(stripMarkers(md)))},
			{filepath.Join(tldrDir, p.Page+".md"), []byte(tldrPage(p))},
		}
		for _, o := range outputs {
			changed, err := syncFile(o.path, o.data, check)
			if err != nil {
				return nil, err
			}
			if changed {
				stale = append(stale, o.path)
			}
		}
	}

	return stale, nil
}

// syncPage regenerates the marked sections of a command page.
func syncPage(md string, p page) (string, error) {
	md, err := replaceSection(md, "examples", "```\n"+command.ExampleText(p.Examples)+"```\n")
	if err != nil {
		return "", err
	}
	if len(p.Flags) > 0 {
		md, err = replaceSection(md, "flags", flagList(p.Flags))
		if err != nil {
			return "", err
		}
	}
	return md, nil
}

func beginMarker(name string) string { return "<!-- BEGIN " + name + " -->\n" }
func endMarker(name string) string   { return "<!-- END " + name + " -->\n" }

// replaceSection swaps the text between the BEGIN and END markers of name for
// body. Both markers have to be on lines of their own.
func replaceSection(md string, name string, body string) (string, error) {
	begin, end := beginMarker(name), endMarker(name)

	i := strings.Index(md, begin)
	if i < 0 {
		return "", fmt.Errorf("missing %q", strings.TrimSpace(begin))
	}
	i += len(begin)

	j := strings.Index(md[i:], end)
	if j < 0 {
		return "", fmt.Errorf("missing %q", strings.TrimSpace(end))
	}

	return md[:i] + body + md[i+j:], nil
}

// stripMarkers drops the marker lines, which md2man would otherwise render.
func stripMarkers(md string) string {
	var b strings.Builder
	for _, ln := range strings.SplitAfter(md, "\n") {
		t := strings.TrimSpace(ln)
		if strings.HasPrefix(t, "<!-- BEGIN ") || strings.HasPrefix(t, "<!-- END ") {
			continue
		}
		b.WriteString(ln)
	}
	return b.String()
}

// Optional flag behaviour. Flag types without a method are still listed.
type (
	usager     interface{ GetUsage() string }
	envVarser  interface{ GetEnvVars() []string }
	valueTaker interface{ TakesValue() bool }
)

// flagList renders one bullet per flag, sorted by name.
func flagList(flags []cli.Flag) string {
	sorted := append([]cli.Flag{}, flags...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Names()[0] < sorted[j].Names()[0]
	})

	var b strings.Builder
	for _, f := range sorted {
		var names []string
		for _, n := range f.Names() {
			dash := "--"
			if len(n) == 1 {
				dash = "-"
			}
			names = append(names, "`"+dash+n+"`")
		}
		b.WriteString("- " + strings.Join(names, ", "))

		if vt, ok := f.(valueTaker); ok && vt.TakesValue() {
			b.WriteString(" value")
		}
		if u, ok := f.(usager); ok && u.GetUsage() != "" {
			b.WriteString(": " + u.GetUsage())
		}
		if ev, ok := f.(envVarser); ok && len(ev.GetEnvVars()) > 0 {
			b.WriteString(". Env `" + strings.Join(ev.GetEnvVars(), "`, `") + "`")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// tldrPage follows the tldr-pages layout: title, summary, then one
// description and command per example.
func tldrPage(p page) string {
	var b strings.Builder
	b.WriteString("# " + p.Page + "\n\n")
	b.WriteString("> " + strings.ToUpper(p.Usage[:1]) + p.Usage[1:] + ".\n")
	b.WriteString("> More information: https://github.com/staranto/dsvcut.\n")

	for _, ex := range p.Examples {
		desc := strings.ToUpper(ex[1][:1]) + ex[1][1:]
		b.WriteString("\n- " + desc + ":\n\n")
		b.WriteString("`" + strings.Join(strings.Fields(ex[0]), " ") + "`\n")
	}
	return b.String()
}

// syncFile writes data to path unless it already holds it. It reports whether
// the content differs; with check set nothing is written.
func syncFile(path string, data []byte, check bool) (bool, error) {
	old, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err == nil && bytes.Equal(old, data) {
		return false, nil
	}
	if check {
		return true, nil
	}
	return true, os.WriteFile(path, data, 0o644)
}
