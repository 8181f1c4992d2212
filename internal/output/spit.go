// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v2"

	"github.com/staranto/dsvcut/internal/config"
)

// Formats accepted by ListHeader.
var Formats = []string{"text", "json", "yaml"}

// ListHeader writes the header names to w. text puts one name per line, json
// emits a single array, yaml a sequence.
func ListHeader(w io.Writer, names []string, format string) error {
	var out []byte

	switch format {
	case "", "text":
		if len(names) == 0 {
			return nil
		}
		out = []byte(strings.Join(names, "\n") + "\n")
	case "json":
		b, err := json.Marshal(names)
		if err != nil {
			return fmt.Errorf("failed to marshal header: %w", err)
		}
		out = append(b, '\n')
	case "yaml":
		b, err := yaml.Marshal(names)
		if err != nil {
			return fmt.Errorf("failed to marshal header: %w", err)
		}
		out = b
	default:
		return fmt.Errorf("unknown format %q (must be one of %v)", format, Formats)
	}

	log.Debugf("listing %d header names as %s", len(names), format)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string, color bool) {
	if len(examples) == 0 {
		return
	}

	var rows [][]string
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers("Command", "Description").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
