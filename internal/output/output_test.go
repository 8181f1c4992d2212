// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/dsvcut/internal/config"
)

func TestListHeader(t *testing.T) {
	names := []string{"a", "b", "c"}

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "default is text", format: "", want: "a\nb\nc\n"},
		{name: "text", format: "text", want: "a\nb\nc\n"},
		{name: "yaml", format: "yaml", want: "- a\n- b\n- c\n"},
		{name: "json", format: "json", want: "[\"a\",\"b\",\"c\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, ListHeader(&buf, names, tt.format))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestListHeader_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ListHeader(&buf, []string{"id", "na,me", "tab\there"}, "json"))

	doc := gjson.Parse(buf.String())
	assert.True(t, doc.IsArray())
	assert.Equal(t, int64(3), doc.Get("#").Int())
	assert.Equal(t, "na,me", doc.Get("1").String())
	assert.Equal(t, "tab\there", doc.Get("2").String())
}

func TestListHeader_Errors(t *testing.T) {
	var buf bytes.Buffer
	err := ListHeader(&buf, []string{"a"}, "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
	assert.Empty(t, buf.String())

	err = ListHeader(failWriter{}, []string{"a"}, "text")
	assert.ErrorContains(t, err, "failed to write output")
}

func TestDumpExamples(t *testing.T) {
	t.Setenv("DSVCUT_CFG", "/nonexistent/dsvcut.yaml")
	config.Config = config.Type{}

	var buf bytes.Buffer
	DumpExamples(&buf, [][2]string{
		{"dsvcut -f data.csv -c b,a", "project and reorder"},
		{"dsvcut -f data.csv -l", "list the header"},
	}, false)

	out := buf.String()
	assert.Contains(t, out, "Command")
	assert.Contains(t, out, "Description")
	assert.Contains(t, out, "dsvcut -f data.csv -c b,a")
	assert.Contains(t, out, "list the header")
}

func TestDumpExamples_Empty(t *testing.T) {
	var buf bytes.Buffer
	DumpExamples(&buf, nil, true)
	assert.Empty(t, buf.String())
}

func TestGetColors_Defaults(t *testing.T) {
	t.Setenv("DSVCUT_CFG", "/nonexistent/dsvcut.yaml")
	config.Config = config.Type{}

	header, even, odd := getColors("colors")
	assert.Equal(t, "#f6be00", header)
	assert.Equal(t, "#ffffff", even)
	assert.Equal(t, "#00c8f0", odd)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}
