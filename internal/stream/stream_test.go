// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package stream

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/dsvcut/internal/delim"
	"github.com/staranto/dsvcut/internal/header"
	"github.com/staranto/dsvcut/internal/projection"
	"github.com/staranto/dsvcut/internal/source"
)

func run(t *testing.T, p *Processor, input string) (string, Stats, error) {
	t.Helper()
	var out bytes.Buffer
	stats, err := p.Run(context.Background(), source.NewLineReader(strings.NewReader(input)), &out)
	return out.String(), stats, err
}

func TestRun(t *testing.T) {
	abc := header.Header{"a", "b", "c"}

	tests := []struct {
		name      string
		proc      Processor
		input     string
		want      string
		wantRows  int64
		wantLines int64
	}{
		{
			name:      "pass-through keeps lines verbatim",
			proc:      Processor{Header: abc},
			input:     "1,2,3\n4, 5 ,6  \n",
			want:      "a,b,c\n1,2,3\n4, 5 ,6  \n",
			wantRows:  2,
			wantLines: 2,
		},
		{
			name:      "projection reorders",
			proc:      Processor{Header: abc, Spec: projection.Spec{{Name: "b", Pos: 1}, {Name: "a", Pos: 0}}},
			input:     "1,2,3\n",
			want:      "b,a\n2,1\n",
			wantRows:  1,
			wantLines: 1,
		},
		{
			name:      "projection trims trailing whitespace",
			proc:      Processor{Header: abc, Spec: projection.Spec{{Name: "c", Pos: 2}}},
			input:     "1,2,3 \t\n",
			want:      "c\n3\n",
			wantRows:  1,
			wantLines: 1,
		},
		{
			name:  "empty input writes nothing",
			proc:  Processor{Header: abc},
			input: "",
			want:  "",
		},
		{
			name:      "tab round trip",
			proc:      Processor{Header: abc},
			input:     "1\t2\t3\n",
			want:      "a\tb\tc\n1\t2\t3\n",
			wantRows:  1,
			wantLines: 1,
		},
		{
			name:      "header joined with data delimiter",
			proc:      Processor{Header: header.Header{"a", "b"}},
			input:     "1\t2\n",
			want:      "a\tb\n1\t2\n",
			wantRows:  1,
			wantLines: 1,
		},
		{
			name:      "delimiter fixed by first line",
			proc:      Processor{Header: abc, Spec: projection.Spec{{Name: "a", Pos: 0}}},
			input:     "1,2,3\n4\t5\t6\n",
			want:      "a\n1\n4\t5\t6\n",
			wantRows:  2,
			wantLines: 2,
		},
		{
			name:      "preset delimiter skips inference",
			proc:      Processor{Header: abc, Spec: projection.Spec{{Name: "b", Pos: 1}}, Delimiter: delim.Tab},
			input:     "x,y\tz\n",
			want:      "b\nz\n",
			wantRows:  1,
			wantLines: 1,
		},
		{
			name:      "lines without delimiter after it is set",
			proc:      Processor{Header: abc},
			input:     "1,2,3\nlonely\n\n",
			want:      "a,b,c\n1,2,3\nlonely\n\n",
			wantRows:  3,
			wantLines: 3,
		},
		{
			name:      "crlf normalized",
			proc:      Processor{Header: abc},
			input:     "1,2,3\r\n",
			want:      "a,b,c\n1,2,3\n",
			wantRows:  1,
			wantLines: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stats, err := run(t, &tt.proc, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRows, stats.Rows)
			assert.Equal(t, tt.wantLines, stats.Lines)
			assert.Zero(t, stats.Skipped)
		})
	}
}

func TestRun_ProjectedRowWidth(t *testing.T) {
	spec := projection.Spec{{Name: "c", Pos: 2}, {Name: "a", Pos: 0}, {Name: "c", Pos: 2}}
	p := &Processor{Header: header.Header{"a", "b", "c"}, Spec: spec}

	got, _, err := run(t, p, "1,2,3\n4,5,6,7\n")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Len(t, strings.Split(l, ","), len(spec))
	}
	assert.Equal(t, "6,4,6", lines[2])
}

func TestRun_NoDelimiter(t *testing.T) {
	input := "nodelimiter\n1,2\n3,4\n"

	t.Run("fail", func(t *testing.T) {
		p := &Processor{Header: header.Header{"a", "b"}}
		got, stats, err := run(t, p, input)

		var lerr *LineError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, 1, lerr.Line)
		assert.ErrorIs(t, err, ErrNoDelimiter)
		assert.Empty(t, got)
		assert.Zero(t, stats.Rows)
	})

	t.Run("skip", func(t *testing.T) {
		var diag bytes.Buffer
		p := &Processor{Header: header.Header{"a", "b"}, OnBadLine: Skip, Diag: &diag}
		got, stats, err := run(t, p, input)

		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,2\n3,4\n", got, "header still precedes the first written row")
		assert.Equal(t, int64(1), stats.Skipped)
		assert.Equal(t, int64(2), stats.Rows)
		assert.Equal(t, int64(3), stats.Lines)
		assert.Equal(t, "warning: line 1: cannot infer a delimiter, skipped\n", diag.String())
	})

	t.Run("skip everything", func(t *testing.T) {
		p := &Processor{Header: header.Header{"a", "b"}, OnBadLine: Skip}
		got, stats, err := run(t, p, "x\ny\n")
		require.NoError(t, err)
		assert.Empty(t, got, "no header without a content row")
		assert.Equal(t, int64(2), stats.Skipped)
	})
}

func TestRun_ShortRow(t *testing.T) {
	spec := projection.Spec{{Name: "c", Pos: 2}}
	input := "1,2,3\n4,5\n7,8,9\n"

	t.Run("fail", func(t *testing.T) {
		p := &Processor{Header: header.Header{"a", "b", "c"}, Spec: spec}
		got, _, err := run(t, p, input)

		var lerr *LineError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, 2, lerr.Line)
		assert.ErrorIs(t, err, ErrShortRow)
		assert.Equal(t, "c\n3\n", got, "rows before the failure were already streamed")
	})

	t.Run("skip", func(t *testing.T) {
		var diag bytes.Buffer
		p := &Processor{Header: header.Header{"a", "b", "c"}, Spec: spec, OnBadLine: Skip, Diag: &diag}
		got, stats, err := run(t, p, input)

		require.NoError(t, err)
		assert.Equal(t, "c\n3\n9\n", got)
		assert.Equal(t, int64(1), stats.Skipped)
		assert.Contains(t, diag.String(), "line 2: too few fields")
	})
}

func TestRun_LineOffset(t *testing.T) {
	spec := projection.Spec{{Name: "c", Pos: 2}}
	var diag bytes.Buffer
	p := &Processor{Header: header.Header{"a", "b", "c"}, Spec: spec, OnBadLine: Skip, Diag: &diag, LineOffset: 1}

	_, _, err := run(t, p, "1,2,3\n4,5\n")
	require.NoError(t, err)
	assert.Equal(t, "warning: line 3: too few fields for the requested columns, skipped\n", diag.String())

	p = &Processor{Header: header.Header{"a", "b", "c"}, Spec: spec, LineOffset: 1}
	_, _, err = run(t, p, "4,5\n")
	var lerr *LineError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 2, lerr.Line)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestRun_WriteError(t *testing.T) {
	p := &Processor{Header: header.Header{"a", "b"}}
	_, err := p.Run(context.Background(), source.NewLineReader(strings.NewReader("1,2\n")), brokenWriter{})
	assert.ErrorContains(t, err, "failed to write output: broken pipe")
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	p := &Processor{Header: header.Header{"a", "b"}}
	_, err := p.Run(ctx, source.NewLineReader(strings.NewReader("1,2\n")), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestRun_Idempotent(t *testing.T) {
	input := "x,y\n1,2\n3,4\n"

	once := func(in string) string {
		lr := source.NewLineReader(strings.NewReader(in))
		h, err := header.Resolve(nil, lr)
		require.NoError(t, err)
		var out bytes.Buffer
		_, err = (&Processor{Header: h}).Run(context.Background(), lr, &out)
		require.NoError(t, err)
		return out.String()
	}

	first := once(input)
	second := once(first)
	assert.Equal(t, input, first)
	assert.Equal(t, first, second)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, Fail, p)

	p, err = ParsePolicy("SKIP")
	require.NoError(t, err)
	assert.Equal(t, Skip, p)

	_, err = ParsePolicy("retry")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}
