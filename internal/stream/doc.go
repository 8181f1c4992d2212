// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package stream is the row loop: it fixes the delimiter from the first
// content line, writes the header once, and re-emits every row, projected or
// verbatim.
package stream
