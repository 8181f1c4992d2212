// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package runner wires sources, header resolution, projection, and the row
// loop into a single dsvcut invocation.
package runner
