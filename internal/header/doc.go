// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package header resolves the column names of a DSV stream, either from a
// dedicated header source or from the first line of the data itself.
package header
