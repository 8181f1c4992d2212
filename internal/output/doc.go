// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders the non-row output of dsvcut: header listings and the
// examples table.
package output
