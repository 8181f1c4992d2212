// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the dsvcut CLI. It wires flags, validators, the
// root action, argument sets, and shell completion.
package command
