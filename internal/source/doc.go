// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package source opens local, compressed, and S3-hosted inputs and reads them
// line by line.
package source
