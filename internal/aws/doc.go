// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package aws contains the AWS SDK helpers used to read s3:// sources.
package aws
