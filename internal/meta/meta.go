// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/dsvcut/internal/config"
)

// Meta are the meta-options that are available on all commands.
type Meta struct {
	// Args after @set expansion.
	Args    []string
	Config  config.Type
	Context context.Context
	// StartingDir is the working directory at startup. Relative paths in
	// --input and --header_file are resolved against it.
	StartingDir string
}
