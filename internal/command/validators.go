// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/staranto/dsvcut/internal/delim"
	"github.com/staranto/dsvcut/internal/output"
	"github.com/staranto/dsvcut/internal/stream"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func FormatValidator(value any) error {
	if value.(string) == "" {
		return nil
	}
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func DelimiterValidator(value any) error {
	_, err := delim.Parse(value.(string))
	return err
}

func PolicyValidator(value any) error {
	_, err := stream.ParsePolicy(value.(string))
	return err
}
