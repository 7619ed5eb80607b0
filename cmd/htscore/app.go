// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command htscore inspects and indexes BGZF, BAM, CSI and TABIX files.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

const (
	// ExitCodeSuccess is the exit code returned on success.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrFlagParse wraps flag parsing errors reported by cli.
var ErrFlagParse = errors.New("parsing flags")

func newApp() *cli.App {
	return &cli.App{
		Name:      filepath.Base(os.Args[0]),
		Usage:     "inspect and index BGZF, BAM, CSI and TABIX files",
		ArgsUsage: "<command> [arguments]",
		Commands: []*cli.Command{
			catCommand(),
			viewCommand(),
			indexCommand(),
			statsCommand(),
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", c.App.Name, err)
			if errors.Is(err, ErrFlagParse) {
				cli.OsExiter(ExitCodeFlagParseError)
				return
			}
			cli.OsExiter(ExitCodeUnknownError)
		},
	}
}
