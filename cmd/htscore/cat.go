// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kortschak/htscore/bgzf"
)

func catCommand() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "decompress a BGZF stream to stdout",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("%w: expected exactly one path", ErrFlagParse)
			}
			r, err := bgzf.Open(c.Args().First())
			if err != nil {
				return fmt.Errorf("opening %s: %w", c.Args().First(), err)
			}
			defer r.Close()
			_, err = io.Copy(os.Stdout, r)
			return err
		},
	}
}
