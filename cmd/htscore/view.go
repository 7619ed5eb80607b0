// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kortschak/htscore/bam"
)

func viewCommand() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "print a BAM header and record count",
		ArgsUsage: "<in.bam>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "header-only",
				Usage: "print the header and exit without counting records",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("%w: expected exactly one path", ErrFlagParse)
			}
			f, err := os.Open(c.Args().First())
			if err != nil {
				return fmt.Errorf("opening %s: %w", c.Args().First(), err)
			}
			defer f.Close()

			br, err := bam.NewReader(f, 0)
			if err != nil {
				return fmt.Errorf("reading bam header: %w", err)
			}
			defer br.Close()

			text, err := br.Header().MarshalText()
			if err != nil {
				return fmt.Errorf("marshalling header: %w", err)
			}
			if _, err := c.App.Writer.Write(text); err != nil {
				return err
			}
			if c.Bool("header-only") {
				return nil
			}

			var n int
			for {
				_, err := br.Read()
				if err != nil {
					if errors.Is(err, io.EOF) {
						break
					}
					return fmt.Errorf("reading record %d: %w", n, err)
				}
				n++
			}
			fmt.Fprintf(c.App.Writer, "%d records\n", n)
			return nil
		},
	}
}
