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

func indexCommand() *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "build a BAI index for a BAM file",
		ArgsUsage: "<in.bam> [out.bai]",
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 1 || c.Args().Len() > 2 {
				return fmt.Errorf("%w: expected <in.bam> [out.bai]", ErrFlagParse)
			}
			in := c.Args().Get(0)
			out := in + ".bai"
			if c.Args().Len() == 2 {
				out = c.Args().Get(1)
			}

			f, err := os.Open(in)
			if err != nil {
				return fmt.Errorf("opening %s: %w", in, err)
			}
			defer f.Close()

			br, err := bam.NewReader(f, 0)
			if err != nil {
				return fmt.Errorf("reading bam header: %w", err)
			}
			defer br.Close()

			var idx bam.Index
			for {
				rec, err := br.Read()
				if err != nil {
					if errors.Is(err, io.EOF) {
						break
					}
					return fmt.Errorf("reading record: %w", err)
				}
				if err := idx.Add(rec, br.LastChunk()); err != nil {
					return fmt.Errorf("indexing record %s: %w", rec.Name, err)
				}
			}

			w, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer w.Close()
			if err := bam.WriteIndex(w, &idx); err != nil {
				return fmt.Errorf("writing index: %w", err)
			}
			fmt.Fprintf(c.App.Writer, "wrote %s\n", out)
			return nil
		},
	}
}
