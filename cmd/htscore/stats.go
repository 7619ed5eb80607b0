// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/kortschak/htscore/bam"
	"github.com/kortschak/htscore/bgzf/index"
	"github.com/kortschak/htscore/csi"
	"github.com/kortschak/htscore/tabix"
)

// refStats is satisfied by bam.Index, csi.Index and tabix.Index.
type refStats interface {
	NumRefs() int
	ReferenceStats(id int) (index.ReferenceStats, bool)
	Unmapped() (uint64, bool)
}

func statsCommand() *cli.Command {
	var format string
	return &cli.Command{
		Name:      "stats",
		Usage:     "print per-reference mapping statistics from an index",
		ArgsUsage: "<in.bai|in.csi|in.tbi>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "index format: bai, csi or tabix (default: guessed from extension)",
				Destination: &format,
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("%w: expected exactly one path", ErrFlagParse)
			}
			path := c.Args().First()
			if format == "" {
				format = formatFor(path)
			}

			idx, err := readStatsIndex(path, format)
			if err != nil {
				return err
			}

			tbl := table.New("ref", "mapped", "unmapped", "begin", "end")
			for i := 0; i < idx.NumRefs(); i++ {
				s, ok := idx.ReferenceStats(i)
				if !ok {
					tbl.AddRow(i, "-", "-", "-", "-")
					continue
				}
				tbl.AddRow(i, s.Mapped, s.Unmapped, s.Chunk.Begin, s.Chunk.End)
			}
			tbl.Print()

			if n, ok := idx.Unmapped(); ok {
				fmt.Fprintf(c.App.Writer, "unplaced reads: %d\n", n)
			}
			return nil
		},
	}
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csi":
		return "csi"
	case ".tbi":
		return "tabix"
	default:
		return "bai"
	}
}

func readStatsIndex(path, format string) (refStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "bai":
		idx, err := bam.ReadIndex(f)
		if err != nil {
			return nil, fmt.Errorf("reading bai: %w", err)
		}
		return idx, nil
	case "csi":
		idx, err := csi.ReadFrom(f)
		if err != nil {
			return nil, fmt.Errorf("reading csi: %w", err)
		}
		return idx, nil
	case "tabix":
		idx, err := tabix.ReadFrom(f)
		if err != nil {
			return nil, fmt.Errorf("reading tabix: %w", err)
		}
		return idx, nil
	default:
		return nil, fmt.Errorf("%w: unknown index format %q", ErrFlagParse, format)
	}
}
