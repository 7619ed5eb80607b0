// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package index provides common code for CSI and tabix BGZF indexing.
package index

import (
	"errors"
	"io"

	"github.com/kortschak/htscore/bgzf"
)

var (
	ErrNoReference = errors.New("index: no reference")
	ErrInvalid     = errors.New("index: invalid interval")
)

// ReferenceStats holds mapping statistics for a genomic reference.
type ReferenceStats struct {
	// Chunk is the span of the indexed BGZF
	// holding alignments to the reference.
	Chunk bgzf.Chunk

	// Mapped is the count of mapped reads.
	Mapped uint64

	// Unmapped is the count of unmapped reads.
	Unmapped uint64
}

// ChunkReader wraps a bgzf.Reader to provide a mechanism to read a
// selection of BGZF chunks in sequence, skipping the unselected spans
// between them.
type ChunkReader struct {
	r *bgzf.Reader

	chunks []bgzf.Chunk
}

// NewChunkReader returns a ChunkReader reading from r, restricted to the
// given chunks, which must be sorted and non-overlapping.
func NewChunkReader(r *bgzf.Reader, chunks []bgzf.Chunk) (*ChunkReader, error) {
	if len(chunks) != 0 {
		if err := r.Seek(chunks[0].Begin); err != nil {
			return nil, err
		}
	}
	return &ChunkReader{r: r, chunks: chunks}, nil
}

// Read satisfies the io.Reader interface, returning io.EOF once the last
// requested chunk has been fully consumed.
func (r *ChunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}

	end := r.chunks[0].End.Compressed()
	if r.r.Tell().Compressed() >= end {
		r.chunks = r.chunks[1:]
		if len(r.chunks) == 0 {
			return 0, io.EOF
		}
		if err := r.r.Seek(r.chunks[0].Begin); err != nil {
			return 0, err
		}
		return r.Read(p)
	}

	if t := r.r.Tell(); t.File == r.chunks[0].End.File {
		// The chunk ends inside the current block; read no further than its end.
		if lim := int(r.chunks[0].End.Block) - int(t.Block); lim < len(p) {
			p = p[:lim]
		}
	}
	n, err := r.r.Read(p)
	if n > 0 {
		if r.r.Tell().Compressed() >= end {
			r.chunks = r.chunks[1:]
			if err == io.EOF {
				if len(r.chunks) == 0 {
					return n, io.EOF
				}
				err = nil
			}
		}
	}
	return n, err
}

// Close releases the ChunkReader. The underlying bgzf.Reader is not closed.
func (r *ChunkReader) Close() error {
	r.r = nil
	return nil
}
