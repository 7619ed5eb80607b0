// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"fmt"
	"io"
)

// Reader implements a streaming reader over a BGZF byte stream, decoding
// blocks on demand and tracking the virtual position of the next byte to
// be read. It satisfies io.Reader and io.ByteReader.
//
// A Reader is safe for use by a single goroutine at a time.
type Reader struct {
	r io.Reader

	rs io.ReadSeeker // non-nil when the underlying reader also supports seeking

	cache Cache

	// base is the compressed byte offset of the block currently held in
	// buf, if any.
	base    int64
	haveBuf bool
	buf     []byte
	off     int // uoffset of the next unread byte in buf

	// lastChunk records the Chunk spanning the most recent Read call, for
	// index-building callers.
	lastChunk Chunk

	nextBase int64 // compressed offset to read from on the next fill

	err error
}

// NewReader returns a Reader that decodes the BGZF stream read from r. If
// r also implements io.ReadSeeker, Seek may be used to move to an
// arbitrary virtual position.
func NewReader(r io.Reader, rd int) (*Reader, error) {
	_ = rd // retained for API compatibility; concurrency is not required for decoding
	rs, _ := r.(io.ReadSeeker)
	return &Reader{r: r, rs: rs}, nil
}

// SetCache sets the cache used by the Reader to store decompressed blocks,
// allowing blocks to be recovered without decompression on a subsequent
// Seek to a position within them.
func (r *Reader) SetCache(c Cache) {
	r.cache = c
}

// Close closes the Reader. If the underlying reader implements io.Closer
// it is closed.
func (r *Reader) Close() error {
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// fill reads and decodes the next block into r.buf, starting at
// r.nextBase. It is a no-op if a block is already buffered.
func (r *Reader) fill() error {
	if r.haveBuf {
		return nil
	}
	base := r.nextBase

	if r.cache != nil {
		if cb := r.cache.Get(base); cb != nil {
			r.buf = cb.Payload
			r.base = base
			r.off = 0
			r.haveBuf = true
			return nil
		}
	}

	if r.rs != nil {
		if _, err := r.rs.Seek(base, io.SeekStart); err != nil {
			return err
		}
	}

	dec, err := decodeBlock(r.r)
	if err != nil {
		return err
	}

	r.buf = dec.payload
	r.base = base
	r.off = 0
	r.haveBuf = true
	r.nextBase = base + int64(dec.frameLen)

	if r.cache != nil {
		cb := &CachedBlock{Base: base, Payload: dec.payload}
		if w, ok := r.cache.(Wrapper); ok {
			cb = w.Wrap(cb)
		}
		r.cache.Put(cb)
	}

	return nil
}

// Read implements io.Reader. It decodes blocks as needed and updates
// LastChunk to reflect the span of the read.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	begin := Offset{File: r.base, Block: uint16(r.off)}
	if !r.haveBuf {
		begin = Offset{File: r.nextBase, Block: 0}
	}

	if err := r.fill(); err != nil {
		if err == io.EOF {
			r.err = io.EOF
		}
		return 0, err
	}

	if len(r.buf) == 0 {
		// Empty block, e.g. the EOF marker; advance past it transparently.
		r.haveBuf = false
		if r.nextBase == begin.File {
			// Avoid looping forever on a stream that is only an EOF marker.
			r.err = io.EOF
			return 0, io.EOF
		}
		return r.Read(p)
	}

	n := copy(p, r.buf[r.off:])
	r.off += n
	end := Offset{File: r.base, Block: uint16(r.off)}
	if r.off == len(r.buf) {
		r.haveBuf = false
		end = Offset{File: r.nextBase, Block: 0}
	}

	r.lastChunk = Chunk{Begin: begin, End: end}
	return n, nil
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(r, b[:])
	return b[0], err
}

// LastChunk returns the Chunk of virtual positions spanned by the most
// recent Read call.
func (r *Reader) LastChunk() Chunk {
	return r.lastChunk
}

// Tell returns the virtual position of the next byte to be read.
func (r *Reader) Tell() Offset {
	if r.haveBuf {
		return Offset{File: r.base, Block: uint16(r.off)}
	}
	return Offset{File: r.nextBase, Block: 0}
}

// Seek moves the Reader to the virtual position off. The underlying
// reader must implement io.ReadSeeker. It fails with ErrInvalidInput if
// the block component of off is out of range for the block it names.
func (r *Reader) Seek(off Offset) error {
	if r.rs == nil {
		return fmt.Errorf("%w: underlying reader does not support seeking", ErrInvalidInput)
	}
	r.err = nil
	r.haveBuf = false
	r.nextBase = off.File
	if err := r.fill(); err != nil {
		return err
	}
	if int(off.Block) > len(r.buf) {
		return fmt.Errorf("%w: uoffset %d exceeds block length %d", ErrInvalidInput, off.Block, len(r.buf))
	}
	r.off = int(off.Block)
	return nil
}
