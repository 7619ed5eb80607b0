// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"bufio"
	"io"
)

// DefaultCompression, NoCompression and BestCompression mirror the levels
// accepted by compress/flate and github.com/klauspost/compress/flate.
const (
	NoCompression      = 0
	BestSpeed          = 1
	BestCompression    = 9
	DefaultCompression = -1
)

// Writer writes a BGZF stream, packing written bytes into blocks of at
// most BlockSize uncompressed bytes and flushing each completed block as
// an independent gzip member. Close writes any buffered payload and the
// trailing EOF marker block.
//
// A Writer is safe for use by a single goroutine.
type Writer struct {
	w     *bufio.Writer
	level int

	buf    []byte
	closed bool

	err error
}

// NewWriter returns a Writer that writes a BGZF stream to w, compressing
// at the default compression level. The wc parameter is retained for API
// compatibility with the concurrent writer constructor and is otherwise
// unused here.
func NewWriter(w io.Writer, wc int) *Writer {
	wr, err := NewWriterLevel(w, DefaultCompression, wc)
	if err != nil {
		// DefaultCompression is always valid.
		panic(err)
	}
	return wr
}

// NewWriterLevel returns a Writer as NewWriter does, compressing at the
// given flate compression level.
func NewWriterLevel(w io.Writer, level, wc int) (*Writer, error) {
	_ = wc
	return &Writer{
		w:     bufio.NewWriterSize(w, MaxBlockSize),
		level: level,
		buf:   make([]byte, 0, BlockSize),
	}, nil
}

// Write implements io.Writer, buffering p and flushing full blocks as
// they accumulate.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, ErrClosed
	}

	var n int
	for len(p) > 0 {
		room := BlockSize - len(w.buf)
		k := room
		if k > len(p) {
			k = len(p)
		}
		w.buf = append(w.buf, p[:k]...)
		p = p[k:]
		n += k

		if len(w.buf) == BlockSize {
			if err := w.flushBlock(); err != nil {
				w.err = err
				return n, err
			}
		}
	}
	return n, nil
}

// flushBlock encodes and writes the currently buffered payload as a
// single BGZF block, regardless of whether it is full.
func (w *Writer) flushBlock() error {
	if len(w.buf) == 0 {
		return nil
	}
	frame, err := encodeBlock(w.buf, w.level)
	if err != nil {
		return err
	}
	w.buf = w.buf[:0]
	_, err = w.w.Write(frame)
	return err
}

// Flush writes any buffered payload as a block and flushes the
// underlying writer. It does not write the EOF marker.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return ErrClosed
	}
	if err := w.flushBlock(); err != nil {
		w.err = err
		return err
	}
	return w.w.Flush()
}

// Close flushes any buffered payload, writes the BGZF EOF marker block
// and flushes the underlying writer. Close is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.err != nil {
		return w.err
	}
	if err := w.flushBlock(); err != nil {
		return err
	}
	if _, err := w.w.Write(EOF()); err != nil {
		return err
	}
	return w.w.Flush()
}
