// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"bufio"
	"context"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
)

// job is a single block's payload awaiting compression, tagged with a
// monotonic sequence number so the emitter can restore write order.
type job struct {
	seq     int64
	payload []byte
}

// result is the encoded frame corresponding to a job.
type result struct {
	seq   int64
	frame []byte
	err   error
}

// PWriter is a concurrent BGZF writer. Blocks are compressed by a pool of
// worker goroutines and reassembled into their original order before
// being written out, so the resulting stream is byte-identical to one
// produced by Writer at the same compression level.
//
// A PWriter is safe for use by a single goroutine.
type PWriter struct {
	w     *bufio.Writer
	level int

	buf []byte
	seq int64

	jobs chan job

	wg     sync.WaitGroup
	eg     *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	cond    *sync.Cond
	pending map[int64][]byte
	next    int64
	werr    error

	closed bool
}

// NewPWriter returns a PWriter that writes a BGZF stream to w using wc
// worker goroutines, compressing at the default compression level. If wc
// is less than 1 it is treated as 1.
func NewPWriter(w io.Writer, wc int) *PWriter {
	pw, err := NewPWriterLevel(w, DefaultCompression, wc)
	if err != nil {
		panic(err)
	}
	return pw
}

// NewPWriterLevel is as NewPWriter, compressing at the given flate
// compression level.
func NewPWriterLevel(w io.Writer, level, wc int) (*PWriter, error) {
	if wc < 1 {
		wc = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)

	pw := &PWriter{
		w:       bufio.NewWriterSize(w, MaxBlockSize),
		level:   level,
		buf:     make([]byte, 0, BlockSize),
		jobs:    make(chan job, wc*2),
		eg:      eg,
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[int64][]byte),
	}
	pw.cond = sync.NewCond(&pw.mu)

	for i := 0; i < wc; i++ {
		eg.Go(pw.worker)
	}

	return pw, nil
}

// worker compresses jobs from pw.jobs and deposits the resulting frame
// into pw.pending, signalling the emitter when the next expected
// sequence number becomes available.
func (pw *PWriter) worker() error {
	for {
		select {
		case <-pw.ctx.Done():
			return pw.ctx.Err()
		case j, ok := <-pw.jobs:
			if !ok {
				return nil
			}
			frame, err := encodeBlock(j.payload, pw.level)
			pw.mu.Lock()
			if err != nil && pw.werr == nil {
				pw.werr = err
			}
			pw.pending[j.seq] = frame
			pw.cond.Broadcast()
			pw.mu.Unlock()
			if err != nil {
				return err
			}
		}
	}
}

// drain writes, in sequence order, every pending frame whose sequence
// number is below upto, waiting for frames that are not yet encoded.
func (pw *PWriter) drain(upto int64) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	for pw.next < upto {
		frame, ok := pw.pending[pw.next]
		if !ok {
			if pw.werr != nil {
				return pw.werr
			}
			pw.cond.Wait()
			continue
		}
		delete(pw.pending, pw.next)
		pw.next++
		pw.mu.Unlock()
		_, err := pw.w.Write(frame)
		pw.mu.Lock()
		if err != nil {
			return err
		}
	}
	return pw.werr
}

// Write implements io.Writer.
func (pw *PWriter) Write(p []byte) (int, error) {
	if pw.closed {
		return 0, ErrClosed
	}

	var n int
	for len(p) > 0 {
		room := BlockSize - len(pw.buf)
		k := room
		if k > len(p) {
			k = len(p)
		}
		pw.buf = append(pw.buf, p[:k]...)
		p = p[k:]
		n += k

		if len(pw.buf) == BlockSize {
			if err := pw.submit(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// submit hands the currently buffered payload to the worker pool.
func (pw *PWriter) submit() error {
	if len(pw.buf) == 0 {
		return nil
	}
	payload := make([]byte, len(pw.buf))
	copy(payload, pw.buf)
	pw.buf = pw.buf[:0]

	seq := pw.seq
	pw.seq++

	select {
	case pw.jobs <- job{seq: seq, payload: payload}:
	case <-pw.ctx.Done():
		return pw.ctx.Err()
	}
	return pw.drain(seq)
}

// Flush submits any buffered payload and blocks until every block
// submitted so far has been written out, in order.
func (pw *PWriter) Flush() error {
	if pw.closed {
		return ErrClosed
	}
	if err := pw.submit(); err != nil {
		return err
	}
	if err := pw.drain(pw.seq); err != nil {
		return err
	}
	return pw.w.Flush()
}

// Close flushes any buffered payload, shuts down the worker pool, writes
// the BGZF EOF marker block and flushes the underlying writer. Close is
// idempotent.
func (pw *PWriter) Close() error {
	if pw.closed {
		return nil
	}
	err := pw.Flush()
	pw.closed = true
	close(pw.jobs)
	werr := pw.eg.Wait()
	pw.cancel()
	if err != nil {
		return err
	}
	if werr != nil {
		return werr
	}

	if _, err := pw.w.Write(EOF()); err != nil {
		return err
	}
	return pw.w.Flush()
}
