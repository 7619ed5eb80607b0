// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"io"

	"golang.org/x/exp/mmap"
)

// mmapReadSeeker adapts a mmap.ReaderAt, which only supports positioned
// reads, into the io.ReadSeeker a Reader requires for virtual-position
// seeking.
type mmapReadSeeker struct {
	r   *mmap.ReaderAt
	off int64
}

func (m *mmapReadSeeker) Read(p []byte) (int, error) {
	n, err := m.r.ReadAt(p, m.off)
	m.off += int64(n)
	return n, err
}

func (m *mmapReadSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.off = offset
	case io.SeekCurrent:
		m.off += offset
	case io.SeekEnd:
		m.off = int64(m.r.Len()) + offset
	}
	return m.off, nil
}

func (m *mmapReadSeeker) Close() error { return m.r.Close() }

// Open memory-maps the file at path and returns a Reader over its BGZF
// contents. Seeks on the returned Reader, including those driven by an
// index query, are served from the mapping rather than a read syscall
// per block, which matters when a query touches many scattered chunks
// of a large BAM, CSI or TABIX-indexed file.
func Open(path string) (*Reader, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(&mmapReadSeeker{r: ra}, 1)
	if err != nil {
		ra.Close()
		return nil, err
	}
	return r, nil
}
