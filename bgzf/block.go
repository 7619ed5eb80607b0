// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/kortschak/htscore/internal/pool"
)

// BlockSize is the maximum amount of uncompressed payload that may be
// packed into a single BGZF block.
const BlockSize = 0xff00

// MaxBlockSize is the largest a complete BGZF frame, header and trailer
// included, may be.
const MaxBlockSize = 0x10000

// gzipID1, gzipID2 and deflateCM are the fixed leading bytes of every
// gzip member, BGZF included.
const (
	gzipID1   = 0x1f
	gzipID2   = 0x8b
	deflateCM = 8
	flgExtra  = 0x04
)

// bcSI1, bcSI2 identify the BGZF "BC" extra subfield that carries BSIZE.
const (
	bcSI1 = 'B'
	bcSI2 = 'C'
)

// fixedHeaderLen is the length, in bytes, of the gzip member header up to
// and including XLEN, for a BGZF block (MTIME and XFL are always zero).
const fixedHeaderLen = 12

// bcSubfieldLen is the length of the BC extra subfield, SI1/SI2/SLEN/BSIZE.
const bcSubfieldLen = 6

// trailerLen is the length of the CRC32+ISIZE trailer.
const trailerLen = 8

// ErrBlockOverflow is returned when an encoded block would exceed
// MaxBlockSize.
var ErrBlockOverflow = errors.New("bgzf: block overflow")

// eofMarker is the designated empty BGZF block used to signal orderly
// termination of a stream.
var eofMarker = []byte{
	0x1f, 0x8b, 0x08, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0x06, 0x00,
	0x42, 0x43, 0x02, 0x00, 0x1b, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

// EOF returns a copy of the 28 byte BGZF end-of-file marker block.
func EOF() []byte {
	b := make([]byte, len(eofMarker))
	copy(b, eofMarker)
	return b
}

// IsEOF reports whether b is exactly the BGZF EOF marker block.
func IsEOF(b []byte) bool {
	return bytes.Equal(b, eofMarker)
}

// encodeBlock compresses payload (which must be at most BlockSize bytes)
// at the given compression level and returns a complete BGZF frame. The
// BC subfield's BSIZE is set to len(frame)-1.
func encodeBlock(payload []byte, level int) ([]byte, error) {
	if len(payload) > BlockSize {
		return nil, fmt.Errorf("%w: payload length %d exceeds block size %d", ErrBlockOverflow, len(payload), BlockSize)
	}

	var deflated bytes.Buffer
	fw, err := flate.NewWriter(&deflated, level)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(payload); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}

	total := fixedHeaderLen + bcSubfieldLen + deflated.Len() + trailerLen
	if total > MaxBlockSize {
		// Compression expanded the payload past what a single block can
		// hold; fall back to a stored (uncompressed) deflate block.
		deflated.Reset()
		fw, err = flate.NewWriter(&deflated, flate.NoCompression)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(payload); err != nil {
			return nil, err
		}
		if err := fw.Close(); err != nil {
			return nil, err
		}
		total = fixedHeaderLen + bcSubfieldLen + deflated.Len() + trailerLen
		if total > MaxBlockSize {
			return nil, fmt.Errorf("%w: stored block length %d exceeds maximum block size", ErrBlockOverflow, total)
		}
	}

	buf := make([]byte, total)
	buf[0] = gzipID1
	buf[1] = gzipID2
	buf[2] = deflateCM
	buf[3] = flgExtra
	// MTIME, XFL, OS are left zero/unknown.
	binary.LittleEndian.PutUint16(buf[10:12], bcSubfieldLen)
	buf[12] = bcSI1
	buf[13] = bcSI2
	binary.LittleEndian.PutUint16(buf[14:16], 2)
	binary.LittleEndian.PutUint16(buf[16:18], uint16(total-1))

	n := copy(buf[fixedHeaderLen+bcSubfieldLen:], deflated.Bytes())

	crc := crc32.ChecksumIEEE(payload)
	trailer := buf[fixedHeaderLen+bcSubfieldLen+n:]
	binary.LittleEndian.PutUint32(trailer[0:4], crc)
	binary.LittleEndian.PutUint32(trailer[4:8], uint32(len(payload)))

	return buf, nil
}

// decodedBlock holds the result of decoding a single BGZF frame.
type decodedBlock struct {
	// frameLen is the number of bytes the frame occupied on the wire.
	frameLen int
	payload  []byte
}

// decodeBlock reads exactly one BGZF frame from r, validates its CRC32
// and ISIZE, and returns the decompressed payload along with the frame's
// on-wire length. It fails with an error wrapping ErrInvalidData if the
// header is malformed or the checksum does not match.
func decodeBlock(r io.Reader) (decodedBlock, error) {
	var hdr [fixedHeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return decodedBlock{}, err
	}
	if hdr[0] != gzipID1 || hdr[1] != gzipID2 || hdr[2] != deflateCM {
		return decodedBlock{}, fmt.Errorf("%w: bad gzip magic", ErrInvalidData)
	}
	if hdr[3]&flgExtra == 0 {
		return decodedBlock{}, fmt.Errorf("%w: missing FEXTRA flag", ErrInvalidData)
	}
	xlen := int(binary.LittleEndian.Uint16(hdr[10:12]))

	extra := make([]byte, xlen)
	if _, err := io.ReadFull(r, extra); err != nil {
		return decodedBlock{}, err
	}

	bsize, ok := bcBSize(extra)
	if !ok {
		return decodedBlock{}, fmt.Errorf("%w: missing BC subfield", ErrInvalidData)
	}

	total := int(bsize) + 1
	remaining := total - fixedHeaderLen - xlen
	if remaining < trailerLen {
		return decodedBlock{}, fmt.Errorf("%w: implausible block size %d", ErrInvalidData, total)
	}

	rest := pool.GetBuffer(remaining)
	defer pool.PutBuffer(rest)
	if _, err := io.ReadFull(r, rest); err != nil {
		return decodedBlock{}, err
	}

	compressed := rest[:len(rest)-trailerLen]
	wantCRC := binary.LittleEndian.Uint32(rest[len(rest)-trailerLen : len(rest)-trailerLen+4])
	wantISize := binary.LittleEndian.Uint32(rest[len(rest)-trailerLen+4:])

	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()
	payload, err := io.ReadAll(fr)
	if err != nil {
		return decodedBlock{}, fmt.Errorf("%w: inflating block: %v", ErrInvalidData, err)
	}

	if uint32(len(payload)) != wantISize {
		return decodedBlock{}, fmt.Errorf("%w: ISIZE mismatch: have %d, want %d", ErrInvalidData, len(payload), wantISize)
	}
	if crc32.ChecksumIEEE(payload) != wantCRC {
		return decodedBlock{}, fmt.Errorf("%w: CRC32 mismatch", ErrInvalidData)
	}

	return decodedBlock{frameLen: total, payload: payload}, nil
}

// bcBSize scans a gzip EXTRA field for the BGZF "BC" subfield and returns
// its BSIZE value.
func bcBSize(extra []byte) (uint16, bool) {
	for i := 0; i+4 <= len(extra); {
		si1, si2 := extra[i], extra[i+1]
		slen := int(binary.LittleEndian.Uint16(extra[i+2 : i+4]))
		i += 4
		if i+slen > len(extra) {
			return 0, false
		}
		if si1 == bcSI1 && si2 == bcSI2 && slen == 2 {
			return binary.LittleEndian.Uint16(extra[i : i+2]), true
		}
		i += slen
	}
	return 0, false
}
