// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bgzf implements the BGZF blocked gzip format, the block
// compressed transport on which BAM, CSI and TABIX are built. It
// supplies the virtual-position addressing scheme used for random
// access and both a synchronous and a concurrent, order-preserving
// writer.
package bgzf

import "errors"

var (
	// ErrClosed is returned by operations on a Writer after Close.
	ErrClosed = errors.New("bgzf: write to closed writer")

	// ErrInvalidData is returned when bytes read from the underlying
	// source cannot be parsed as a well formed BGZF stream.
	ErrInvalidData = errors.New("bgzf: invalid data")

	// ErrInvalidInput is returned when a seek or read request cannot
	// be satisfied for the requested virtual position.
	ErrInvalidInput = errors.New("bgzf: invalid input")
)
