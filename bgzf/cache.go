// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

// Cache is a decoded-block caching type keyed by the compressed byte
// offset (coffset) of the block in the underlying stream. Basic cache
// implementations are provided in the bgzf/cache subpackage.
//
// If a Cache is a Wrapper, its Wrap method is called on newly decoded
// blocks before they are stored.
type Cache interface {
	// Get returns the Block in the Cache with the specified base
	// offset, or nil if it does not exist. Whether the returned
	// Block stays in the Cache depends on the implementation.
	Get(base int64) *CachedBlock

	// Put inserts a Block into the Cache, returning the Block that
	// was evicted, if any, and whether the inserted Block was
	// retained by the Cache.
	Put(*CachedBlock) (evicted *CachedBlock, retained bool)
}

// Wrapper defines Cache types that need to modify a Block at its creation.
type Wrapper interface {
	Wrap(*CachedBlock) *CachedBlock
}

// CachedBlock holds the decompressed payload of a single BGZF block
// together with the compressed offset (coffset) it was decoded from.
type CachedBlock struct {
	Base    int64
	Payload []byte
}
