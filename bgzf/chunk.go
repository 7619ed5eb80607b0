// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

// Chunk is a half-open range [Begin, End) of virtual positions within a
// BGZF stream, as found in the chunk lists of BAI, TABIX and CSI indexes.
type Chunk struct {
	Begin Offset
	End   Offset
}

// Valid reports whether the chunk satisfies Begin <= End.
func (c Chunk) Valid() bool { return !c.End.Less(c.Begin) }
