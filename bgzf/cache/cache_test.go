// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"testing"

	"github.com/kortschak/htscore/bgzf"
)

func TestLRUEviction(t *testing.T) {
	c := NewLRU(2)
	b1 := &bgzf.CachedBlock{Base: 1}
	b2 := &bgzf.CachedBlock{Base: 2}
	b3 := &bgzf.CachedBlock{Base: 3}

	if _, retained := c.Put(b1); !retained {
		t.Fatal("expected b1 to be retained")
	}
	if _, retained := c.Put(b2); !retained {
		t.Fatal("expected b2 to be retained")
	}

	// Touch b1 so b2 becomes the least recently used.
	if got := c.Get(1); got != b1 {
		t.Fatalf("Get(1) = %v, want b1", got)
	}
	c.Put(b1)

	evicted, retained := c.Put(b3)
	if !retained {
		t.Fatal("expected b3 to be retained")
	}
	if evicted != b2 {
		t.Errorf("expected b2 to be evicted, got %v", evicted)
	}
}

func TestFIFOEviction(t *testing.T) {
	c := NewFIFO(2)
	b1 := &bgzf.CachedBlock{Base: 1}
	b2 := &bgzf.CachedBlock{Base: 2}
	b3 := &bgzf.CachedBlock{Base: 3}

	c.Put(b1)
	c.Put(b2)
	// Accessing b1 should not change FIFO eviction order.
	c.Get(1)

	evicted, retained := c.Put(b3)
	if !retained {
		t.Fatal("expected b3 to be retained")
	}
	if evicted != b1 {
		t.Errorf("expected b1 (first in) to be evicted, got %v", evicted)
	}
}

func TestRandomCacheBasics(t *testing.T) {
	c := NewRandom(2)
	b1 := &bgzf.CachedBlock{Base: 1}
	b2 := &bgzf.CachedBlock{Base: 2}
	b3 := &bgzf.CachedBlock{Base: 3}

	c.Put(b1)
	c.Put(b2)
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	evicted, retained := c.Put(b3)
	if !retained {
		t.Fatal("expected b3 to be retained")
	}
	if evicted == nil {
		t.Fatal("expected an eviction when cache is full")
	}
	if c.Len() != 2 {
		t.Errorf("Len() after eviction = %d, want 2", c.Len())
	}
}

func TestResizeAndDrop(t *testing.T) {
	c := NewLRU(4)
	for i := int64(0); i < 4; i++ {
		c.Put(&bgzf.CachedBlock{Base: i})
	}
	c.Resize(2)
	if c.Len() != 2 {
		t.Fatalf("Len() after Resize = %d, want 2", c.Len())
	}
	if c.Cap() != 2 {
		t.Fatalf("Cap() after Resize = %d, want 2", c.Cap())
	}
}

func TestFree(t *testing.T) {
	c := NewLRU(2)
	c.Put(&bgzf.CachedBlock{Base: 1})
	if !Free(1, c) {
		t.Error("Free(1, c) should succeed with one empty slot")
	}
	c.Put(&bgzf.CachedBlock{Base: 2})
	if !Free(1, c) {
		t.Error("Free(1, c) should evict to make room in a full cache")
	}
	if c.Len() != 1 {
		t.Errorf("Len() after Free = %d, want 1", c.Len())
	}
}

func TestStatsRecorder(t *testing.T) {
	s := &StatsRecorder{Cache: NewLRU(1)}
	s.Get(42) // miss
	s.Put(&bgzf.CachedBlock{Base: 42})
	s.Put(&bgzf.CachedBlock{Base: 43}) // evicts 42

	stats := s.Stats()
	if stats.Gets != 1 || stats.Misses != 1 {
		t.Errorf("unexpected get stats: %+v", stats)
	}
	if stats.Puts != 2 || stats.Retains != 2 || stats.Evictions != 1 {
		t.Errorf("unexpected put stats: %+v", stats)
	}
}
