// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package memo_test

import (
	"slices"
	"testing"

	"cloudeng.io/naturaltime/internal/memo"
)

func TestFIFO(t *testing.T) {
	c := memo.New[int, string](2, memo.FIFO)
	c.Put(2011, "a")
	c.Put(2012, "b")
	if v, ok := c.Get(2011); !ok || v != "a" {
		t.Errorf("got %v %v", v, ok)
	}
	// Reads do not change the FIFO order, 2011 is still the oldest.
	c.Put(2013, "c")
	if _, ok := c.Get(2011); ok {
		t.Errorf("2011 should have been evicted")
	}
	if got, want := c.Keys(), []int{2012, 2013}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	c.Put(2012, "B")
	if v, _ := c.Get(2012); v != "B" {
		t.Errorf("got %v, want B", v)
	}
	if got, want := c.Keys(), []int{2012, 2013}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := c.Stats(), (memo.Stats{Hits: 2, Misses: 1, Evictions: 1}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLRU(t *testing.T) {
	c := memo.New[int, string](2, memo.LRU)
	c.Put(1, "a")
	c.Put(2, "b")
	c.Get(1)
	c.Put(3, "c")
	if _, ok := c.Get(2); ok {
		t.Errorf("2 should have been evicted")
	}
	if got, want := c.Keys(), []int{1, 3}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	c.Put(1, "A")
	c.Put(4, "d")
	if got, want := c.Keys(), []int{1, 4}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSingleSlot(t *testing.T) {
	type key struct {
		nadir    int64
		lat, lon float64
	}
	c := memo.New[key, int](0, memo.FIFO)
	for i := range 10 {
		c.Put(key{int64(i), 1, 2}, i)
		if got, want := c.Len(), 1; got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
		if v, ok := c.Get(key{int64(i), 1, 2}); !ok || v != i {
			t.Errorf("got %v %v, want %v", v, ok, i)
		}
	}
	if _, ok := c.Get(key{8, 1, 2}); ok {
		t.Errorf("replaced entry should not be found")
	}
	c.Reset()
	if got, want := c.Len(), 0; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := c.Stats(), (memo.Stats{}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	c.Put(key{1, 1, 1}, 1)
	c.Put(key{2, 2, 2}, 2)
	if got, want := c.Keys(), []key{{2, 2, 2}}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []memo.Policy{memo.FIFO, memo.LRU} {
		got, err := memo.ParsePolicy(p.String())
		if err != nil || got != p {
			t.Errorf("got %v %v, want %v", got, err, p)
		}
	}
	if _, err := memo.ParsePolicy("lfu"); err == nil {
		t.Errorf("expected an error")
	}
}
