// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package naturaltime

import (
	"io"
	"log/slog"

	"cloudeng.io/naturaltime/astronomy"
	"cloudeng.io/naturaltime/internal/memo"
)

// Calendar computes natural dates and the sun and moon events within
// them using the supplied ephemeris. It memoizes solstice, sun event
// and mustaches queries. A Calendar is not safe for concurrent use,
// callers must serialize access or use a Calendar per goroutine.
type Calendar struct {
	eph       astronomy.Ephemeris
	logger    *slog.Logger
	seasons   *memo.Cache[int, astronomy.Seasons]
	sunEvents *memo.Cache[sunEventsKey, SunEvents]
	mustaches *memo.Cache[mustachesKey, Mustaches]
}

type sunEventsKey struct {
	nadir     int64
	latitude  float64
	longitude float64
}

type mustachesKey struct {
	year     int
	latitude float64
}

type options struct {
	logger    *slog.Logger
	policy    memo.Policy
	epochSize int
}

// Option represents an option to New.
type Option func(*options)

// WithLogger sets the logger used for debug output, the default
// discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEvictionPolicy sets the eviction policy used by the solstice
// cache, the default is memo.FIFO.
func WithEvictionPolicy(p memo.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithEpochCacheSize sets the number of years of solstices that are
// cached, the default is 2 which is sufficient for the consecutive
// year lookups needed to resolve a natural year.
func WithEpochCacheSize(n int) Option {
	return func(o *options) {
		o.epochSize = n
	}
}

// New returns a new Calendar that uses eph for all astronomical queries.
func New(eph astronomy.Ephemeris, opts ...Option) *Calendar {
	o := options{policy: memo.FIFO, epochSize: 2}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Calendar{
		eph:       eph,
		logger:    o.logger,
		seasons:   memo.New[int, astronomy.Seasons](o.epochSize, o.policy),
		sunEvents: memo.New[sunEventsKey, SunEvents](1, memo.FIFO),
		mustaches: memo.New[mustachesKey, Mustaches](1, memo.FIFO),
	}
}

// Reset discards all cached results and any state held by the
// ephemeris. Subsequent queries return the same results as before.
func (c *Calendar) Reset() {
	c.eph.Reset()
	c.seasons.Reset()
	c.sunEvents.Reset()
	c.mustaches.Reset()
	c.logger.Debug("caches reset")
}

// CacheStats returns the activity of the solstice, sun events and
// mustaches caches.
func (c *Calendar) CacheStats() (seasons, sunEvents, mustaches memo.Stats) {
	return c.seasons.Stats(), c.sunEvents.Stats(), c.mustaches.Stats()
}

func (c *Calendar) seasonsFor(year int) (astronomy.Seasons, error) {
	if s, ok := c.seasons.Get(year); ok {
		return s, nil
	}
	s, err := c.eph.Seasons(year)
	if err != nil {
		return astronomy.Seasons{}, err
	}
	c.logger.Debug("solstices", "year", year, "june", s.JuneSolstice, "december", s.DecemberSolstice, "cached", c.seasons.Keys())
	c.seasons.Put(year, s)
	return s, nil
}
