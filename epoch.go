// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package naturaltime

import (
	"math"
	"time"
)

const msPerDay int64 = 86400000

// ReferenceInstant is 2012-12-21T12:00:00Z, the instant from which
// the natural year and absolute day counters are numbered.
const ReferenceInstant int64 = 1356091200000

var referenceYear = utcYear(ReferenceInstant)

func utcYear(ms int64) int {
	return time.UnixMilli(ms).UTC().Year()
}

// longitudeShift returns the offset, in fractional milliseconds, from
// the 180° meridian to the specified longitude.
func longitudeShift(longitude float64) float64 {
	return (-longitude + 180.0) * float64(msPerDay) / 360.0
}

// newYearInstant returns 12:00 UTC on the date of the solstice, or on
// the following date if the solstice occurs at or after 12:00 UTC.
func newYearInstant(solstice int64) int64 {
	t := time.UnixMilli(solstice).UTC()
	y, m, d := t.Date()
	if t.Hour() >= 12 {
		d++
	}
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC).UnixMilli()
}

// yearStart returns the longitude localized start of the natural year
// that begins near the December solstice of year, and its duration
// in days.
func (c *Calendar) yearStart(op string, year int, longitude float64) (int64, int, error) {
	s0, err := c.seasonsFor(year)
	if err != nil {
		return 0, 0, ephemerisError(op, "seasons", err)
	}
	s1, err := c.seasonsFor(year + 1)
	if err != nil {
		return 0, 0, ephemerisError(op, "seasons", err)
	}
	start := newYearInstant(s0.DecemberSolstice)
	end := newYearInstant(s1.DecemberSolstice)
	duration := int((end - start) / msPerDay)
	return int64(math.Round(float64(start) + longitudeShift(longitude))), duration, nil
}
