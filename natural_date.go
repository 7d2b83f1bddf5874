// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package naturaltime

import (
	"fmt"
	"math"
)

// NaturalDate represents an instant in natural time as observed at a
// given longitude. It is immutable once created by Calendar.NewDate.
type NaturalDate struct {
	// Year counts natural years from the one that starts near the
	// December 2011 solstice, which is year 0. ReferenceInstant falls
	// at the end of year 0 for most longitudes but in year 1 close to
	// 180°.
	Year       int
	Moon       int // 1..14
	Week       int // 1..53
	WeekOfMoon int // 1..4

	UnixTime  int64   // ms UTC
	Longitude float64 // degrees

	// Day counts whole natural days since ReferenceInstant.
	Day       int
	DayOfYear int // 1..YearDuration
	DayOfMoon int // 1..28
	DayOfWeek int // 1..7

	IsRainbowDay bool
	// TimeDeg is the position of UnixTime within its natural day, in
	// degrees in [0, 360).
	TimeDeg float64

	YearStart    int64 // ms UTC
	YearDuration int   // days, 365 or 366
	// Nadir is the start of the natural day containing UnixTime.
	Nadir int64
}

const (
	daysPerMoon     = 28
	daysPerWeek     = 7
	weeksPerMoon    = 4
	moonsPerYear    = 13
	regularYearDays = moonsPerYear * daysPerMoon
)

// NewDate returns the natural date for unixMS, in milliseconds UTC, as
// observed at longitude degrees east.
func (c *Calendar) NewDate(unixMS int64, longitude float64) (NaturalDate, error) {
	const op = "naturaltime.NewDate"
	if !(longitude >= -180 && longitude <= 180) {
		return NaturalDate{}, rangeError(op, "longitude %v is outside [-180, 180]", longitude)
	}
	if unixMS <= 0 {
		return NaturalDate{}, timeDomainError(op, unixMS)
	}

	// The natural year that contains unixMS started near the December
	// solstice of either the previous or the current UTC year.
	year := utcYear(unixMS)
	start, duration, err := c.yearStart(op, year-1, longitude)
	if err != nil {
		return NaturalDate{}, err
	}
	if unixMS-start >= int64(duration)*msPerDay {
		c.logger.Debug("natural year re-resolved", "unix", unixMS, "year", year, "previous start", start)
		start, duration, err = c.yearStart(op, year, longitude)
		if err != nil {
			return NaturalDate{}, err
		}
	}
	return newDate(unixMS, longitude, start, duration), nil
}

func newDate(unixMS int64, longitude float64, start int64, duration int) NaturalDate {
	days := float64(unixMS-start) / float64(msPerDay)
	whole := math.Floor(days)
	weeks := math.Floor(days / daysPerWeek)

	nd := NaturalDate{
		Year:         utcYear(start) - referenceYear + 1,
		Moon:         int(math.Floor(days/daysPerMoon)) + 1,
		Week:         int(weeks) + 1,
		WeekOfMoon:   int(math.Mod(weeks, weeksPerMoon)) + 1,
		UnixTime:     unixMS,
		Longitude:    longitude,
		DayOfYear:    int(whole) + 1,
		DayOfMoon:    int(math.Mod(whole, daysPerMoon)) + 1,
		DayOfWeek:    int(math.Mod(whole, daysPerWeek)) + 1,
		YearStart:    start,
		YearDuration: duration,
		Nadir:        start + int64(whole)*msPerDay,
	}

	// The reference instant is localized with a truncated, rather than
	// rounded, shift.
	ref := ReferenceInstant + int64(longitudeShift(longitude))
	nd.Day = int(math.Floor(float64(unixMS-ref) / float64(msPerDay)))

	nd.TimeDeg = toDegrees(unixMS - nd.Nadir)
	nd.IsRainbowDay = nd.DayOfYear > regularYearDays
	return nd
}

// IsZero returns true if nd was not created by Calendar.NewDate.
func (nd NaturalDate) IsZero() bool {
	return nd == NaturalDate{}
}

func (nd NaturalDate) valid() bool {
	return nd.UnixTime > 0 && (nd.YearDuration == 365 || nd.YearDuration == 366)
}

func (nd NaturalDate) validate(op string) error {
	if !nd.valid() {
		return internalError(op, fmt.Errorf("invalid natural date: unix time %v, year duration %v", nd.UnixTime, nd.YearDuration))
	}
	return nil
}

// IsSecondRainbowDay returns true for the 366th day of a natural year.
func (nd NaturalDate) IsSecondRainbowDay() bool {
	return nd.DayOfYear > regularYearDays+1
}
