// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package astronomy provides the ephemeris queries needed to compute
// natural dates and the sun and moon events within them. All instants
// are expressed as milliseconds since the unix epoch, UTC.
package astronomy

import (
	"fmt"
)

// Body identifies a celestial body.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	}
	return fmt.Sprintf("body(%d)", int(b))
}

// Direction selects between ascending (Rise) and descending (Set)
// altitude crossings.
type Direction int

const (
	Rise Direction = +1
	Set  Direction = -1
)

func (d Direction) String() string {
	if d == Rise {
		return "rise"
	}
	return "set"
}

// Observer is a location at sea level, latitude and longitude are in
// degrees with north and east positive.
type Observer struct {
	Latitude  float64
	Longitude float64
}

func (o Observer) validate() error {
	if !(o.Latitude >= -90 && o.Latitude <= 90) {
		return fmt.Errorf("latitude %v is outside [-90, 90]", o.Latitude)
	}
	if !(o.Longitude >= -180 && o.Longitude <= 180) {
		return fmt.Errorf("longitude %v is outside [-180, 180]", o.Longitude)
	}
	return nil
}

// Seasons holds the solstice instants of a calendar year.
type Seasons struct {
	JuneSolstice     int64
	DecemberSolstice int64
}

// Equatorial represents apparent equatorial coordinates of date,
// RightAscension is in hours and Declination in degrees.
type Equatorial struct {
	RightAscension float64
	Declination    float64
}

// Horizontal represents horizon coordinates in degrees. Azimuth is
// measured eastward from north.
type Horizontal struct {
	Altitude float64
	Azimuth  float64
}

// Transit is the result of an hour angle search.
type Transit struct {
	Time int64
	Horizontal
}

// Ephemeris is the set of astronomical queries that natural time
// computations depend on. Searches that find no event within their
// window return false, this is a normal outcome and not an error.
type Ephemeris interface {
	// Seasons returns the June and December solstices of year.
	Seasons(year int) (Seasons, error)
	// SearchRiseSet returns the first rise or set of body at or after
	// start and within limitDays.
	SearchRiseSet(body Body, obs Observer, dir Direction, start int64, limitDays float64) (int64, bool, error)
	// SearchAltitudeCrossing returns the first instant at or after start,
	// within limitDays, when the geometric altitude of body crosses
	// altitude degrees in the specified direction.
	SearchAltitudeCrossing(body Body, obs Observer, dir Direction, start int64, limitDays, altitude float64) (int64, bool, error)
	// SearchHourAngleTransit returns the next (direction > 0) or
	// previous (direction <= 0) instant relative to start when body
	// reaches hourAngle hours west of the observer's meridian.
	SearchHourAngleTransit(body Body, obs Observer, hourAngle float64, start int64, direction int) (Transit, bool, error)
	// EquatorialPosition returns the apparent equatorial coordinates
	// of body at the specified instant.
	EquatorialPosition(body Body, when int64, obs Observer) (Equatorial, error)
	// HorizonFromEquatorial converts equatorial coordinates to the
	// observer's horizon, including normal atmospheric refraction.
	HorizonFromEquatorial(when int64, obs Observer, eq Equatorial) Horizontal
	// MoonPhaseAngle returns the moon's phase in degrees, 0 is new
	// moon, 180 is full.
	MoonPhaseAngle(when int64) (float64, error)
	// Reset discards any state held by the implementation.
	Reset()
}
