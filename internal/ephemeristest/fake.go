// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package ephemeristest provides a deterministic astronomy.Ephemeris
// for tests.
package ephemeristest

import (
	"time"

	"cloudeng.io/naturaltime/astronomy"
)

// Event identifies a search performed by the fake.
type Event struct {
	Body      astronomy.Body
	Direction astronomy.Direction
	// Altitude is the threshold of an altitude crossing, ignored for
	// rise and set searches.
	Altitude float64
}

// Fake is an astronomy.Ephemeris whose events occur at fixed offsets
// from the start of each search. Events with no configured offset are
// not found.
type Fake struct {
	// Solstices overrides the solstices of a year, other years use
	// December 21 and June 21 at DefaultSolsticeHour UTC.
	Solstices map[int]astronomy.Seasons
	// RiseSet holds offsets, in milliseconds, for rise and set searches,
	// keyed with a zero Altitude.
	RiseSet map[Event]int64
	// Crossings holds offsets, in milliseconds, for altitude crossings.
	Crossings map[Event]int64
	// Transits holds the offset and altitude of hour angle transits by
	// body.
	Transits map[astronomy.Body]astronomy.Transit
	// Altitudes holds the altitude returned by HorizonFromEquatorial by
	// declination, see EquatorialPosition.
	Altitudes map[astronomy.Body]float64
	Phase     float64
	// Err, if set, is returned by every query.
	Err error

	Calls  map[string]int
	Resets int
}

// DefaultSolsticeHour is the UTC hour of solstices that are not
// overridden.
const DefaultSolsticeHour = 10

// New returns a Fake with no events.
func New() *Fake {
	return &Fake{
		Solstices: map[int]astronomy.Seasons{},
		RiseSet:   map[Event]int64{},
		Crossings: map[Event]int64{},
		Transits:  map[astronomy.Body]astronomy.Transit{},
		Altitudes: map[astronomy.Body]float64{},
		Calls:     map[string]int{},
	}
}

// DefaultSeasons returns the solstices used for years that are not
// overridden.
func DefaultSeasons(year int) astronomy.Seasons {
	return astronomy.Seasons{
		JuneSolstice:     time.Date(year, time.June, 21, DefaultSolsticeHour, 0, 0, 0, time.UTC).UnixMilli(),
		DecemberSolstice: time.Date(year, time.December, 21, DefaultSolsticeHour, 0, 0, 0, time.UTC).UnixMilli(),
	}
}

// Daylight configures sunrise and sunset at the specified offsets
// from the start of a search together with twilight and golden hour
// crossings an hour before and after them.
func (f *Fake) Daylight(rise, set time.Duration) {
	hour := time.Hour.Milliseconds()
	f.RiseSet[Event{Body: astronomy.Sun, Direction: astronomy.Rise}] = rise.Milliseconds()
	f.RiseSet[Event{Body: astronomy.Sun, Direction: astronomy.Set}] = set.Milliseconds()
	f.Crossings[Event{astronomy.Sun, astronomy.Rise, -12}] = rise.Milliseconds() - hour
	f.Crossings[Event{astronomy.Sun, astronomy.Set, -12}] = set.Milliseconds() + hour
	f.Crossings[Event{astronomy.Sun, astronomy.Rise, 6}] = rise.Milliseconds() + hour
	f.Crossings[Event{astronomy.Sun, astronomy.Set, 6}] = set.Milliseconds() - hour
}

func (f *Fake) Seasons(year int) (astronomy.Seasons, error) {
	f.Calls["Seasons"]++
	if f.Err != nil {
		return astronomy.Seasons{}, f.Err
	}
	if s, ok := f.Solstices[year]; ok {
		return s, nil
	}
	return DefaultSeasons(year), nil
}

func (f *Fake) SearchRiseSet(body astronomy.Body, _ astronomy.Observer, dir astronomy.Direction, start int64, _ float64) (int64, bool, error) {
	f.Calls["SearchRiseSet"]++
	if f.Err != nil {
		return 0, false, f.Err
	}
	offset, ok := f.RiseSet[Event{Body: body, Direction: dir}]
	if !ok {
		return 0, false, nil
	}
	return start + offset, true, nil
}

func (f *Fake) SearchAltitudeCrossing(body astronomy.Body, _ astronomy.Observer, dir astronomy.Direction, start int64, _, altitude float64) (int64, bool, error) {
	f.Calls["SearchAltitudeCrossing"]++
	if f.Err != nil {
		return 0, false, f.Err
	}
	offset, ok := f.Crossings[Event{body, dir, altitude}]
	if !ok {
		return 0, false, nil
	}
	return start + offset, true, nil
}

func (f *Fake) SearchHourAngleTransit(body astronomy.Body, _ astronomy.Observer, _ float64, start int64, _ int) (astronomy.Transit, bool, error) {
	f.Calls["SearchHourAngleTransit"]++
	if f.Err != nil {
		return astronomy.Transit{}, false, f.Err
	}
	tr, ok := f.Transits[body]
	if !ok {
		return astronomy.Transit{}, false, nil
	}
	tr.Time += start
	return tr, true, nil
}

// EquatorialPosition returns the configured altitude of body as its
// declination so that HorizonFromEquatorial can return it.
func (f *Fake) EquatorialPosition(body astronomy.Body, _ int64, _ astronomy.Observer) (astronomy.Equatorial, error) {
	f.Calls["EquatorialPosition"]++
	if f.Err != nil {
		return astronomy.Equatorial{}, f.Err
	}
	return astronomy.Equatorial{Declination: f.Altitudes[body]}, nil
}

func (f *Fake) HorizonFromEquatorial(_ int64, _ astronomy.Observer, eq astronomy.Equatorial) astronomy.Horizontal {
	f.Calls["HorizonFromEquatorial"]++
	return astronomy.Horizontal{Altitude: eq.Declination, Azimuth: 180}
}

func (f *Fake) MoonPhaseAngle(int64) (float64, error) {
	f.Calls["MoonPhaseAngle"]++
	if f.Err != nil {
		return 0, f.Err
	}
	return f.Phase, nil
}

func (f *Fake) Reset() {
	f.Resets++
}
