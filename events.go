// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package naturaltime

import (
	"cloudeng.io/naturaltime/astronomy"
)

// SunEvents holds the times, in degrees within a natural day, at which
// the sun crosses the horizon and the twilight and golden hour
// altitudes.
type SunEvents struct {
	Sunrise       float64
	Sunset        float64
	NightStart    float64
	NightEnd      float64
	MorningGolden float64
	EveningGolden float64
}

// SunPosition holds the sun's current altitude, which is never negative,
// and its altitude at transit, in degrees.
type SunPosition struct {
	Altitude        float64
	HighestAltitude float64
}

// MoonPosition holds the moon's current altitude, which is never
// negative, and its phase angle in degrees, 0 being new moon.
type MoonPosition struct {
	Altitude float64
	Phase    float64
}

// MoonEvents holds the moonrise and moonset times, in degrees within a
// natural day, and the moon's altitude at transit. Events that do not
// occur are reported as 0.
type MoonEvents struct {
	Moonrise        float64
	Moonset         float64
	HighestAltitude float64
}

const (
	riseSetLimitDays  = 1.0
	altitudeLimitDays = 2.0
	nightAltitude     = -12.0
	goldenAltitude    = 6.0

	summerStartDay = 91
	summerEndDay   = 273
)

func isSummer(dayOfYear int, latitude float64) bool {
	if latitude >= 0 {
		return dayOfYear >= summerStartDay && dayOfYear <= summerEndDay
	}
	return dayOfYear <= summerStartDay || dayOfYear >= summerEndDay
}

func checkLatitude(op string, latitude float64) error {
	if !(latitude >= -90 && latitude <= 90) {
		return rangeError(op, "latitude %v is outside [-90, 90]", latitude)
	}
	return nil
}

func (c *Calendar) checkInputs(op string, nd NaturalDate, latitude float64) error {
	if err := nd.validate(op); err != nil {
		return err
	}
	return checkLatitude(op, latitude)
}

// sunEvent describes a single sun event search and the value to use
// in summer when the event does not occur, any other season uses 180.
type sunEvent struct {
	name          string
	riseSet       bool
	dir           astronomy.Direction
	altitude      float64
	summerDefault float64
	dst           *float64
}

// SunEvents returns the sun events for the natural day of nd at the
// specified latitude. Events that do not occur, as happens during polar
// day or night, are assigned a seasonal default.
func (c *Calendar) SunEvents(nd NaturalDate, latitude float64) (SunEvents, error) {
	const op = "naturaltime.SunEvents"
	if err := c.checkInputs(op, nd, latitude); err != nil {
		return SunEvents{}, err
	}
	key := sunEventsKey{nadir: nd.Nadir, latitude: latitude, longitude: nd.Longitude}
	if ev, ok := c.sunEvents.Get(key); ok {
		return ev, nil
	}

	obs := astronomy.Observer{Latitude: latitude, Longitude: nd.Longitude}
	summer := isSummer(nd.DayOfYear, latitude)
	var ev SunEvents
	for _, se := range []sunEvent{
		{"sunrise", true, astronomy.Rise, 0, 0, &ev.Sunrise},
		{"sunset", true, astronomy.Set, 0, 360, &ev.Sunset},
		{"night start", false, astronomy.Set, nightAltitude, 360, &ev.NightStart},
		{"night end", false, astronomy.Rise, nightAltitude, 0, &ev.NightEnd},
		{"morning golden hour", false, astronomy.Rise, goldenAltitude, 0, &ev.MorningGolden},
		{"evening golden hour", false, astronomy.Set, goldenAltitude, 360, &ev.EveningGolden},
	} {
		var when int64
		var found bool
		var err error
		if se.riseSet {
			when, found, err = c.eph.SearchRiseSet(astronomy.Sun, obs, se.dir, nd.Nadir, riseSetLimitDays)
		} else {
			when, found, err = c.eph.SearchAltitudeCrossing(astronomy.Sun, obs, se.dir, nd.Nadir, altitudeLimitDays, se.altitude)
		}
		if err != nil {
			return SunEvents{}, ephemerisError(op, se.name, err)
		}
		switch {
		case found:
			*se.dst = nd.TimeOfEvent(when)
		case summer:
			*se.dst = se.summerDefault
		default:
			*se.dst = 180
		}
		if !found {
			c.logger.Debug("sun event not found", "event", se.name, "summer", summer, "default", *se.dst)
		}
	}
	c.sunEvents.Put(key, ev)
	return ev, nil
}

// SunPosition returns the sun's position at nd.UnixTime as seen from
// the specified latitude.
func (c *Calendar) SunPosition(nd NaturalDate, latitude float64) (SunPosition, error) {
	const op = "naturaltime.SunPosition"
	if err := c.checkInputs(op, nd, latitude); err != nil {
		return SunPosition{}, err
	}
	obs := astronomy.Observer{Latitude: latitude, Longitude: nd.Longitude}
	alt, err := c.altitude(op, astronomy.Sun, obs, nd.UnixTime)
	if err != nil {
		return SunPosition{}, err
	}
	highest, err := c.transitAltitude(op, astronomy.Sun, obs, nd.Nadir)
	if err != nil {
		return SunPosition{}, err
	}
	return SunPosition{Altitude: alt, HighestAltitude: highest}, nil
}

// MoonPosition returns the moon's position and phase at nd.UnixTime as
// seen from the specified latitude.
func (c *Calendar) MoonPosition(nd NaturalDate, latitude float64) (MoonPosition, error) {
	const op = "naturaltime.MoonPosition"
	if err := c.checkInputs(op, nd, latitude); err != nil {
		return MoonPosition{}, err
	}
	obs := astronomy.Observer{Latitude: latitude, Longitude: nd.Longitude}
	alt, err := c.altitude(op, astronomy.Moon, obs, nd.UnixTime)
	if err != nil {
		return MoonPosition{}, err
	}
	phase, err := c.eph.MoonPhaseAngle(nd.UnixTime)
	if err != nil {
		return MoonPosition{}, ephemerisError(op, "moon phase", err)
	}
	return MoonPosition{Altitude: alt, Phase: phase}, nil
}

// MoonEvents returns the moonrise, moonset and transit altitude for the
// natural day of nd at the specified latitude.
func (c *Calendar) MoonEvents(nd NaturalDate, latitude float64) (MoonEvents, error) {
	const op = "naturaltime.MoonEvents"
	if err := c.checkInputs(op, nd, latitude); err != nil {
		return MoonEvents{}, err
	}
	obs := astronomy.Observer{Latitude: latitude, Longitude: nd.Longitude}
	var ev MoonEvents
	for _, dir := range []astronomy.Direction{astronomy.Rise, astronomy.Set} {
		when, found, err := c.eph.SearchRiseSet(astronomy.Moon, obs, dir, nd.Nadir, riseSetLimitDays)
		if err != nil {
			return MoonEvents{}, ephemerisError(op, "moon"+dir.String(), err)
		}
		if !found {
			continue
		}
		if dir == astronomy.Rise {
			ev.Moonrise = nd.TimeOfEvent(when)
		} else {
			ev.Moonset = nd.TimeOfEvent(when)
		}
	}
	highest, err := c.transitAltitude(op, astronomy.Moon, obs, nd.Nadir)
	if err != nil {
		return MoonEvents{}, err
	}
	ev.HighestAltitude = highest
	return ev, nil
}

func (c *Calendar) altitude(op string, body astronomy.Body, obs astronomy.Observer, when int64) (float64, error) {
	eq, err := c.eph.EquatorialPosition(body, when, obs)
	if err != nil {
		return 0, ephemerisError(op, body.String()+" position", err)
	}
	return max(c.eph.HorizonFromEquatorial(when, obs, eq).Altitude, 0), nil
}

func (c *Calendar) transitAltitude(op string, body astronomy.Body, obs astronomy.Observer, start int64) (float64, error) {
	tr, found, err := c.eph.SearchHourAngleTransit(body, obs, 0, start, +1)
	if err != nil {
		return 0, ephemerisError(op, body.String()+" transit", err)
	}
	if !found {
		return 0, nil
	}
	return tr.Altitude, nil
}
