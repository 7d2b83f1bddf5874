// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"fmt"
	"math"

	"github.com/mooncaker816/learnmeeus/v3/base"
	"github.com/mooncaker816/learnmeeus/v3/coord"
	"github.com/mooncaker816/learnmeeus/v3/globe"
	"github.com/mooncaker816/learnmeeus/v3/moonposition"
	"github.com/mooncaker816/learnmeeus/v3/nutation"
	"github.com/mooncaker816/learnmeeus/v3/parallax"
	"github.com/mooncaker816/learnmeeus/v3/refraction"
	"github.com/mooncaker816/learnmeeus/v3/rise"
	"github.com/mooncaker816/learnmeeus/v3/sidereal"
	"github.com/mooncaker816/learnmeeus/v3/solar"
	"github.com/soniakeys/unit"
)

const (
	kmPerAU   = 149597870.7
	memoLimit = 4096
)

var (
	// Altitude of the sun's center at apparent rise and set, allowing
	// for refraction and the solar semi-diameter.
	sunRiseSetAltitude = rise.Stdh0Solar.Deg()
	// Altitude of the moon's topocentric center at apparent rise and
	// set, allowing for refraction and the mean lunar semi-diameter.
	// Parallax is already applied to its position.
	moonRiseSetAltitude = (rise.Stdh0Stellar - unit.AngleFromMin(15.5)).Deg()
)

type positionKey struct {
	body Body
	when int64
	obs  Observer
}

// position is an apparent equatorial position of date.
type position struct {
	ra  unit.RA
	dec unit.Angle
}

// Meeus is an Ephemeris implemented using the algorithms from Jean
// Meeus' Astronomical Algorithms. Positions of the moon are
// topocentric, those of the sun geocentric. It memoizes recently
// computed positions and is not safe for concurrent use.
type Meeus struct {
	positions map[positionKey]position
}

// NewMeeus returns a new Meeus ephemeris.
func NewMeeus() *Meeus {
	return &Meeus{positions: map[positionKey]position{}}
}

// Reset implements Ephemeris.
func (m *Meeus) Reset() {
	clear(m.positions)
}

// Seasons implements Ephemeris.
func (m *Meeus) Seasons(year int) (Seasons, error) {
	return Seasons{
		JuneSolstice:     June(year),
		DecemberSolstice: December(year),
	}, nil
}

func (m *Meeus) position(body Body, when int64, obs Observer) (position, error) {
	if body == Sun {
		// The solar parallax is below 9 arc seconds.
		obs = Observer{}
	}
	key := positionKey{body, when, obs}
	if p, ok := m.positions[key]; ok {
		return p, nil
	}
	jd, jde := jdeFromUnixMilli(when)
	var p position
	switch body {
	case Sun:
		p.ra, p.dec = solar.ApparentEquatorial(jde)
	case Moon:
		geo, dist := moonGeocentric(jde)
		p = moonTopocentric(jd, geo, dist, obs)
	default:
		return position{}, fmt.Errorf("unsupported body: %v", body)
	}
	if len(m.positions) >= memoLimit {
		clear(m.positions)
	}
	m.positions[key] = p
	return p, nil
}

// moonGeocentric returns the apparent geocentric position of the moon
// and its distance in AU.
func moonGeocentric(jde float64) (position, float64) {
	lon, lat, dist := moonposition.Position(jde)
	dpsi, deps := nutation.Nutation(jde)
	eps := coord.NewObliquity(nutation.MeanObliquity(jde) + deps)
	var p position
	p.ra, p.dec = coord.EclToEq(lon+dpsi, lat, eps.S, eps.C)
	return p, dist / kmPerAU
}

// moonTopocentric corrects a geocentric position for parallax as seen
// by obs. parallax.Topocentric evaluates sidereal time so it is given
// the UT Julian day.
func moonTopocentric(jd float64, geo position, dist float64, obs Observer) position {
	s, c := globe.Earth76.ParallaxConstants(unit.AngleFromDeg(obs.Latitude), 0)
	var p position
	p.ra, p.dec = parallax.Topocentric(geo.ra, geo.dec, dist, s, c, unit.AngleFromDeg(-obs.Longitude), jd)
	return p
}

// horizontal returns the geometric altitude and the azimuth, measured
// eastward from north, of ra and dec as seen by obs.
func horizontal(when int64, obs Observer, ra unit.RA, dec unit.Angle) (alt, az unit.Angle) {
	st := sidereal.Apparent(JDFromUnixMilli(when))
	// coord.EqToHz uses west positive longitudes and measures azimuth
	// westward from south.
	a, h := coord.EqToHz(ra, dec, unit.AngleFromDeg(obs.Latitude), unit.AngleFromDeg(-obs.Longitude), st)
	return h, (a + math.Pi).Mod1()
}

// apparentAltitude adds the Saemundsson refraction correction to a
// geometric altitude, the correction is held at its -1° value below
// that altitude.
func apparentAltitude(alt unit.Angle) float64 {
	r := refraction.Saemundsson(max(alt, unit.AngleFromDeg(-1)))
	return (alt + r).Deg()
}

func (m *Meeus) altitude(body Body, obs Observer, when int64) (float64, error) {
	p, err := m.position(body, when, obs)
	if err != nil {
		return 0, err
	}
	alt, _ := horizontal(when, obs, p.ra, p.dec)
	return alt.Deg(), nil
}

// hourAngle returns the local hour angle of body in degrees.
func (m *Meeus) hourAngle(body Body, obs Observer, when int64) (float64, error) {
	p, err := m.position(body, when, obs)
	if err != nil {
		return 0, err
	}
	st := sidereal.Apparent(JDFromUnixMilli(when))
	return (st.Angle() + unit.AngleFromDeg(obs.Longitude) - p.ra.Angle()).Deg(), nil
}

// EquatorialPosition implements Ephemeris.
func (m *Meeus) EquatorialPosition(body Body, when int64, obs Observer) (Equatorial, error) {
	if err := obs.validate(); err != nil {
		return Equatorial{}, err
	}
	p, err := m.position(body, when, obs)
	if err != nil {
		return Equatorial{}, err
	}
	return Equatorial{
		RightAscension: p.ra.Hour(),
		Declination:    p.dec.Deg(),
	}, nil
}

// HorizonFromEquatorial implements Ephemeris.
func (m *Meeus) HorizonFromEquatorial(when int64, obs Observer, eq Equatorial) Horizontal {
	alt, az := horizontal(when, obs, unit.RAFromHour(eq.RightAscension), unit.AngleFromDeg(eq.Declination))
	return Horizontal{
		Altitude: apparentAltitude(alt),
		Azimuth:  az.Deg(),
	}
}

// MoonPhaseAngle implements Ephemeris.
func (m *Meeus) MoonPhaseAngle(when int64) (float64, error) {
	_, jde := jdeFromUnixMilli(when)
	moonLon, _, _ := moonposition.Position(jde)
	sunLon := solar.ApparentLongitude(base.J2000Century(jde))
	dpsi, _ := nutation.Nutation(jde)
	return (moonLon + dpsi - sunLon).Mod1().Deg(), nil
}

func riseSetAltitude(body Body) (float64, error) {
	switch body {
	case Sun:
		return sunRiseSetAltitude, nil
	case Moon:
		return moonRiseSetAltitude, nil
	}
	return 0, fmt.Errorf("unsupported body: %v", body)
}

// SearchRiseSet implements Ephemeris.
func (m *Meeus) SearchRiseSet(body Body, obs Observer, dir Direction, start int64, limitDays float64) (int64, bool, error) {
	alt, err := riseSetAltitude(body)
	if err != nil {
		return 0, false, err
	}
	return m.SearchAltitudeCrossing(body, obs, dir, start, limitDays, alt)
}

// SearchAltitudeCrossing implements Ephemeris.
func (m *Meeus) SearchAltitudeCrossing(body Body, obs Observer, dir Direction, start int64, limitDays, altitude float64) (int64, bool, error) {
	if err := obs.validate(); err != nil {
		return 0, false, err
	}
	if !(limitDays > 0) {
		return 0, false, fmt.Errorf("search limit must be positive: %v", limitDays)
	}
	sign := float64(dir)
	f := func(when int64) (float64, error) {
		h, err := m.altitude(body, obs, when)
		return sign * (h - altitude), err
	}
	return searchAscending(f, start, start+int64(limitDays*msPerDay))
}

// SearchHourAngleTransit implements Ephemeris.
func (m *Meeus) SearchHourAngleTransit(body Body, obs Observer, hourAngle float64, start int64, direction int) (Transit, bool, error) {
	if err := obs.validate(); err != nil {
		return Transit{}, false, err
	}
	if !(hourAngle >= 0 && hourAngle < 24) {
		return Transit{}, false, fmt.Errorf("hour angle %v is outside [0, 24)", hourAngle)
	}
	target := hourAngle * 15
	f := func(when int64) (float64, error) {
		ha, err := m.hourAngle(body, obs, when)
		return wrap180(ha - target), err
	}
	var when int64
	var found bool
	var err error
	if direction > 0 {
		when, found, err = searchAscending(f, start, start+hourAngleWindow)
	} else {
		when, found, err = searchAscendingBackward(f, start, start-hourAngleWindow)
	}
	if err != nil || !found {
		return Transit{}, false, err
	}
	eq, err := m.EquatorialPosition(body, when, obs)
	if err != nil {
		return Transit{}, false, err
	}
	return Transit{Time: when, Horizontal: m.HorizonFromEquatorial(when, obs, eq)}, true, nil
}

// wrap180 maps deg into [-180, 180).
func wrap180(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg - 180
}
