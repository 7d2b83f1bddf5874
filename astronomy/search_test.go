// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/soniakeys/unit"
)

func linear(zero int64) func(int64) (float64, error) {
	return func(t int64) (float64, error) {
		return float64(t - zero), nil
	}
}

func TestSearchAscending(t *testing.T) {
	for _, tc := range []struct {
		zero, from, to int64
		found          bool
	}{
		{1234567, 0, msPerDay, true},
		{searchStep, 0, msPerDay, true},
		{msPerDay, 0, msPerDay, true},
		{msPerDay + 1, 0, msPerDay, false},
		{-10, 0, msPerDay, false},
	} {
		got, found, err := searchAscending(linear(tc.zero), tc.from, tc.to)
		if err != nil {
			t.Fatal(err)
		}
		if found != tc.found {
			t.Errorf("zero %v: got %v, want %v", tc.zero, found, tc.found)
			continue
		}
		if found && got != tc.zero {
			t.Errorf("got %v, want %v", got, tc.zero)
		}
	}

	got, found, err := searchAscendingBackward(linear(-777777), 0, -msPerDay)
	if err != nil || !found {
		t.Fatalf("backward: %v %v", found, err)
	}
	if got != -777777 {
		t.Errorf("got %v, want %v", got, -777777)
	}

	failing := errors.New("oops")
	_, _, err = searchAscending(func(int64) (float64, error) { return 0, failing }, 0, msPerDay)
	if !errors.Is(err, failing) {
		t.Errorf("got %v, want %v", err, failing)
	}
}

func TestWrap180(t *testing.T) {
	for _, tc := range []struct{ in, out float64 }{
		{0, 0}, {180, -180}, {-180, -180}, {190, -170}, {-190, 170}, {725, 5},
	} {
		if got, want := wrap180(tc.in), tc.out; got != want {
			t.Errorf("%v: got %v, want %v", tc.in, got, want)
		}
	}
}

func TestReset(t *testing.T) {
	m := NewMeeus()
	if _, err := m.EquatorialPosition(Moon, 1356091200000, Observer{}); err != nil {
		t.Fatal(err)
	}
	if got, want := len(m.positions), 1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	m.Reset()
	if got, want := len(m.positions), 0; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBisect(t *testing.T) {
	step := func(zero int64) func(int64) (float64, error) {
		return func(t int64) (float64, error) {
			if t < zero {
				return -1, nil
			}
			return 1, nil
		}
	}
	for _, tc := range []struct{ lo, hi, zero int64 }{
		{0, searchStep, 1},
		{0, searchStep, 299999},
		{0, searchStep, searchStep},
		{1718900000000, 1718900000000 + searchStep, 1718900123457},
	} {
		got, err := bisect(step(tc.zero), tc.lo, tc.hi)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.zero {
			t.Errorf("got %v, want %v", got, tc.zero)
		}
	}
	failing := errors.New("oops")
	_, err := bisect(func(t int64) (float64, error) {
		if t > 1000 {
			return 1, failing
		}
		return -1, nil
	}, 0, searchStep)
	if !errors.Is(err, failing) {
		t.Errorf("got %v, want %v", err, failing)
	}
}

func TestMoonParallax(t *testing.T) {
	m := NewMeeus()
	obs := Observer{Latitude: 51.48}
	when := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC).UnixMilli()
	_, jde := jdeFromUnixMilli(when)
	geo, dist := moonGeocentric(jde)
	if dist < 0.0023 || dist > 0.0028 {
		t.Errorf("implausible lunar distance: %v AU", dist)
	}
	geoAlt, _ := horizontal(when, obs, geo.ra, geo.dec)
	topoAlt, err := m.altitude(Moon, obs, when)
	if err != nil {
		t.Fatal(err)
	}
	// Parallax always lowers the moon, by up to about a degree.
	if diff := geoAlt.Deg() - topoAlt; diff < 0.1 || diff > 1 {
		t.Errorf("geocentric %v, topocentric %v: diff %v", geoAlt.Deg(), topoAlt, diff)
	}
	// The sun's position does not depend on the observer.
	sun, err := m.position(Sun, when, obs)
	if err != nil {
		t.Fatal(err)
	}
	if p, _ := m.position(Sun, when, Observer{}); p != sun {
		t.Errorf("got %v, want %v", p, sun)
	}
	if math.IsNaN(sun.ra.Rad()) || math.IsNaN(sun.dec.Rad()) {
		t.Errorf("invalid position: %v", sun)
	}
}

func TestApparentAltitude(t *testing.T) {
	for _, tc := range []struct{ geometric, min, max float64 }{
		// About 29' of refraction at the horizon.
		{0, 0.45, 0.52},
		{45, 45.01, 45.03},
		{-5, -4.45, -4.3},
	} {
		got := apparentAltitude(unit.AngleFromDeg(tc.geometric))
		if got < tc.min || got > tc.max {
			t.Errorf("%v: got %v, want [%v, %v]", tc.geometric, got, tc.min, tc.max)
		}
	}
}

func TestRiseSetAltitude(t *testing.T) {
	for _, tc := range []struct {
		body Body
		want float64
	}{
		{Sun, -0.8333},
		{Moon, -0.825},
	} {
		got, err := riseSetAltitude(tc.body)
		if err != nil || math.Abs(got-tc.want) > 0.001 {
			t.Errorf("%v: got %v %v, want %v", tc.body, got, err, tc.want)
		}
	}
}
