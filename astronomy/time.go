// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"time"

	"github.com/mooncaker816/learnmeeus/v3/deltat"
	"github.com/mooncaker816/learnmeeus/v3/julian"
)

const (
	msPerDay    = 86400000
	secondsDay  = 86400.0
	j2000       = 2451545.0
	julianYear  = 365.25

	// Calendar years covered by deltat.Interp10A.
	deltaTTableStart = 1620.0
	deltaTTableEnd   = 2018.0
)

// JDFromUnixMilli returns the Julian day (UT) for the specified instant.
func JDFromUnixMilli(ms int64) float64 {
	return julian.TimeToJD(time.UnixMilli(ms).UTC())
}

// UnixMilliFromJD returns the instant, rounded to the nearest
// millisecond, for the specified Julian day (UT).
func UnixMilliFromJD(jd float64) int64 {
	return julian.JDToTime(jd).Round(time.Millisecond).UnixMilli()
}

// JDEToUnixMilli converts a Julian ephemeris day (TT) to a UTC instant.
func JDEToUnixMilli(jde float64) int64 {
	return UnixMilliFromJD(jde - DeltaT(jde)/secondsDay)
}

// jdeFromUnixMilli returns the Julian ephemeris day (TT) for the
// specified UTC instant.
func jdeFromUnixMilli(ms int64) (jd, jde float64) {
	jd = JDFromUnixMilli(ms)
	return jd, jd + DeltaT(jd)/secondsDay
}

// DeltaT returns an estimate of TT - UT in seconds for the specified
// Julian day. Between 1620 and 2018 it interpolates the observed values
// of deltat.Interp10A, earlier dates use the corresponding Meeus
// polynomials and later ones deltat.PolyAfter2000, offset to join the
// end of the observed table.
func DeltaT(jd float64) float64 {
	y := 2000 + (jd-j2000)/julianYear
	switch {
	case y < 948:
		return deltat.PolyBefore948(y).Sec()
	case y < deltaTTableStart:
		return deltat.Poly948to1600(y).Sec()
	case y <= deltaTTableEnd:
		return deltat.Interp10A(jd).Sec()
	}
	end := j2000 + (deltaTTableEnd-2000)*julianYear
	offset := deltat.Interp10A(end) - deltat.PolyAfter2000(deltaTTableEnd)
	return (deltat.PolyAfter2000(y) + offset).Sec()
}
