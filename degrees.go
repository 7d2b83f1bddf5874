// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package naturaltime

// toDegrees converts an offset from a nadir, in milliseconds, into
// degrees, with 360 wrapping to 0.
func toDegrees(offset int64) float64 {
	deg := float64(offset) * 360.0 / float64(msPerDay)
	if deg >= 360.0 {
		return 0
	}
	return deg
}

// TimeOfEvent returns the position, in degrees, of the event at unixMS
// within the natural day of nd. Events that do not fall within that
// day are reported as 0.
func (nd NaturalDate) TimeOfEvent(unixMS int64) float64 {
	if unixMS < nd.Nadir || unixMS > nd.Nadir+msPerDay {
		return 0
	}
	return toDegrees(unixMS - nd.Nadir)
}

// TimeOfEvent is like NaturalDate.TimeOfEvent but fails with an
// InternalError if nd is not a valid natural date.
func (c *Calendar) TimeOfEvent(nd NaturalDate, unixMS int64) (float64, error) {
	if err := nd.validate("naturaltime.TimeOfEvent"); err != nil {
		return 0, err
	}
	return nd.TimeOfEvent(unixMS), nil
}
