// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package naturaltime

import (
	"fmt"
	"math"
	"strings"
)

// FormatOptions controls the rendering of a NaturalDate.
type FormatOptions struct {
	// Separator is placed between the year, moon and day of moon.
	Separator rune
	// TimeDecimals is the number of fractional digits of the time of
	// day, in [0, MaxDecimals].
	TimeDecimals int
	// TimeRounding is the increment to which the time of day is rounded
	// before it is scaled, 0 disables rounding.
	TimeRounding float64
	// LongitudeDecimals is the number of fractional digits of the
	// longitude, in [0, MaxDecimals].
	LongitudeDecimals int
}

// MaxDecimals is the largest number of fractional digits supported.
const MaxDecimals = 9

// DefaultFormat is used by NaturalDate.String.
var DefaultFormat = FormatOptions{
	Separator:         ')',
	TimeDecimals:      2,
	TimeRounding:      0.01,
	LongitudeDecimals: 1,
}

// Validate returns a RangeError for unusable options.
func (o FormatOptions) Validate() error {
	const op = "naturaltime.FormatOptions"
	if err := checkDecimals(op, o.TimeDecimals); err != nil {
		return err
	}
	if err := checkDecimals(op, o.LongitudeDecimals); err != nil {
		return err
	}
	if !(o.TimeRounding >= 0) || math.IsInf(o.TimeRounding, 0) {
		return rangeError(op, "rounding %v must be a finite, non-negative value", o.TimeRounding)
	}
	if o.Separator == 0 {
		return rangeError(op, "separator must be set")
	}
	return nil
}

func checkDecimals(op string, decimals int) error {
	if decimals < 0 || decimals > MaxDecimals {
		return rangeError(op, "decimals %v is outside [0, %v]", decimals, MaxDecimals)
	}
	return nil
}

func pow10(n int) int64 {
	s := int64(1)
	for range n {
		s *= 10
	}
	return s
}

// YearString returns the year as a sign followed by at least three
// digits, eg. +000 or -012.
func (nd NaturalDate) YearString() string {
	return fmt.Sprintf("%+04d", nd.Year)
}

// MoonString returns the moon as two digits.
func (nd NaturalDate) MoonString() string {
	return fmt.Sprintf("%02d", nd.Moon)
}

// DayOfMoonString returns the day of the moon as two digits.
func (nd NaturalDate) DayOfMoonString() string {
	return fmt.Sprintf("%02d", nd.DayOfMoon)
}

// DateString returns year, moon and day of moon joined by sep. Rainbow
// days, which belong to no moon, are rendered as year, sep and RAINBOW,
// or RAINBOW+ for the second rainbow day of a long year.
func (nd NaturalDate) DateString(sep rune) string {
	var b strings.Builder
	b.WriteString(nd.YearString())
	b.WriteRune(sep)
	if nd.IsRainbowDay {
		b.WriteString("RAINBOW")
		if nd.IsSecondRainbowDay() {
			b.WriteByte('+')
		}
		return b.String()
	}
	b.WriteString(nd.MoonString())
	b.WriteRune(sep)
	b.WriteString(nd.DayOfMoonString())
	return b.String()
}

// SplitTime splits the time of day as per SplitDegrees.
func (nd NaturalDate) SplitTime(decimals int, rounding float64) (integer, fraction, scale int64, err error) {
	return SplitDegrees(nd.TimeDeg, decimals, rounding)
}

// TimeString returns the time of day as per FormatDegrees, eg. 007°50.
func (nd NaturalDate) TimeString(decimals int, rounding float64) (string, error) {
	return FormatDegrees(nd.TimeDeg, decimals, rounding)
}

// SplitDegrees splits deg into whole degrees and a fraction with the
// specified number of decimal digits, such that integer + fraction/scale
// is deg rounded to the nearest multiple of rounding, wrapped into
// [0, 360) and then rounded to 1/scale. The rounding is carried out on
// scaled integers so that the two parts are always consistent, 99.9996
// with two decimals is split as 100 and 0, never 99 and 100.
func SplitDegrees(deg float64, decimals int, rounding float64) (integer, fraction, scale int64, err error) {
	const op = "naturaltime.SplitDegrees"
	if err := checkDecimals(op, decimals); err != nil {
		return 0, 0, 0, err
	}
	if !(rounding >= 0) || math.IsInf(rounding, 0) {
		return 0, 0, 0, rangeError(op, "rounding %v must be a finite, non-negative value", rounding)
	}
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, 0, 0, rangeError(op, "%v is not a valid angle", deg)
	}
	v := deg
	if rounding > 0 {
		v = math.Round(v/rounding) * rounding
	}
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	scale = pow10(decimals)
	scaled := int64(math.Round(v * float64(scale)))
	if scaled >= 360*scale {
		scaled -= 360 * scale
	}
	return scaled / scale, scaled % scale, scale, nil
}

// FormatDegrees returns deg as three digits of whole degrees, a degree
// sign and decimals digits of fraction. It is used for the time of day
// and for the times of sun and moon events.
func FormatDegrees(deg float64, decimals int, rounding float64) (string, error) {
	integer, fraction, _, err := SplitDegrees(deg, decimals, rounding)
	if err != nil {
		return "", err
	}
	if decimals == 0 {
		return fmt.Sprintf("%03d°", integer), nil
	}
	return fmt.Sprintf("%03d°%0*d", integer, decimals, fraction), nil
}

// LongitudeString returns NTZ for longitudes within half a degree of
// the prime meridian and NT followed by the signed longitude otherwise,
// eg. NT-122.4. The magnitude is rounded, not truncated, to the
// requested number of decimals so 0.5 with no decimals is NT+1.
func (nd NaturalDate) LongitudeString(decimals int) (string, error) {
	if err := checkDecimals("naturaltime.LongitudeString", decimals); err != nil {
		return "", err
	}
	lon := nd.Longitude
	if math.Abs(lon) < 0.5 {
		return "NTZ", nil
	}
	sign := '+'
	if lon < 0 {
		sign = '-'
	}
	scale := pow10(decimals)
	scaled := int64(math.Round(math.Abs(lon) * float64(scale)))
	if decimals == 0 {
		return fmt.Sprintf("NT%c%d", sign, scaled), nil
	}
	return fmt.Sprintf("NT%c%d.%0*d", sign, scaled/scale, decimals, scaled%scale), nil
}

// Format returns the date, time and longitude strings separated by
// spaces.
func (nd NaturalDate) Format(opts FormatOptions) (string, error) {
	if err := nd.validate("naturaltime.Format"); err != nil {
		return "", err
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}
	return nd.format(opts)
}

// format requires nd and opts to be valid.
func (nd NaturalDate) format(opts FormatOptions) (string, error) {
	t, err := nd.TimeString(opts.TimeDecimals, opts.TimeRounding)
	if err != nil {
		return "", err
	}
	l, err := nd.LongitudeString(opts.LongitudeDecimals)
	if err != nil {
		return "", err
	}
	return nd.DateString(opts.Separator) + " " + t + " " + l, nil
}

// String implements fmt.Stringer using DefaultFormat. Dates not
// created by Calendar.NewDate are rendered as "invalid natural date".
func (nd NaturalDate) String() string {
	if !nd.valid() {
		return "invalid natural date"
	}
	s, err := nd.format(DefaultFormat)
	if err != nil {
		return err.Error()
	}
	return s
}

// PutString writes the formatted date into buf and returns the number
// of bytes written. It fails with a RangeError, writing nothing, if buf
// is too small.
func (nd NaturalDate) PutString(buf []byte, opts FormatOptions) (int, error) {
	s, err := nd.Format(opts)
	if err != nil {
		return 0, err
	}
	if len(s) > len(buf) {
		return 0, rangeError("naturaltime.PutString", "buffer of %v bytes is too small for %v bytes", len(buf), len(s))
	}
	return copy(buf, s), nil
}
