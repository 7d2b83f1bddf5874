// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package naturaltime

// Mustaches describes the seasonal swing of sunrise and sunset between
// the December (winter) and June (summer) solstices of a calendar year.
// AverageAngle is the mean opening between the two, in [0, 90].
type Mustaches struct {
	WinterSunrise float64
	WinterSunset  float64
	SummerSunrise float64
	SummerSunset  float64
	AverageAngle  float64
}

// Mustaches returns the seasonal envelope for the UTC calendar year of
// nd at the specified latitude. The solstice days are evaluated at
// longitude 0.
func (c *Calendar) Mustaches(nd NaturalDate, latitude float64) (Mustaches, error) {
	const op = "naturaltime.Mustaches"
	if err := c.checkInputs(op, nd, latitude); err != nil {
		return Mustaches{}, err
	}
	year := utcYear(nd.UnixTime)
	key := mustachesKey{year: year, latitude: latitude}
	if m, ok := c.mustaches.Get(key); ok {
		return m, nil
	}

	seasons, err := c.seasonsFor(year)
	if err != nil {
		return Mustaches{}, ephemerisError(op, "seasons", err)
	}
	winter, err := c.solsticeEvents(seasons.DecemberSolstice, latitude)
	if err != nil {
		return Mustaches{}, internalError(op, err)
	}
	summer, err := c.solsticeEvents(seasons.JuneSolstice, latitude)
	if err != nil {
		return Mustaches{}, internalError(op, err)
	}

	var avg float64
	if latitude >= 0 {
		avg = ((winter.Sunrise - summer.Sunrise) + (summer.Sunset - winter.Sunset)) / 4
	} else {
		avg = ((summer.Sunrise - winter.Sunrise) + (winter.Sunset - summer.Sunset)) / 4
	}
	m := Mustaches{
		WinterSunrise: winter.Sunrise,
		WinterSunset:  winter.Sunset,
		SummerSunrise: summer.Sunrise,
		SummerSunset:  summer.Sunset,
		AverageAngle:  min(max(avg, 0), 90),
	}
	c.mustaches.Put(key, m)
	return m, nil
}

func (c *Calendar) solsticeEvents(solstice int64, latitude float64) (SunEvents, error) {
	nd, err := c.NewDate(solstice, 0)
	if err != nil {
		return SunEvents{}, err
	}
	return c.SunEvents(nd, latitude)
}
