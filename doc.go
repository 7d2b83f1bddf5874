// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package naturaltime converts instants into natural time, a calendar
// whose year starts near the December solstice and whose days start at
// the nadir of the observer's meridian.
//
// A natural year consists of 13 moons of 28 days followed by one, or
// in long years two, rainbow days. The time of day is expressed in
// degrees, 0 being the nadir and 180 the solar meridian of the
// observer's longitude. Sun and moon events are expressed in the same
// degree scale.
//
// All computations are performed by a Calendar which owns the caches
// used to memoize ephemeris queries:
//
//	cal := naturaltime.New(astronomy.NewMeeus())
//	nd, err := cal.NewDate(time.Now().UnixMilli(), -122.4)
//	...
//	events, err := cal.SunEvents(nd, 37.8)
//	fmt.Println(nd, events.Sunrise, events.Sunset)
//
// A Calendar is not safe for concurrent use.
package naturaltime
