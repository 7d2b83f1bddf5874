// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command naturaltime displays natural dates and the sun and moon
// events within them.
package main

import (
	"context"
	"io"
	"os"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
)

// CommonFlags are accepted by all commands.
type CommonFlags struct {
	cmdutil.LoggingFlags
	Config    string `subcmd:"config,,'yaml file containing places and output format defaults'"`
	Place     string `subcmd:"place,,'name of a place defined in the config file'"`
	Latitude  string `subcmd:"latitude,,'observer latitude in degrees, north is positive, overrides --place'"`
	Longitude string `subcmd:"longitude,,'observer longitude in degrees, east is positive, overrides --place'"`
	At        string `subcmd:"at,,'instant to display, either RFC3339 or unix milliseconds, defaults to now'"`
	Policy    string `subcmd:"cache-policy,fifo,'eviction policy for the solstice cache: fifo or lru'"`
}

type dateFlags struct {
	CommonFlags
	YAML bool `subcmd:"yaml,false,'display all of the fields of the natural date as yaml'"`
}

var (
	cmdSet *subcmd.CommandSet
	stdout io.Writer = os.Stdout
)

func init() {
	dateCmd := subcmd.NewCommand("date",
		subcmd.MustRegisterFlagStruct(&dateFlags{}, nil, nil),
		runDate, subcmd.ExactlyNumArguments(0))
	dateCmd.Document(`display the natural date for an instant and longitude.`)

	sunCmd := subcmd.NewCommand("sun",
		subcmd.MustRegisterFlagStruct(&CommonFlags{}, nil, nil),
		runSun, subcmd.ExactlyNumArguments(0))
	sunCmd.Document(`display sunrise, sunset, twilight, golden hour and the sun's position.`)

	moonCmd := subcmd.NewCommand("moon",
		subcmd.MustRegisterFlagStruct(&CommonFlags{}, nil, nil),
		runMoon, subcmd.ExactlyNumArguments(0))
	moonCmd.Document(`display moonrise, moonset, the moon's position and phase.`)

	mustachesCmd := subcmd.NewCommand("mustaches",
		subcmd.MustRegisterFlagStruct(&CommonFlags{}, nil, nil),
		runMustaches, subcmd.ExactlyNumArguments(0))
	mustachesCmd.Document(`display the seasonal range of sunrise and sunset between the solstices.`)

	eventCmd := subcmd.NewCommand("event",
		subcmd.MustRegisterFlagStruct(&CommonFlags{}, nil, nil),
		runEvent, subcmd.ExactlyNumArguments(1))
	eventCmd.Document(`display the time, within the natural day, of the event given as an RFC3339 time or unix milliseconds.`, "<event-time>")

	cmdSet = subcmd.NewCommandSet(dateCmd, sunCmd, moonCmd, mustachesCmd, eventCmd)
	cmdSet.Document(`display natural time.

Natural time uses a year that starts at the December solstice and days
that start at the nadir of the observer's meridian. The time of day,
and the times of sun and moon events, are expressed in degrees.
Longitude determines the natural date, latitude determines the sun
and moon events.`)
}

func main() {
	cmdSet.MustDispatch(context.Background())
}
