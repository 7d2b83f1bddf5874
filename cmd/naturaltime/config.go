// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"cloudeng.io/cmdutil/cmdyaml"
	"cloudeng.io/errors"
	"cloudeng.io/naturaltime"
)

// Place is a named observer location.
type Place struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// Config represents the contents of the --config file, eg:
//
//	places:
//	  - name: sf
//	    latitude: 37.77
//	    longitude: -122.42
//	time_decimals: 3
//	separator: "."
type Config struct {
	Places            []Place  `yaml:"places"`
	TimeDecimals      *int     `yaml:"time_decimals"`
	TimeRounding      *float64 `yaml:"time_rounding"`
	LongitudeDecimals *int     `yaml:"longitude_decimals"`
	Separator         string   `yaml:"separator"`
}

func loadConfig(ctx context.Context, filename string) (Config, error) {
	var cfg Config
	if len(filename) == 0 {
		return cfg, nil
	}
	if err := cmdyaml.ParseConfigFile(ctx, filename, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Place returns the named place.
func (c Config) Place(name string) (Place, bool) {
	for _, p := range c.Places {
		if p.Name == name {
			return p, true
		}
	}
	return Place{}, false
}

// FormatOptions returns naturaltime.DefaultFormat overridden by any
// values set in the config.
func (c Config) FormatOptions() (naturaltime.FormatOptions, error) {
	opts := naturaltime.DefaultFormat
	if c.TimeDecimals != nil {
		opts.TimeDecimals = *c.TimeDecimals
	}
	if c.TimeRounding != nil {
		opts.TimeRounding = *c.TimeRounding
	}
	if c.LongitudeDecimals != nil {
		opts.LongitudeDecimals = *c.LongitudeDecimals
	}
	if len(c.Separator) > 0 {
		r, n := utf8.DecodeRuneInString(c.Separator)
		if r == utf8.RuneError || n != len(c.Separator) {
			return opts, fmt.Errorf("separator %q must be a single character", c.Separator)
		}
		opts.Separator = r
	}
	return opts, opts.Validate()
}

// parseInstant parses an RFC3339 time or a unix time in milliseconds,
// an empty string is interpreted as now.
func parseInstant(s string, now func() time.Time) (int64, error) {
	if len(s) == 0 {
		return now().UnixMilli(), nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("%q is neither an RFC3339 time nor unix milliseconds", s)
	}
	return t.UnixMilli(), nil
}

func parseDegrees(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %v: %q", name, s)
	}
	return v, nil
}

// observer determines the location to use from the config and flags,
// flags take precedence over the named place.
type observer struct {
	name      string
	latitude  float64
	longitude float64
}

func resolveObserver(cfg Config, place, latitude, longitude string) (observer, error) {
	var obs observer
	errs := &errors.M{}
	if len(place) > 0 {
		p, ok := cfg.Place(place)
		if !ok {
			errs.Append(fmt.Errorf("unknown place: %q", place))
		}
		obs = observer{name: p.Name, latitude: p.Latitude, longitude: p.Longitude}
	}
	if len(latitude) > 0 {
		v, err := parseDegrees("latitude", latitude)
		errs.Append(err)
		obs.latitude = v
	}
	if len(longitude) > 0 {
		v, err := parseDegrees("longitude", longitude)
		errs.Append(err)
		obs.longitude = v
	}
	return obs, errs.Err()
}
