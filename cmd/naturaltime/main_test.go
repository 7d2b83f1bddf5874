// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloudeng.io/naturaltime"
)

const placesConfig = `places:
  - name: greenwich
    latitude: 51.4769
    longitude: -0.0005
  - name: sf
    latitude: 37.7749
    longitude: -122.4194
time_decimals: 3
time_rounding: 0
separator: "."
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(filename, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestParseInstant(t *testing.T) {
	fixed := func() time.Time { return time.UnixMilli(42) }
	for _, tc := range []struct {
		input string
		want  int64
	}{
		{"", 42},
		{"1356091200000", naturaltime.ReferenceInstant},
		{"2012-12-21T12:00:00Z", naturaltime.ReferenceInstant},
		{"2012-12-21T04:00:00-08:00", naturaltime.ReferenceInstant},
	} {
		got, err := parseInstant(tc.input, fixed)
		if err != nil {
			t.Errorf("%q: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.input, got, tc.want)
		}
	}
	if _, err := parseInstant("yesterday", fixed); err == nil {
		t.Errorf("expected an error")
	}
}

func TestConfig(t *testing.T) {
	ctx := t.Context()
	cfg, err := loadConfig(ctx, writeConfig(t, placesConfig))
	if err != nil {
		t.Fatal(err)
	}
	p, ok := cfg.Place("sf")
	if !ok || p.Latitude != 37.7749 || p.Longitude != -122.4194 {
		t.Errorf("got %+v %v", p, ok)
	}
	if _, ok := cfg.Place("nowhere"); ok {
		t.Errorf("unexpected place")
	}
	opts, err := cfg.FormatOptions()
	if err != nil {
		t.Fatal(err)
	}
	want := naturaltime.FormatOptions{Separator: '.', TimeDecimals: 3, TimeRounding: 0, LongitudeDecimals: 1}
	if got := opts; got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	cfg, err = loadConfig(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if opts, err := cfg.FormatOptions(); err != nil || opts != naturaltime.DefaultFormat {
		t.Errorf("got %+v %v", opts, err)
	}

	for _, bad := range []string{"separator: '::'\n", "time_decimals: 12\n"} {
		cfg, err := loadConfig(ctx, writeConfig(t, bad))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := cfg.FormatOptions(); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
	if _, err := loadConfig(ctx, writeConfig(t, "places: [")); err == nil {
		t.Errorf("expected an error")
	}
}

func TestResolveObserver(t *testing.T) {
	cfg := Config{Places: []Place{{Name: "sf", Latitude: 37.7749, Longitude: -122.4194}}}
	obs, err := resolveObserver(cfg, "sf", "", "-122")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := obs, (observer{name: "sf", latitude: 37.7749, longitude: -122}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	_, err = resolveObserver(cfg, "la", "north", "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if msg := err.Error(); !strings.Contains(msg, `unknown place: "la"`) || !strings.Contains(msg, `invalid latitude: "north"`) {
		t.Errorf("unexpected error: %v", msg)
	}
}

func TestDate(t *testing.T) {
	ctx := t.Context()
	var out bytes.Buffer
	cl := &dateFlags{CommonFlags: CommonFlags{At: "1356091200000", Longitude: "0"}}
	if err := date(ctx, cl, &out); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "+000)RAINBOW 180°00 NTZ\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	out.Reset()
	cl.YAML = true
	cl.Config = writeConfig(t, placesConfig)
	if err := date(ctx, cl, &out); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"+000.RAINBOW 180",
		"day_of_year: 365\n",
		"year_duration: 365\n",
		"rainbow_day: true\n",
		"2011-12-23T00:00:00Z",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("%q not found in %v", want, out.String())
		}
	}

	cl = &dateFlags{CommonFlags: CommonFlags{At: "0", Longitude: "0"}}
	err := date(ctx, cl, &out)
	if got, want := naturaltime.KindOf(err), naturaltime.TimeDomainError; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	cl = &dateFlags{CommonFlags: CommonFlags{Policy: "lfu"}}
	if err := date(ctx, cl, &out); err == nil || !strings.Contains(err.Error(), "lfu") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEvent(t *testing.T) {
	var out bytes.Buffer
	cl := &CommonFlags{At: "2012-12-21T12:00:00Z", Longitude: "0"}
	if err := event(t.Context(), cl, "2012-12-21T06:00:00Z", &out); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "090°00\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSunAndMoon(t *testing.T) {
	ctx := t.Context()
	cl := &CommonFlags{
		At:     "2024-06-21T12:00:00Z",
		Config: writeConfig(t, placesConfig),
		Place:  "greenwich",
	}
	var out bytes.Buffer
	if err := sun(ctx, cl, &out); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"sunrise:", "sunset:", "night start:", "highest altitude:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("%q not found in %v", want, out.String())
		}
	}
	out.Reset()
	if err := moon(ctx, cl, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "phase:") {
		t.Errorf("unexpected output: %v", out.String())
	}
	out.Reset()
	if err := mustaches(ctx, cl, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "average angle:") {
		t.Errorf("unexpected output: %v", out.String())
	}
	cl.Latitude = "95"
	if err := sun(ctx, cl, &out); naturaltime.KindOf(err) != naturaltime.RangeError {
		t.Errorf("unexpected error: %v", err)
	}
}
