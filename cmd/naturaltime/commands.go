// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloudeng.io/cmdutil"
	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/naturaltime"
	"cloudeng.io/naturaltime/astronomy"
	"cloudeng.io/naturaltime/internal/memo"
	"gopkg.in/yaml.v3"
)

type session struct {
	cal    *naturaltime.Calendar
	nd     naturaltime.NaturalDate
	obs    observer
	opts   naturaltime.FormatOptions
	logger *cmdutil.Logger
}

var now = time.Now

func newSession(ctx context.Context, cl *CommonFlags) (context.Context, *session, error) {
	logger, err := cl.LoggingConfig().NewLogger()
	if err != nil {
		return ctx, nil, err
	}
	ctx = ctxlog.WithLogger(ctx, logger.Logger)
	s, err := configure(ctx, cl, logger)
	if err != nil {
		logger.Close()
		return ctx, nil, err
	}
	return ctx, s, nil
}

func configure(ctx context.Context, cl *CommonFlags, logger *cmdutil.Logger) (*session, error) {
	cfg, err := loadConfig(ctx, cl.Config)
	if err != nil {
		return nil, err
	}
	errs := &errors.M{}
	opts, err := cfg.FormatOptions()
	errs.Append(err)
	obs, err := resolveObserver(cfg, cl.Place, cl.Latitude, cl.Longitude)
	errs.Append(err)
	at, err := parseInstant(cl.At, now)
	errs.Append(err)
	policy := memo.FIFO
	if len(cl.Policy) > 0 {
		policy, err = memo.ParsePolicy(cl.Policy)
		errs.Append(err)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	cal := naturaltime.New(astronomy.NewMeeus(),
		naturaltime.WithLogger(logger.Logger),
		naturaltime.WithEvictionPolicy(policy))
	nd, err := cal.NewDate(at, obs.longitude)
	if err != nil {
		return nil, err
	}
	ctxlog.Logger(ctx).Info("natural date", "at", time.UnixMilli(at).UTC(), "place", obs.name, "latitude", obs.latitude, "longitude", obs.longitude)
	return &session{cal: cal, nd: nd, obs: obs, opts: opts, logger: logger}, nil
}

func (s *session) close() error {
	return s.logger.Close()
}

func (s *session) degrees(deg float64) string {
	str, err := naturaltime.FormatDegrees(deg, s.opts.TimeDecimals, s.opts.TimeRounding)
	if err != nil {
		return err.Error()
	}
	return str
}

func printField(out io.Writer, name string, value any) {
	fmt.Fprintf(out, "%-18s%v\n", name+":", value)
}

func runDate(ctx context.Context, values any, _ []string) error {
	return date(ctx, values.(*dateFlags), stdout)
}

func runSun(ctx context.Context, values any, _ []string) error {
	return sun(ctx, values.(*CommonFlags), stdout)
}

func runMoon(ctx context.Context, values any, _ []string) error {
	return moon(ctx, values.(*CommonFlags), stdout)
}

func runMustaches(ctx context.Context, values any, _ []string) error {
	return mustaches(ctx, values.(*CommonFlags), stdout)
}

func runEvent(ctx context.Context, values any, args []string) error {
	return event(ctx, values.(*CommonFlags), args[0], stdout)
}

type dateYAML struct {
	Date         string  `yaml:"date"`
	Year         int     `yaml:"year"`
	Moon         int     `yaml:"moon"`
	Week         int     `yaml:"week"`
	WeekOfMoon   int     `yaml:"week_of_moon"`
	Day          int     `yaml:"day"`
	DayOfYear    int     `yaml:"day_of_year"`
	DayOfMoon    int     `yaml:"day_of_moon"`
	DayOfWeek    int     `yaml:"day_of_week"`
	RainbowDay   bool    `yaml:"rainbow_day"`
	TimeDeg      float64 `yaml:"time_deg"`
	UnixTime     int64   `yaml:"unix_time"`
	Longitude    float64 `yaml:"longitude"`
	YearStart    string  `yaml:"year_start"`
	YearDuration int     `yaml:"year_duration"`
	Nadir        string  `yaml:"nadir"`
}

func date(ctx context.Context, cl *dateFlags, out io.Writer) error {
	_, s, err := newSession(ctx, &cl.CommonFlags)
	if err != nil {
		return err
	}
	defer s.close()
	str, err := s.nd.Format(s.opts)
	if err != nil {
		return err
	}
	if !cl.YAML {
		fmt.Fprintln(out, str)
		return nil
	}
	nd := s.nd
	buf, err := yaml.Marshal(dateYAML{
		Date:         str,
		Year:         nd.Year,
		Moon:         nd.Moon,
		Week:         nd.Week,
		WeekOfMoon:   nd.WeekOfMoon,
		Day:          nd.Day,
		DayOfYear:    nd.DayOfYear,
		DayOfMoon:    nd.DayOfMoon,
		DayOfWeek:    nd.DayOfWeek,
		RainbowDay:   nd.IsRainbowDay,
		TimeDeg:      nd.TimeDeg,
		UnixTime:     nd.UnixTime,
		Longitude:    nd.Longitude,
		YearStart:    time.UnixMilli(nd.YearStart).UTC().Format(time.RFC3339),
		YearDuration: nd.YearDuration,
		Nadir:        time.UnixMilli(nd.Nadir).UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = out.Write(buf)
	return err
}

func sun(ctx context.Context, cl *CommonFlags, out io.Writer) error {
	_, s, err := newSession(ctx, cl)
	if err != nil {
		return err
	}
	defer s.close()
	ev, err := s.cal.SunEvents(s.nd, s.obs.latitude)
	if err != nil {
		return err
	}
	pos, err := s.cal.SunPosition(s.nd, s.obs.latitude)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, s.nd.String())
	printField(out, "night end", s.degrees(ev.NightEnd))
	printField(out, "sunrise", s.degrees(ev.Sunrise))
	printField(out, "morning golden", s.degrees(ev.MorningGolden))
	printField(out, "evening golden", s.degrees(ev.EveningGolden))
	printField(out, "sunset", s.degrees(ev.Sunset))
	printField(out, "night start", s.degrees(ev.NightStart))
	printField(out, "altitude", fmt.Sprintf("%.2f", pos.Altitude))
	printField(out, "highest altitude", fmt.Sprintf("%.2f", pos.HighestAltitude))
	return nil
}

func moon(ctx context.Context, cl *CommonFlags, out io.Writer) error {
	_, s, err := newSession(ctx, cl)
	if err != nil {
		return err
	}
	defer s.close()
	ev, err := s.cal.MoonEvents(s.nd, s.obs.latitude)
	if err != nil {
		return err
	}
	pos, err := s.cal.MoonPosition(s.nd, s.obs.latitude)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, s.nd.String())
	printField(out, "moonrise", s.degrees(ev.Moonrise))
	printField(out, "moonset", s.degrees(ev.Moonset))
	printField(out, "altitude", fmt.Sprintf("%.2f", pos.Altitude))
	printField(out, "highest altitude", fmt.Sprintf("%.2f", ev.HighestAltitude))
	printField(out, "phase", fmt.Sprintf("%.2f", pos.Phase))
	return nil
}

func mustaches(ctx context.Context, cl *CommonFlags, out io.Writer) error {
	_, s, err := newSession(ctx, cl)
	if err != nil {
		return err
	}
	defer s.close()
	m, err := s.cal.Mustaches(s.nd, s.obs.latitude)
	if err != nil {
		return err
	}
	printField(out, "winter sunrise", s.degrees(m.WinterSunrise))
	printField(out, "winter sunset", s.degrees(m.WinterSunset))
	printField(out, "summer sunrise", s.degrees(m.SummerSunrise))
	printField(out, "summer sunset", s.degrees(m.SummerSunset))
	printField(out, "average angle", fmt.Sprintf("%.2f", m.AverageAngle))
	return nil
}

func event(ctx context.Context, cl *CommonFlags, when string, out io.Writer) error {
	ctx, s, err := newSession(ctx, cl)
	if err != nil {
		return err
	}
	defer s.close()
	ms, err := parseInstant(when, now)
	if err != nil {
		return err
	}
	deg, err := s.cal.TimeOfEvent(s.nd, ms)
	if err != nil {
		return err
	}
	if deg == 0 && ms != s.nd.Nadir {
		ctxlog.Logger(ctx).Warn("event is outside of the natural day", "event", time.UnixMilli(ms).UTC(), "nadir", time.UnixMilli(s.nd.Nadir).UTC())
	}
	fmt.Fprintln(out, s.degrees(deg))
	return nil
}
