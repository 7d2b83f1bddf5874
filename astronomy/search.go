// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"math"

	"github.com/mooncaker816/learnmeeus/v3/iterate"
)

const (
	searchStep = 10 * 60 * 1000
	// hourAngleWindow bounds hour angle searches; the moon returns to
	// a given hour angle roughly every 24h50m.
	hourAngleWindow = 2 * msPerDay
)

// searchAscending returns the first instant in [from, to] at which f
// crosses from negative to non-negative. The crossing is located by
// scanning in fixed steps and then refined by bisection to the
// millisecond.
func searchAscending(f func(int64) (float64, error), from, to int64) (int64, bool, error) {
	t0 := from
	f0, err := f(t0)
	if err != nil {
		return 0, false, err
	}
	for t0 < to {
		t1 := min(t0+searchStep, to)
		f1, err := f(t1)
		if err != nil {
			return 0, false, err
		}
		if f0 < 0 && f1 >= 0 {
			t, err := bisect(f, t0, t1)
			return t, err == nil, err
		}
		t0, f0 = t1, f1
	}
	return 0, false, nil
}

// searchAscendingBackward is like searchAscending but scans backwards
// from 'from' towards 'to' (to < from) and returns the latest crossing.
func searchAscendingBackward(f func(int64) (float64, error), from, to int64) (int64, bool, error) {
	t1 := from
	f1, err := f(t1)
	if err != nil {
		return 0, false, err
	}
	for t1 > to {
		t0 := max(t1-searchStep, to)
		f0, err := f(t0)
		if err != nil {
			return 0, false, err
		}
		if f0 < 0 && f1 >= 0 {
			t, err := bisect(f, t0, t1)
			return t, err == nil, err
		}
		t1, f1 = t0, f0
	}
	return 0, false, nil
}

// bisect requires f(lo) < 0 and f(hi) >= 0 and returns the earliest
// millisecond in (lo, hi] for which f is non-negative. The root is
// located with iterate.BinaryRoot and then settled on the millisecond
// boundary.
func bisect(f func(int64) (float64, error), lo, hi int64) (int64, error) {
	var ferr error
	eval := func(when int64) float64 {
		v, err := f(when)
		if err != nil && ferr == nil {
			ferr = err
		}
		return v
	}
	root := iterate.BinaryRoot(func(x float64) float64 {
		return eval(int64(math.Round(x)))
	}, float64(lo), float64(hi))
	t := min(max(int64(math.Round(root)), lo+1), hi)
	for t < hi && eval(t) < 0 {
		t++
	}
	for t-1 > lo && eval(t-1) >= 0 {
		t--
	}
	return t, ferr
}
