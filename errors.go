// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package naturaltime

import (
	"fmt"

	"cloudeng.io/errors"
)

// Kind enumerates the closed set of failures reported by this package.
type Kind int

const (
	// RangeError is returned for a longitude or latitude outside of
	// its valid domain, invalid formatting parameters or an output
	// buffer that is too small.
	RangeError Kind = iota + 1
	// TimeDomainError is returned for non-positive timestamps.
	TimeDomainError
	// InternalError is returned when an ephemeris query fails or an
	// invalid NaturalDate is supplied.
	InternalError
)

var (
	ErrRange      = errors.New("value out of range")
	ErrTimeDomain = errors.New("timestamp outside of the time domain")
	ErrInternal   = errors.New("internal error")
)

func (k Kind) String() string {
	switch k {
	case RangeError:
		return "range error"
	case TimeDomainError:
		return "time domain error"
	case InternalError:
		return "internal error"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) sentinel() error {
	switch k {
	case RangeError:
		return ErrRange
	case TimeDomainError:
		return ErrTimeDomain
	}
	return ErrInternal
}

// Error is the error type returned by all operations in this package.
// errors.Is reports true for the sentinel matching its Kind as well as
// for the wrapped error, if any.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.String()
	}
	return fmt.Sprintf("%v: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf returns the Kind of err, or 0 if err was not returned by this
// package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func rangeError(op string, format string, args ...any) error {
	return &Error{Op: op, Kind: RangeError, Err: fmt.Errorf(format, args...)}
}

func timeDomainError(op string, ms int64) error {
	return &Error{Op: op, Kind: TimeDomainError, Err: fmt.Errorf("timestamp %v is not positive", ms)}
}

func internalError(op string, err error) error {
	var e *Error
	if errors.As(err, &e) && e.Kind == InternalError {
		return err
	}
	return &Error{Op: op, Kind: InternalError, Err: err}
}

func ephemerisError(op, query string, err error) error {
	return internalError(op, errors.Annotate("ephemeris: "+query, err))
}
