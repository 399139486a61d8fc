// Package units converts between time units of measure. A Spec is either a
// named unit (second, minute, hour, day) or a custom positive multiple of a
// base unit; two Specs combine into a dimensionless conversion ratio that
// drives resampling direction.
package units

import (
	"fmt"
	"strings"
)

// Base is a named time unit.
type Base int

const (
	Second Base = iota
	Minute
	Hour
	Day
)

var baseSeconds = [...]float64{1, 60, 3600, 86400}

var baseNames = [...]string{"second", "minute", "hour", "day"}

// Seconds returns the duration of the unit in seconds.
func (b Base) Seconds() float64 {
	if b < Second || b > Day {
		return 0
	}
	return baseSeconds[b]
}

func (b Base) String() string {
	if b < Second || b > Day {
		return "unknown"
	}
	return baseNames[b]
}

// ParseBase maps a unit name (singular or plural, with common short forms)
// to a Base.
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "second", "seconds", "sec", "s":
		return Second, nil
	case "minute", "minutes", "min", "m":
		return Minute, nil
	case "hour", "hours", "hr", "h":
		return Hour, nil
	case "day", "days", "d":
		return Day, nil
	default:
		return Second, fmt.Errorf("unknown unit %q", s)
	}
}

// Spec is a unit specification: a base unit scaled by a positive multiplier.
// Named units use multiplier 1.
type Spec struct {
	Base       Base
	Multiplier float64
}

// Named returns the Spec for a named unit.
func Named(b Base) Spec { return Spec{Base: b, Multiplier: 1} }

// Custom returns a Spec for a custom multiple of a base unit. Non-positive
// multipliers are treated as 1.
func Custom(multiplier float64, b Base) Spec {
	if multiplier <= 0 {
		multiplier = 1
	}
	return Spec{Base: b, Multiplier: multiplier}
}

// Seconds resolves the spec to its duration in seconds.
func (s Spec) Seconds() float64 {
	m := s.Multiplier
	if m <= 0 {
		m = 1
	}
	return m * s.Base.Seconds()
}

func (s Spec) String() string {
	if s.Multiplier > 0 && s.Multiplier != 1 {
		return fmt.Sprintf("%g %ss", s.Multiplier, s.Base)
	}
	return s.Base.String()
}

// Ratio computes secondsOf(original) / secondsOf(target). A ratio above 1
// means the original grain is coarser than the target (row expansion), below
// 1 row reduction, and 1 same-unit. A zero target duration cannot occur with
// valid specs but is guarded: the result is 1.0, never Inf or NaN.
func Ratio(original, target Spec) float64 {
	ts := target.Seconds()
	if ts == 0 {
		return 1.0
	}
	return original.Seconds() / ts
}
