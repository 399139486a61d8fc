package units

import (
	"math"
	"testing"
)

func TestRatioNamedUnits(t *testing.T) {
	cases := []struct {
		name     string
		from, to Base
		want     float64
	}{
		{"second to second", Second, Second, 1},
		{"second to minute", Second, Minute, 1.0 / 60},
		{"second to hour", Second, Hour, 1.0 / 3600},
		{"second to day", Second, Day, 1.0 / 86400},
		{"minute to second", Minute, Second, 60},
		{"minute to hour", Minute, Hour, 1.0 / 60},
		{"hour to minute", Hour, Minute, 60},
		{"hour to day", Hour, Day, 1.0 / 24},
		{"day to second", Day, Second, 86400},
		{"day to hour", Day, Hour, 24},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Ratio(Named(tc.from), Named(tc.to))
			if math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("Ratio(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestRatioCustomUnits(t *testing.T) {
	// 10-second grain vs 2-second grain: ratio 5, expansion.
	got := Ratio(Custom(10, Second), Custom(2, Second))
	if got != 5 {
		t.Errorf("got %v, want 5", got)
	}
	// 30 minutes vs 1 hour: ratio 0.5, reduction.
	got = Ratio(Custom(30, Minute), Named(Hour))
	if got != 0.5 {
		t.Errorf("got %v, want 0.5", got)
	}
}

func TestRatioZeroTargetGuard(t *testing.T) {
	// An out-of-range base has zero seconds; the guard returns 1.0 instead
	// of letting Inf escape.
	got := Ratio(Named(Second), Spec{Base: Base(99), Multiplier: 1})
	if got != 1.0 {
		t.Errorf("got %v, want guard value 1.0", got)
	}
}

func TestCustomNonPositiveMultiplier(t *testing.T) {
	if s := Custom(-3, Minute).Seconds(); s != 60 {
		t.Errorf("negative multiplier should fall back to 1, got %v seconds", s)
	}
}

func TestParseBase(t *testing.T) {
	cases := map[string]Base{
		"second": Second, "Seconds": Second, "s": Second,
		"min": Minute, "minutes": Minute,
		"H": Hour, "hours": Hour,
		"d": Day, "day": Day,
	}
	for in, want := range cases {
		got, err := ParseBase(in)
		if err != nil {
			t.Fatalf("ParseBase(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseBase(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseBase("fortnight"); err == nil {
		t.Error("expected error for unknown unit")
	}
}
