// Package modify implements the signal-modification engine: elementwise
// arithmetic, upsampling by interpolation, downsampling by group
// aggregation, and first-order causal filtering over numeric subsets.
package modify

import (
	"fmt"
	"strings"
)

// Kind identifies one modification algorithm. Dispatch is a closed switch
// over Kind; there is no string comparison inside the engine.
type Kind int

const (
	Multiply Kind = iota
	Divide
	Add
	Subtract

	LinearInterp
	NearestInterp
	NextInterp
	PreviousInterp
	PCHIP
	Cubic
	CubicSpline
	Akima
	ZeroFill

	AverageGroup
	MaxGroup
	MinGroup
	MedianGroup
	SkipGroup

	LowPassFilter
	HighPassFilter
)

var kindNames = map[Kind]string{
	Multiply:       "multiply",
	Divide:         "divide",
	Add:            "add",
	Subtract:       "subtract",
	LinearInterp:   "linear",
	NearestInterp:  "nearest",
	NextInterp:     "next",
	PreviousInterp: "previous",
	PCHIP:          "pchip",
	Cubic:          "cubic",
	CubicSpline:    "spline",
	Akima:          "akima",
	ZeroFill:       "zerofill",
	AverageGroup:   "average",
	MaxGroup:       "max",
	MinGroup:       "min",
	MedianGroup:    "median",
	SkipGroup:      "skip",
	LowPassFilter:  "lpf",
	HighPassFilter: "hpf",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsArithmetic reports whether k is an elementwise scalar operation.
func (k Kind) IsArithmetic() bool { return k >= Multiply && k <= Subtract }

// IsUpsample reports whether k is an interpolation kernel (row expansion).
func (k Kind) IsUpsample() bool { return k >= LinearInterp && k <= ZeroFill }

// IsDownsample reports whether k is a group aggregation (row reduction).
func (k Kind) IsDownsample() bool { return k >= AverageGroup && k <= SkipGroup }

// IsFilter reports whether k is a causal IIR filter.
func (k Kind) IsFilter() bool { return k == LowPassFilter || k == HighPassFilter }

// Method is a fully-specified modification: the algorithm plus its scalar
// parameter. Value is the operand of arithmetic methods; Tau the filter time
// constant. Kernels and aggregations carry no parameter.
type Method struct {
	Kind  Kind
	Value float64
	Tau   float64
}

// Label renders the method for display, including its parameter.
func (m Method) Label() string {
	switch {
	case m.Kind.IsArithmetic():
		return fmt.Sprintf("%s %g", m.Kind, m.Value)
	case m.Kind.IsFilter():
		return fmt.Sprintf("%s tau=%g", m.Kind, m.Tau)
	default:
		return m.Kind.String()
	}
}

// ParseMethod maps a user-facing method name to a Method. This is the only
// place a method string is interpreted; everything past it works on the
// tagged Kind.
func ParseMethod(name string, value, tau float64) (Method, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, s := range kindNames {
		if s == n {
			return Method{Kind: k, Value: value, Tau: tau}, nil
		}
	}
	// Accept a few aliases the original application displayed.
	switch n {
	case "multiplication":
		return Method{Kind: Multiply, Value: value}, nil
	case "division":
		return Method{Kind: Divide, Value: value}, nil
	case "addition":
		return Method{Kind: Add, Value: value}, nil
	case "subtraction":
		return Method{Kind: Subtract, Value: value}, nil
	case "makima":
		return Method{Kind: Akima}, nil
	case "v5cubic":
		return Method{Kind: Cubic}, nil
	case "lowpass":
		return Method{Kind: LowPassFilter, Tau: tau}, nil
	case "highpass":
		return Method{Kind: HighPassFilter, Tau: tau}, nil
	}
	return Method{}, fmt.Errorf("unknown method %q", name)
}
