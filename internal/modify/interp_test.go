package modify

import (
	"math"
	"testing"
)

func TestLinearUpsampleScenario(t *testing.T) {
	in := subsetOf(t, 1, 2, 3)
	res := NewEngine().Apply(in, Method{Kind: LinearInterp}, 2.0)
	if !res.Applied {
		t.Fatal("should apply")
	}
	want := []float64{1, 1.4, 1.8, 2.2, 2.6, 3}
	if !approx(values(res.Subset), want, 1e-12) {
		t.Errorf("got %v, want %v", values(res.Subset), want)
	}
}

func TestUpsampleRowCountFloors(t *testing.T) {
	eng := NewEngine()
	cases := []struct {
		n     int
		ratio float64
		want  int
	}{
		{3, 2.0, 6},
		{3, 1.5, 4},
		{5, 2.5, 12},
		{1, 4.0, 4},
		{7, 1.2, 8},
	}
	for _, tc := range cases {
		vals := make([]float64, tc.n)
		for i := range vals {
			vals[i] = float64(i)
		}
		res := eng.Apply(subsetOf(t, vals...), Method{Kind: LinearInterp}, tc.ratio)
		if got := res.Subset.NumRows(); got != tc.want {
			t.Errorf("n=%d ratio=%v: got %d rows, want %d", tc.n, tc.ratio, got, tc.want)
		}
	}
}

func TestStepKernels(t *testing.T) {
	eng := NewEngine()
	in := subsetOf(t, 10, 20, 30)
	cases := []struct {
		kind Kind
		want []float64
	}{
		{NearestInterp, []float64{10, 10, 20, 20, 30, 30}},
		{NextInterp, []float64{10, 20, 20, 30, 30, 30}},
		{PreviousInterp, []float64{10, 10, 10, 20, 20, 30}},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			res := eng.Apply(in, Method{Kind: tc.kind}, 2.0)
			if !approx(values(res.Subset), tc.want, 0) {
				t.Errorf("got %v, want %v", values(res.Subset), tc.want)
			}
		})
	}
}

func TestEndpointsPreserved(t *testing.T) {
	eng := NewEngine()
	in := subsetOf(t, 5, 9, 2, 7, 7, 1)
	for _, k := range []Kind{LinearInterp, NearestInterp, NextInterp, PreviousInterp, PCHIP, Cubic, CubicSpline, Akima} {
		res := eng.Apply(in, Method{Kind: k}, 2.0)
		got := values(res.Subset)
		if got[0] != 5 || math.Abs(got[len(got)-1]-1) > 1e-12 {
			t.Errorf("%s: endpoints %v .. %v, want 5 .. 1", k, got[0], got[len(got)-1])
		}
	}
}

func TestPCHIPMonotone(t *testing.T) {
	in := subsetOf(t, 0, 1, 4, 9, 16, 25)
	res := NewEngine().Apply(in, Method{Kind: PCHIP}, 3.0)
	got := values(res.Subset)
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1]-1e-12 {
			t.Fatalf("pchip output not monotone at %d: %v > %v", i, got[i-1], got[i])
		}
	}
}

func TestSmoothKernelsReproduceLine(t *testing.T) {
	eng := NewEngine()
	in := subsetOf(t, 0, 2, 4, 6, 8)
	// Every hermite variant is exact on affine data.
	for _, k := range []Kind{PCHIP, Cubic, CubicSpline, Akima} {
		res := eng.Apply(in, Method{Kind: k}, 2.0)
		got := values(res.Subset)
		step := 8.0 / float64(len(got)-1)
		for j, v := range got {
			if math.Abs(v-float64(j)*step) > 1e-9 {
				t.Errorf("%s: sample %d = %v, want %v", k, j, v, float64(j)*step)
			}
		}
	}
}

func TestAkimaShortInputFallsBackToLinear(t *testing.T) {
	in := subsetOf(t, 1, 2, 3, 4)
	res := NewEngine().Apply(in, Method{Kind: Akima}, 2.0)
	if !res.Applied {
		t.Fatal("fallback should still count as applied")
	}
	got := values(res.Subset)
	if len(got) != 8 {
		t.Fatalf("got %d rows, want 8", len(got))
	}
	step := 3.0 / 7.0
	for j, v := range got {
		if math.Abs(v-(1+float64(j)*step)) > 1e-12 {
			t.Errorf("sample %d = %v, want linear %v", j, v, 1+float64(j)*step)
		}
	}
}

func TestLinearMissingTransit(t *testing.T) {
	in := withMissing(subsetOf(t, 1, 0, 3), 1)
	res := NewEngine().Apply(in, Method{Kind: LinearInterp}, 2.0)
	s := res.Subset.Columns[0]
	wantValid := []bool{true, false, false, false, false, true}
	for i := range s.Valid {
		if s.Valid[i] != wantValid[i] {
			t.Errorf("valid[%d] = %v, want %v (values %v)", i, s.Valid[i], wantValid[i], s.Values)
		}
	}
	if s.Values[0] != 1 || s.Values[5] != 3 {
		t.Errorf("node samples wrong: %v", s.Values)
	}
}

func TestZeroFill(t *testing.T) {
	in := subsetOf(t, 1, 2, 3)
	res := NewEngine().Apply(in, Method{Kind: ZeroFill}, 2.0)
	want := []float64{1, 0, 2, 0, 3, 0}
	if !approx(values(res.Subset), want, 0) {
		t.Errorf("got %v, want %v", values(res.Subset), want)
	}
	for i, ok := range res.Subset.Columns[0].Valid {
		if !ok {
			t.Errorf("row %d should be valid", i)
		}
	}
}

func TestZeroFillMissingSource(t *testing.T) {
	in := withMissing(subsetOf(t, 1, 2, 3), 1)
	res := NewEngine().Apply(in, Method{Kind: ZeroFill}, 2.0)
	s := res.Subset.Columns[0]
	if s.Valid[2] {
		t.Error("placement of a missing sample should stay missing")
	}
	if !s.Valid[0] || !s.Valid[4] || s.Values[0] != 1 || s.Values[4] != 3 {
		t.Errorf("valid placements wrong: %v %v", s.Values, s.Valid)
	}
}

func TestSingleRowUpsample(t *testing.T) {
	in := subsetOf(t, 42)
	res := NewEngine().Apply(in, Method{Kind: CubicSpline}, 3.0)
	got := values(res.Subset)
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3", len(got))
	}
	for _, v := range got {
		if v != 42 {
			t.Errorf("constant extension broken: %v", got)
		}
	}
}
