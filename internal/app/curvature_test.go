package app

import (
	"math"
	"math/rand"
	"testing"

	"github.com/bft-labs/curvemark/internal/domain"
)

const eps = 1e-9

func TestCurvature_RightAngle(t *testing.T) {
	k, ok := Curvature(pose(0, 0), pose(1, 0), pose(1, 3))
	if !ok {
		t.Fatal("Curvature reported degenerate for a valid corner")
	}
	if math.Abs(k-math.Pi/2) > eps {
		t.Errorf("kappa = %v, want pi/2", k)
	}
}

func TestCurvature_DividesByIncomingSegment(t *testing.T) {
	// Same 90 degree turn, incoming segment of length 2.
	k, _ := Curvature(pose(0, 0), pose(2, 0), pose(2, 1))
	if math.Abs(k-math.Pi/4) > eps {
		t.Errorf("kappa = %v, want pi/4", k)
	}
}

func TestCurvature_Reversal(t *testing.T) {
	k, ok := Curvature(pose(0, 0), pose(1, 0), pose(0, 0))
	if !ok || math.Abs(k-math.Pi) > eps {
		t.Errorf("kappa = %v ok=%v, want pi", k, ok)
	}
}

func TestCurvature_Degenerate(t *testing.T) {
	tests := []struct {
		name            string
		prev, cur, next domain.Pose
	}{
		{"incoming zero", pose(1, 1), pose(1, 1), pose(2, 1)},
		{"outgoing zero", pose(0, 1), pose(1, 1), pose(1, 1)},
		{"nan coordinate", pose(0, 0), pose(math.NaN(), 0), pose(2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Curvature(tt.prev, tt.cur, tt.next); ok {
				t.Error("expected ok=false")
			}
		})
	}
}

func TestCurvature_TinySegments(t *testing.T) {
	const d = 1e-200
	k, ok := Curvature(pose(0, 0), pose(d, 0), pose(d, d))
	if !ok {
		t.Fatal("short but non-zero segments reported degenerate")
	}
	want := math.Pi / 2 / d
	if math.Abs(k-want) > 1e-9*want {
		t.Errorf("kappa = %v, want %v", k, want)
	}

	a := Analyze(pathOf([2]float64{0, 0}, [2]float64{d, 0}, [2]float64{d, d}), 0.2)
	if len(a.Degenerate) != 0 || len(a.Flagged) != 1 {
		t.Errorf("analysis = %+v, want one flagged point", a)
	}
}

func TestCurvature_IgnoresZ(t *testing.T) {
	a, b, c := pose(0, 0), pose(1, 0), pose(2, 0)
	b.Position.Z = 50
	k, ok := Curvature(a, b, c)
	if !ok || k != 0 {
		t.Errorf("kappa = %v ok=%v, want 0", k, ok)
	}
}

func TestCurvature_MatchesFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		p := [3][2]float64{}
		for j := range p {
			p[j] = [2]float64{rng.Float64()*20 - 10, rng.Float64()*20 - 10}
		}
		v1 := [2]float64{p[1][0] - p[0][0], p[1][1] - p[0][1]}
		v2 := [2]float64{p[2][0] - p[1][0], p[2][1] - p[1][1]}
		n1 := math.Hypot(v1[0], v1[1])
		n2 := math.Hypot(v2[0], v2[1])
		c := (v1[0]*v2[0] + v1[1]*v2[1]) / (n1 * n2)
		want := math.Acos(math.Max(-1, math.Min(1, c))) / n1

		got, ok := Curvature(pose(p[0][0], p[0][1]), pose(p[1][0], p[1][1]), pose(p[2][0], p[2][1]))
		if !ok {
			t.Fatalf("sample %d: unexpected degenerate", i)
		}
		if got < 0 {
			t.Fatalf("sample %d: negative curvature %v", i, got)
		}
		// acos loses digits near 0 and pi, so the reference is looser than Curvature.
		if math.Abs(got-want) > 1e-7*math.Max(1, want) {
			t.Fatalf("sample %d: kappa = %v, want %v", i, got, want)
		}
	}
}

func TestAnalyze_ShortPaths(t *testing.T) {
	for n := 0; n < 3; n++ {
		p := domain.Path{}
		for i := 0; i < n; i++ {
			p.Poses = append(p.Poses, pose(float64(i), float64(i*i)))
		}
		a := Analyze(p, 0)
		if len(a.Flagged) != 0 || a.Interior != 0 {
			t.Errorf("n=%d: Analyze = %+v, want empty", n, a)
		}
	}
}

func TestAnalyze_Collinear(t *testing.T) {
	p := pathOf([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3.5, 3.5}, [2]float64{7, 7})
	a := Analyze(p, 0.2)
	if !a.OK() {
		t.Errorf("collinear path flagged %d points", len(a.Flagged))
	}
	if a.Interior != 3 {
		t.Errorf("Interior = %d, want 3", a.Interior)
	}
}

func TestAnalyze_RightAngle(t *testing.T) {
	p := pathOf([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 5}, [2]float64{1, 10})
	a := Analyze(p, 0.2)
	if len(a.Flagged) != 1 {
		t.Fatalf("flagged %d points, want 1", len(a.Flagged))
	}
	got := a.Flagged[0]
	if got.Index != 1 || got.Pose != p.Poses[1] {
		t.Errorf("flagged point = %+v, want index 1", got)
	}
	if math.Abs(got.Kappa-1.5708) > 1e-4 {
		t.Errorf("kappa = %v, want ~1.5708", got.Kappa)
	}
}

func TestAnalyze_IncludesLastInteriorPoint(t *testing.T) {
	p := pathOf([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0}, [2]float64{2, 1})
	a := Analyze(p, 0.2)
	if len(a.Flagged) != 1 || a.Flagged[0].Index != 2 {
		t.Fatalf("Flagged = %+v, want the pose at index 2", a.Flagged)
	}
}

func TestAnalyze_StrictThreshold(t *testing.T) {
	p := pathOf([2]float64{0, 0}, [2]float64{2, 0}, [2]float64{3, 1})
	k, ok := Curvature(p.Poses[0], p.Poses[1], p.Poses[2])
	if !ok {
		t.Fatal("unexpected degenerate")
	}

	if a := Analyze(p, k); !a.OK() {
		t.Errorf("point with kappa == threshold was flagged")
	}
	if a := Analyze(p, math.Nextafter(k, 0)); len(a.Flagged) != 1 {
		t.Errorf("point with kappa just above threshold was not flagged")
	}
}

func TestAnalyze_Circle(t *testing.T) {
	const (
		radius = 2.0
		steps  = 360
	)
	var p domain.Path
	for i := 0; i < steps/2; i++ {
		theta := 2 * math.Pi * float64(i) / steps
		p.Poses = append(p.Poses, pose(radius*math.Cos(theta), radius*math.Sin(theta)))
	}

	a := Analyze(p, 0.2)
	if len(a.Flagged) != a.Interior {
		t.Fatalf("flagged %d of %d interior points", len(a.Flagged), a.Interior)
	}
	for _, pt := range a.Flagged {
		if math.Abs(pt.Kappa-1/radius) > 1e-3 {
			t.Fatalf("index %d: kappa = %v, want ~%v", pt.Index, pt.Kappa, 1/radius)
		}
	}
	for i := 1; i < len(a.Flagged); i++ {
		if a.Flagged[i].Index <= a.Flagged[i-1].Index {
			t.Fatal("flagged points out of path order")
		}
	}
}

func TestAnalyze_DegenerateSkipped(t *testing.T) {
	p := pathOf([2]float64{0, 0}, [2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1}, [2]float64{1, 1}, [2]float64{1, 2})
	a := Analyze(p, 0.2)

	want := []int{1, 3, 4}
	if len(a.Degenerate) != len(want) {
		t.Fatalf("Degenerate = %v, want %v", a.Degenerate, want)
	}
	for i := range want {
		if a.Degenerate[i] != want[i] {
			t.Fatalf("Degenerate = %v, want %v", a.Degenerate, want)
		}
	}
	if len(a.Flagged) != 1 || a.Flagged[0].Index != 2 {
		t.Errorf("Flagged = %+v, want index 2 only", a.Flagged)
	}
}
