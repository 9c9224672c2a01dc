package material

import (
	"errors"
	"math"
	"testing"
)

// step drives a law through one committed strain increment.
func step(t *testing.T, law Law, strain float64) (float64, float64) {
	t.Helper()
	sig, tan, err := law.Trial(strain)
	if err != nil {
		t.Fatalf("unexpected error at strain %g: %v", strain, err)
	}
	law.Commit()
	return sig, tan
}

func TestElastic(t *testing.T) {
	e, err := NewElastic(200000.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sig, tan := step(t, e, 0.001)
	if math.Abs(sig-200.0) > 1e-9 || tan != 200000.0 {
		t.Errorf("got (%f, %f), want (200, 200000)", sig, tan)
	}

	if _, err := NewElastic(0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero modulus must be rejected, got %v", err)
	}
}

func TestSteel01ElasticRange(t *testing.T) {
	s, err := NewSteel01(420.0, 200000.0, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sig, tan := step(t, s, 0.001)
	if math.Abs(sig-200.0) > 1e-9 {
		t.Errorf("stress = %f, want 200", sig)
	}
	if tan != 200000.0 {
		t.Errorf("tangent = %f, want elastic modulus", tan)
	}
}

func TestSteel01PostYieldSlope(t *testing.T) {
	s, _ := NewSteel01(420.0, 200000.0, 0.02)

	epsY := 420.0 / 200000.0
	sig1, tan := step(t, s, 2*epsY)
	if math.Abs(tan-0.02*200000.0) > 1e-6 {
		t.Errorf("post-yield tangent = %f, want %f", tan, 0.02*200000.0)
	}

	want := 420.0 + 0.02*200000.0*epsY
	if math.Abs(sig1-want) > 1e-6 {
		t.Errorf("post-yield stress = %f, want %f", sig1, want)
	}
}

func TestSteel01UnloadsElastically(t *testing.T) {
	s, _ := NewSteel01(420.0, 200000.0, 0.02)

	sigPeak, _ := step(t, s, 0.005)
	dEps := 0.0005
	sig, tan := step(t, s, 0.005-dEps)

	if tan != 200000.0 {
		t.Errorf("unload tangent = %f, want elastic modulus", tan)
	}
	if math.Abs(sig-(sigPeak-200000.0*dEps)) > 1e-6 {
		t.Errorf("unload stress = %f, want %f", sig, sigPeak-200000.0*dEps)
	}
}

func TestSteel01Kinematic(t *testing.T) {
	s, _ := NewSteel01(420.0, 200000.0, 0.0)

	step(t, s, 0.005) // well past yield
	// Kinematic hardening: reversed yielding starts 2*Fy below the peak.
	sig, _, err := s.Trial(0.005 - 2*420.0/200000.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sig-(-420.0)) > 1e-6 {
		t.Errorf("reversal stress = %f, want -420", sig)
	}
}

func TestSteel01Rupture(t *testing.T) {
	s, _ := NewSteel01(420.0, 200000.0, 0.01)
	s.MaxStrain = 0.05

	if _, _, err := s.Trial(0.06); !errors.Is(err, ErrFailure) {
		t.Fatalf("strain past rupture limit must fail, got %v", err)
	}
}

func TestConcrete01SignNormalization(t *testing.T) {
	a, err := NewConcrete01(30.0, 0.002, 6.0, 0.02)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewConcrete01(-30.0, -0.002, -6.0, -0.02)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Fpc != b.Fpc || a.Epsc0 != b.Epsc0 {
		t.Errorf("positive magnitudes must normalize: %+v vs %+v", a, b)
	}
}

func TestConcrete01Envelope(t *testing.T) {
	c, _ := NewConcrete01(-30.0, -0.002, -6.0, -0.02)

	if sig, _ := step(t, c, 0.001); sig != 0 {
		t.Errorf("tension stress = %f, want 0", sig)
	}
	c.Reset()

	sig, _ := step(t, c, -0.002)
	if math.Abs(sig-(-30.0)) > 1e-9 {
		t.Errorf("peak stress = %f, want -30", sig)
	}

	sig, _ = step(t, c, -0.03)
	if math.Abs(sig-(-6.0)) > 1e-9 {
		t.Errorf("residual stress = %f, want -6", sig)
	}
}

func TestConcrete01UnloadStiffnessDegrades(t *testing.T) {
	c, _ := NewConcrete01(-30.0, -0.002, -6.0, -0.02)
	ec := c.Ec()

	step(t, c, -0.004) // past the peak
	_, tan := step(t, c, -0.003)

	if tan >= ec {
		t.Errorf("unload slope %f must be below initial tangent %f", tan, ec)
	}
	if tan <= 0 {
		t.Errorf("unload slope must stay positive, got %f", tan)
	}
}

func TestConcrete01NoTensionAfterCrushing(t *testing.T) {
	c, _ := NewConcrete01(-30.0, -0.002, -6.0, -0.02)

	step(t, c, -0.004)
	sig, _ := step(t, c, 0.001)
	if sig != 0 {
		t.Errorf("cracked concrete must carry no tension, got %f", sig)
	}
}

func TestConcrete01TrialDoesNotCommit(t *testing.T) {
	c, _ := NewConcrete01(-30.0, -0.002, -6.0, -0.02)

	// Probe deep into the envelope without committing.
	if _, _, err := c.Trial(-0.01); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Virgin response must be unchanged.
	sig, _ := step(t, c, -0.001)
	eta := -0.001 / -0.002
	want := -30.0 * (2*eta - eta*eta)
	if math.Abs(sig-want) > 1e-9 {
		t.Errorf("stress after discarded trial = %f, want %f", sig, want)
	}
}

func TestConcrete02Tension(t *testing.T) {
	c, err := NewConcrete02(-30.0, -0.002, -6.0, -0.02, 3.0, 1500.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ec := 2 * 30.0 / 0.002
	eps0 := 3.0 / ec

	sig, tan := step(t, c, eps0)
	if math.Abs(sig-3.0) > 1e-9 {
		t.Errorf("tension peak = %f, want 3.0", sig)
	}
	if math.Abs(tan-ec) > 1e-9 {
		t.Errorf("pre-peak tension tangent = %f, want %f", tan, ec)
	}

	sig, tan = step(t, c, 2*eps0)
	want := 3.0 - 1500.0*eps0
	if math.Abs(sig-want) > 1e-9 {
		t.Errorf("softening stress = %f, want %f", sig, want)
	}
	if tan != -1500.0 {
		t.Errorf("softening tangent = %f, want -1500", tan)
	}
}

func TestConcrete02CompressionMatchesConcrete01(t *testing.T) {
	c1, _ := NewConcrete01(-30.0, -0.002, -6.0, -0.02)
	c2, _ := NewConcrete02(-30.0, -0.002, -6.0, -0.02, 3.0, 1500.0)

	for _, eps := range []float64{-0.001, -0.002, -0.005, -0.003, -0.008} {
		s1, _ := step(t, c1, eps)
		s2, _ := step(t, c2, eps)
		if math.Abs(s1-s2) > 1e-9 {
			t.Fatalf("compression diverges at %g: %f vs %f", eps, s1, s2)
		}
	}
}

func TestRegistry(t *testing.T) {
	law, err := New("steel01", map[string]float64{"fy": 420, "e": 200000, "b": 0.01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if law.Name() != "steel01" {
		t.Errorf("name = %q, want steel01", law.Name())
	}

	if _, err := New("rubber", nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown material must be rejected, got %v", err)
	}
	if _, err := New("elastic", map[string]float64{}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("missing modulus must be rejected, got %v", err)
	}
}
