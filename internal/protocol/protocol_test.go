package protocol

import (
	"errors"
	"math"
	"testing"
)

func TestEndpointsAllKinds(t *testing.T) {
	for _, k := range Kinds() {
		seq, err := Generate(Spec{Kind: k, MaxAmplitude: 2.0, Alpha: DefaultAlpha})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", k, err)
		}

		n := seq.NPoints()
		if n != len(seq.Disp) {
			t.Errorf("%s: time/disp length mismatch: %d vs %d", k, n, len(seq.Disp))
		}
		if seq.Disp[0] != 0 || seq.Disp[n-1] != 0 {
			t.Errorf("%s: history must start and end at zero, got %f and %f", k, seq.Disp[0], seq.Disp[n-1])
		}
		if seq.Time[0] != 0 {
			t.Errorf("%s: time must start at 0, got %f", k, seq.Time[0])
		}
		if math.Abs(seq.Time[n-1]-1.0) > 1e-12 {
			t.Errorf("%s: time must end at 1, got %f", k, seq.Time[n-1])
		}
	}
}

func TestTimeMonotonic(t *testing.T) {
	for _, k := range Kinds() {
		seq, err := Generate(Spec{Kind: k, MaxAmplitude: 0.02, Alpha: DefaultAlpha})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", k, err)
		}
		for i := 1; i < seq.NPoints(); i++ {
			if seq.Time[i] < seq.Time[i-1] {
				t.Fatalf("%s: time decreases at %d: %f -> %f", k, i, seq.Time[i-1], seq.Time[i])
			}
		}
	}
}

func TestPairedSymmetry(t *testing.T) {
	for _, k := range []Kind{ASCE41, ModifiedATC24} {
		seq, err := Generate(Spec{Kind: k, MaxAmplitude: 1.5})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", k, err)
		}
		// Interior points come in (+A, -A) pairs.
		for i := 1; i+1 < seq.NPoints()-1; i += 2 {
			if seq.Disp[i+1] != -seq.Disp[i] {
				t.Fatalf("%s: trough at %d is %f, want %f", k, i+1, seq.Disp[i+1], -seq.Disp[i])
			}
			if seq.Disp[i] <= 0 {
				t.Fatalf("%s: peak at %d is not positive: %f", k, i, seq.Disp[i])
			}
		}
	}
}

func TestASCE41Rescaling(t *testing.T) {
	const maxAmp = 0.035
	seq, err := Generate(NewASCE41(maxAmp))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := seq.PeakAmplitude(); got != maxAmp {
		t.Errorf("top level must reach max amplitude exactly: got %g, want %g", got, maxAmp)
	}

	// First level is 0.0025/0.060 of the peak, repeated 3 times.
	want := 0.0025 / 0.060 * maxAmp
	for i := 1; i <= 6; i += 2 {
		if math.Abs(seq.Disp[i]-want) > 1e-15 {
			t.Errorf("disp[%d] = %g, want %g", i, seq.Disp[i], want)
		}
	}
}

func TestModifiedATC24Opening(t *testing.T) {
	seq, err := Generate(NewModifiedATC24(2.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{0.0, 0.2, -0.2, 0.2, -0.2, 0.2, -0.2, 0.4}
	for i, w := range want {
		if math.Abs(seq.Disp[i]-w) > 1e-15 {
			t.Fatalf("disp[%d] = %g, want %g", i, seq.Disp[i], w)
		}
	}

	// 3+3+3+2+2+1 repetitions, two points each, plus the two zeros.
	if got, wantLen := seq.NPoints(), 2*14+2; got != wantLen {
		t.Errorf("point count = %d, want %d", got, wantLen)
	}
}

func TestFEMA461Growth(t *testing.T) {
	seq, err := Generate(NewFEMA461(1.0, DefaultAlpha))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(seq.Disp[1]-0.01) > 1e-15 || math.Abs(seq.Disp[2]+0.01) > 1e-15 {
		t.Errorf("first cycle = (%g, %g), want (0.01, -0.01)", seq.Disp[1], seq.Disp[2])
	}
	if math.Abs(seq.Disp[3]-0.0162) > 1e-12 {
		t.Errorf("second level = %g, want 0.0162", seq.Disp[3])
	}

	// Largest emitted level stays below the peak; the next would exceed it.
	peak := seq.PeakAmplitude()
	if peak >= 1.0 {
		t.Errorf("peak %g must stay below max amplitude", peak)
	}
	if next := peak * (1.0 + DefaultAlpha); next < 1.0 {
		t.Errorf("generation stopped early: next level %g still below max", next)
	}
}

func TestInvalidParameters(t *testing.T) {
	cases := []struct {
		name string
		spec Spec
	}{
		{"asce41 zero amplitude", NewASCE41(0.0)},
		{"asce41 negative amplitude", NewASCE41(-1.0)},
		{"atc24 negative amplitude", NewModifiedATC24(-0.5)},
		{"fema461 zero alpha", NewFEMA461(1.0, 0.0)},
		{"fema461 negative alpha", NewFEMA461(1.0, -0.3)},
		{"unknown kind", Spec{Kind: Kind(99), MaxAmplitude: 1.0}},
	}

	for _, tc := range cases {
		if _, err := Generate(tc.spec); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: got %v, want ErrInvalidParameter", tc.name, err)
		}
	}
}

func TestFEMA461StallGuard(t *testing.T) {
	// An alpha below the float64 resolution of the running amplitude
	// cannot grow it; generation must fail rather than spin.
	_, err := Generate(NewFEMA461(1.0, 1e-18))
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("got %v, want ErrInvalidParameter", err)
	}
}

func TestTimeProportionalToTravel(t *testing.T) {
	seq, err := Generate(NewModifiedATC24(1.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := 0.0
	for i := 1; i < seq.NPoints(); i++ {
		total += math.Abs(seq.Disp[i] - seq.Disp[i-1])
	}

	travel := 0.0
	for i := 1; i < seq.NPoints(); i++ {
		travel += math.Abs(seq.Disp[i] - seq.Disp[i-1])
		if math.Abs(seq.Time[i]-travel/total) > 1e-12 {
			t.Fatalf("time[%d] = %g, want %g", i, seq.Time[i], travel/total)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("atc-24"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for unknown name, got %v", err)
	}
}
