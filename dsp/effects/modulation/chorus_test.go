package modulation

import (
	"math"
	"testing"
)

func TestNewChorusValidation(t *testing.T) {
	if _, err := NewChorus(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewChorus(math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}

	c, err := NewChorus(44100)
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	if err := c.SetRate(0); err == nil {
		t.Fatal("expected error for zero rate")
	}

	if err := c.SetDepth(-0.001); err == nil {
		t.Fatal("expected error for negative depth")
	}

	if err := c.SetDepth(0.06); err == nil {
		t.Fatal("expected error for depth beyond the delay line")
	}

	if err := c.SetMix(1.5); err == nil {
		t.Fatal("expected error for out-of-range mix")
	}
}

func TestChorusDefaults(t *testing.T) {
	c, err := NewChorus(44100)
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	if c.Rate() != defaultChorusRateHz {
		t.Errorf("Rate() = %v, want %v", c.Rate(), defaultChorusRateHz)
	}

	if c.Depth() != defaultChorusDepthSeconds {
		t.Errorf("Depth() = %v, want %v", c.Depth(), defaultChorusDepthSeconds)
	}

	if c.Mix() != defaultChorusMix {
		t.Errorf("Mix() = %v, want %v", c.Mix(), defaultChorusMix)
	}

	if c.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %v, want 44100", c.SampleRate())
	}
}

func TestChorusZeroDepthPassthrough(t *testing.T) {
	c, _ := NewChorus(44100)
	if err := c.SetDepth(0); err != nil {
		t.Fatalf("SetDepth() error = %v", err)
	}

	// Zero depth keeps the tap on the just-written sample, and the
	// default equal mix recombines the two identical halves exactly.
	for i := range 1000 {
		in := math.Sin(2 * math.Pi * 440 * float64(i) / 44100)
		if out := c.ProcessSample(in); out != in {
			t.Fatalf("sample %d: got %v, want %v", i, out, in)
		}
	}
}

func TestChorusMixZeroIsDry(t *testing.T) {
	c, _ := NewChorus(44100)
	if err := c.SetMix(0); err != nil {
		t.Fatalf("SetMix() error = %v", err)
	}

	for i := range 1000 {
		in := math.Sin(2 * math.Pi * 220 * float64(i) / 44100)
		if out := c.ProcessSample(in); out != in {
			t.Fatalf("sample %d: got %v, want %v", i, out, in)
		}
	}
}

// TestChorusImpulseTap feeds an impulse and checks the wet tap returns
// it once, at roughly half the depth (the LFO starts at phase zero), at
// exactly half height under the default equal mix.
func TestChorusImpulseTap(t *testing.T) {
	c, _ := NewChorus(44100)

	if out := c.ProcessSample(1); out != 0.5 {
		t.Fatalf("dry impulse = %v, want 0.5", out)
	}

	hit := -1
	for i := 1; i < 200; i++ {
		out := c.ProcessSample(0)
		if out == 0 {
			continue
		}

		if hit != -1 {
			t.Fatalf("second tap at sample %d, want a single tap", i)
		}

		hit = i

		if out != 0.5 {
			t.Errorf("tap height = %v, want 0.5", out)
		}
	}

	// Half depth is 66 samples at 44.1 kHz; the sweep has barely moved
	// the tap by then.
	if hit < 60 || hit > 75 {
		t.Errorf("tap at sample %d, want near 66", hit)
	}
}

func TestChorusBoundedOutput(t *testing.T) {
	c, _ := NewChorus(44100)

	for i := range 441000 {
		in := math.Sin(2 * math.Pi * 440 * float64(i) / 44100)

		out := c.ProcessSample(in)
		if math.IsNaN(out) || math.Abs(out) > 1.0+1e-12 {
			t.Fatalf("sample %d: out of bounds output %v", i, out)
		}
	}
}

func TestChorusResetRestoresState(t *testing.T) {
	c, err := NewChorus(44100)
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	in := make([]float64, 500)
	in[0] = 1
	for i := 1; i < len(in); i++ {
		in[i] = math.Sin(2 * math.Pi * float64(i) / 31)
	}

	out1 := make([]float64, len(in))
	for i := range in {
		out1[i] = c.ProcessSample(in[i])
	}

	c.Reset()

	out2 := make([]float64, len(in))
	for i := range in {
		out2[i] = c.ProcessSample(in[i])
	}

	for i := range out1 {
		if out1[i] != out2[i] {
			t.Fatalf("sample %d: replay mismatch %g vs %g", i, out1[i], out2[i])
		}
	}
}

func TestChorusProcessInPlaceMatchesSample(t *testing.T) {
	c1, err := NewChorus(44100)
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	c2, err := NewChorus(44100)
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	input := make([]float64, 128)
	for i := range input {
		input[i] = math.Sin(2 * math.Pi * float64(i) / 31)
	}

	want := make([]float64, len(input))
	copy(want, input)

	for i := range want {
		want[i] = c1.ProcessSample(want[i])
	}

	got := make([]float64, len(input))
	copy(got, input)
	c2.ProcessInPlace(got)

	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("sample %d mismatch: got=%g want=%g", i, got[i], want[i])
		}
	}
}
