package vecmath

import (
	"fmt"
	"math"
	"testing"

	"github.com/vacasaiyan/genre-adaptive-guitar-effects/internal/testutil"
)

func TestScaleBlock(t *testing.T) {
	t.Parallel()

	sizes := []int{0, 1, 3, 8, 17, 64, 1000}
	scales := []float64{0.0, 1.0, -1.0, 0.5, math.Pi}

	for _, n := range sizes {
		for _, scale := range scales {
			t.Run(fmt.Sprintf("n%d_s%g", n, scale), func(t *testing.T) {
				t.Parallel()

				src := make([]float64, n)
				dst := make([]float64, n)

				for i := range src {
					src[i] = float64(i) + 0.5
				}

				ScaleBlock(dst, src, scale)

				for i := range dst {
					want := src[i] * scale
					if dst[i] != want {
						t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
					}
				}
			})
		}
	}
}

func TestScaleBlockLengthMismatchPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on length mismatch")
		}
	}()

	ScaleBlock(make([]float64, 4), make([]float64, 5), 2)
}

func TestScaleBlockInPlace(t *testing.T) {
	t.Parallel()

	dst := []float64{1, -2, 0.5, 0}
	want := []float64{1.1, -2.2, 0.55, 0}

	ScaleBlockInPlace(dst, 1.1)

	for i := range dst {
		if math.Abs(dst[i]-want[i]) > 1e-15 {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestAddBlockInPlace(t *testing.T) {
	t.Parallel()

	dst := []float64{1, 2, 3}
	src := []float64{0.5, -2, 10}
	want := []float64{1.5, 0, 13}

	AddBlockInPlace(dst, src)

	for i := range dst {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestAddBlockInPlaceLengthMismatchPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on length mismatch")
		}
	}()

	AddBlockInPlace(make([]float64, 4), make([]float64, 3))
}

func TestScaleBlockMatchesInPlace(t *testing.T) {
	t.Parallel()

	src := testutil.DeterministicNoise(11, 1, 513)
	dst := make([]float64, len(src))
	ScaleBlock(dst, src, 0.25)

	inPlace := make([]float64, len(src))
	copy(inPlace, src)
	ScaleBlockInPlace(inPlace, 0.25)

	testutil.RequireSliceNearlyEqual(t, dst, inPlace, 0)
}

func TestMaxAbsSinePeak(t *testing.T) {
	t.Parallel()

	// 1 kHz at 8 kHz sampling hits the exact sine peak.
	s := testutil.DeterministicSine(1000, 8000, 0.8, 64)
	if got := MaxAbs(s); got != 0.8 {
		t.Errorf("MaxAbs = %v, want 0.8", got)
	}
}

func TestMaxAbs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		x    []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{-3}, 3},
		{"positive peak", []float64{0.1, 2.5, 0.3}, 2.5},
		{"negative peak", []float64{0.1, -4, 0.3}, 4},
		{"zeros", []float64{0, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := MaxAbs(tt.x); got != tt.want {
				t.Errorf("MaxAbs = %v, want %v", got, tt.want)
			}
		})
	}
}
