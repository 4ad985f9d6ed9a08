package spectrum_test

import (
	"fmt"

	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExamplePowerFromParts() {
	re := []float64{3, 1}
	im := []float64{4, 0}
	dst := make([]float64, 2)

	spectrum.PowerFromParts(dst, re, im)
	fmt.Printf("%.0f %.0f\n", dst[0], dst[1])
	// Output:
	// 25 1
}
