package design_test

import (
	"fmt"

	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/filter/design"
)

func ExamplePeak() {
	sr := 48000.0
	for _, gain := range []float64{-12, -6, 6, 12} {
		c := design.Peak(1000, gain, 1.0, sr)
		fmt.Printf("%+3.0f dB design -> %+6.2f dB at center\n", gain, c.MagnitudeDB(1000, sr))
	}
	// Output:
	// -12 dB design -> -12.00 dB at center
	//  -6 dB design ->  -6.00 dB at center
	//  +6 dB design ->  +6.00 dB at center
	// +12 dB design -> +12.00 dB at center
}
