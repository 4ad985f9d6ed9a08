package effects

import (
	"fmt"
	"math"
	"strings"

	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/filter/biquad"
	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/filter/design"
)

// EQPresetFlat and friends name the built-in band tables.
const (
	EQPresetFlat      = "flat"
	EQPresetBright    = "bright"
	EQPresetWarm      = "warm"
	EQPresetMetal     = "metal"
	EQPresetMetalPre  = "metal_pre"
	EQPresetMetalPost = "metal_post"
)

// eqMaxPresetBands is the band count of the largest built-in preset
// (metal_post); the section storage is pre-sized to it so preset
// switches never allocate.
const eqMaxPresetBands = 7

// EQBand describes one peaking band.
type EQBand struct {
	Freq   float64 // center frequency in Hz
	GainDB float64 // boost or cut in dB
	Q      float64 // band sharpness
}

// Built-in tables. Bright lifts high-mids and highs for pop, warm
// thickens low-mids for jazz and blues, metal is a mid-forward
// overdrive voicing, and the metal_pre/metal_post pair brackets a
// high-gain distortion stage (tighten lows before, scoop and re-voice
// after).
var (
	eqBandsBright = []EQBand{
		{Freq: 2000, GainDB: 7.0, Q: 1.0},
		{Freq: 5000, GainDB: 6.0, Q: 1.0},
	}

	eqBandsWarm = []EQBand{
		{Freq: 200, GainDB: 4.0, Q: 1.0},
		{Freq: 800, GainDB: 5.0, Q: 1.0},
	}

	eqBandsMetal = []EQBand{
		{Freq: 100, GainDB: 1.0, Q: 1.0},
		{Freq: 400, GainDB: 3.0, Q: 0.9},
		{Freq: 800, GainDB: 8.0, Q: 0.8},
		{Freq: 1500, GainDB: 5.0, Q: 0.9},
		{Freq: 3000, GainDB: 3.0, Q: 1.0},
		{Freq: 6000, GainDB: 1.0, Q: 1.2},
	}

	eqBandsMetalPre = []EQBand{
		{Freq: 135, GainDB: -15.0, Q: 0.7},
		{Freq: 1000, GainDB: 13.0, Q: 1.0},
		{Freq: 2500, GainDB: 6.0, Q: 1.2},
	}

	eqBandsMetalPost = []EQBand{
		{Freq: 7000, GainDB: -10.0, Q: 0.7},
		{Freq: 90, GainDB: 18.0, Q: 1.2},
		{Freq: 150, GainDB: 35.0, Q: 0.8},
		{Freq: 500, GainDB: -14.0, Q: 1.0},
		{Freq: 3000, GainDB: 15.0, Q: 1.1},
		{Freq: 5000, GainDB: 24.0, Q: 0.9},
		{Freq: 1500, GainDB: 13.5, Q: 0.8},
	}
)

// EQPresets lists the built-in preset names.
func EQPresets() []string {
	return []string{
		EQPresetFlat,
		EQPresetBright,
		EQPresetWarm,
		EQPresetMetal,
		EQPresetMetalPre,
		EQPresetMetalPost,
	}
}

// ParseEQPreset normalizes a preset name and reports whether it is a
// known preset. Unknown names resolve to flat.
func ParseEQPreset(name string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case EQPresetFlat, EQPresetBright, EQPresetWarm, EQPresetMetal, EQPresetMetalPre, EQPresetMetalPost:
		return normalized, true
	default:
		return EQPresetFlat, false
	}
}

func eqPresetBands(preset string) []EQBand {
	switch preset {
	case EQPresetBright:
		return eqBandsBright
	case EQPresetWarm:
		return eqBandsWarm
	case EQPresetMetal:
		return eqBandsMetal
	case EQPresetMetalPre:
		return eqBandsMetalPre
	case EQPresetMetalPost:
		return eqBandsMetalPost
	default:
		return nil
	}
}

// EQ is a parametric equalizer: a cascade of second-order peaking
// filters over a [biquad.Chain]. Coefficients are derived once when a
// preset or band list is applied, not per block. An empty band list is
// a bypass.
type EQ struct {
	sampleRate float64
	preset     string
	bands      []EQBand

	chain  *biquad.Chain
	coeffs []biquad.Coefficients
}

// NewEQ creates an equalizer starting on the flat preset.
func NewEQ(sampleRate float64) (*EQ, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("eq sample rate must be > 0 and finite: %f", sampleRate)
	}

	e := &EQ{
		sampleRate: sampleRate,
		preset:     EQPresetFlat,
		bands:      make([]EQBand, 0, eqMaxPresetBands),
		chain:      biquad.NewChain(nil, biquad.WithSectionCapacity(eqMaxPresetBands)),
		coeffs:     make([]biquad.Coefficients, 0, eqMaxPresetBands),
	}

	return e, nil
}

// SetPreset applies a built-in band table and zeroes all filter state.
// Unknown names fall back to flat.
func (e *EQ) SetPreset(name string) {
	preset, _ := ParseEQPreset(name)

	e.preset = preset
	e.applyBands(eqPresetBands(preset))
	e.chain.Reset()
}

// SetBands applies a custom band list. When the usable band count is
// unchanged the per-band filter state carries over (chain semantics),
// so live tweaks do not click; a changed count re-zeroes state.
func (e *EQ) SetBands(bands []EQBand) {
	e.preset = ""
	e.applyBands(bands)
}

// applyBands designs one peaking section per band and swaps them into
// the chain. Bands the designer rejects (non-finite values, center at
// or beyond Nyquist) come back as zero coefficient sets and are
// skipped.
func (e *EQ) applyBands(bands []EQBand) {
	e.bands = append(e.bands[:0], bands...)

	e.coeffs = e.coeffs[:0]
	for _, band := range bands {
		c := design.Peak(band.Freq, band.GainDB, band.Q, e.sampleRate)
		if c == (biquad.Coefficients{}) {
			continue
		}

		e.coeffs = append(e.coeffs, c)
	}

	e.chain.UpdateCoefficients(e.coeffs)
}

// Reset clears all per-band filter state.
func (e *EQ) Reset() {
	e.chain.Reset()
}

// ProcessSample runs one sample through every band in series.
func (e *EQ) ProcessSample(input float64) float64 {
	return e.chain.ProcessSample(input)
}

// ProcessInPlace equalizes buf in place.
func (e *EQ) ProcessInPlace(buf []float64) {
	e.chain.ProcessBlock(buf)
}

// SampleRate returns sample rate in Hz.
func (e *EQ) SampleRate() float64 { return e.sampleRate }

// Preset returns the active preset name, or "" after SetBands.
func (e *EQ) Preset() string { return e.preset }

// Bands returns a copy of the active band list.
func (e *EQ) Bands() []EQBand {
	out := make([]EQBand, len(e.bands))
	copy(out, e.bands)

	return out
}

// NumSections returns the number of active filter sections, which can
// be lower than the band count when bands fall outside (0, Nyquist).
func (e *EQ) NumSections() int {
	return e.chain.NumSections()
}

// MagnitudeDB returns the cascade's magnitude response at freq in dB.
func (e *EQ) MagnitudeDB(freq float64) float64 {
	return e.chain.MagnitudeDB(freq, e.sampleRate)
}
