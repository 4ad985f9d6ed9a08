// Package signal generates deterministic test and demo material: sines,
// multisines, white noise, and plucked-string tones.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/core"
)

// pluckHarmonics is the number of partials in a generated pluck.
const pluckHarmonics = 5

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed changes the random seed used for subsequent noise generation.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Seed returns the current random seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Multisine generates a sum of equal-weight sine components, scaled so the
// combined signal stays within [-amplitude, amplitude].
func (g *Generator) Multisine(freqs []float64, amplitude float64, samples int) ([]float64, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("multisine needs at least one frequency")
	}
	if samples <= 0 {
		return nil, fmt.Errorf("multisine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("multisine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	scale := amplitude / float64(len(freqs))
	for i := range out {
		v := 0.0
		for _, f := range freqs {
			v += math.Sin(2 * math.Pi * f * float64(i) / g.cfg.SampleRate)
		}
		out[i] = scale * v
	}
	return out, nil
}

// Pluck generates a decaying harmonic tone approximating a plucked string.
// The fundamental carries partials 2..5 at 1/k weight, and higher partials
// decay faster than the fundamental, so the tone starts bright and mellows.
// decaySeconds is the amplitude time constant of the fundamental.
func (g *Generator) Pluck(freqHz, amplitude, decaySeconds float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("pluck samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("pluck sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	if decaySeconds <= 0 {
		return nil, fmt.Errorf("pluck decay must be > 0: %f", decaySeconds)
	}

	// Sum of the 1/k partial weights, so the envelope peak stays within
	// [-amplitude, amplitude].
	norm := 0.0
	for k := 1; k <= pluckHarmonics; k++ {
		norm += 1 / float64(k)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		t := float64(i) / g.cfg.SampleRate
		v := 0.0
		for k := 1; k <= pluckHarmonics; k++ {
			kf := float64(k)
			v += math.Exp(-kf*t/decaySeconds) * math.Sin(step*kf*float64(i)) / kf
		}
		out[i] = amplitude * v / norm
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
