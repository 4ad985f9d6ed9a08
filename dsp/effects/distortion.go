package effects

import (
	"fmt"
	"math"
	"strings"
)

const (
	defaultDistortionGain = 5.0
	defaultDistortionMix  = 1.0

	minDistortionGain = 0.01
	maxDistortionGain = 100.0

	// Post-mix attenuation leaving headroom for downstream stages.
	distortionHeadroom = 0.9

	twoStageHardLimit = 0.95
)

// DistortionMode selects the transfer function used by Distortion.
type DistortionMode int

const (
	// DistortionModeTanh is a smooth, symmetric tanh saturation.
	DistortionModeTanh DistortionMode = iota
	// DistortionModeTwoStage saturates softly at reduced gain, boosts,
	// then hard-clips at ±0.95 for a tight, aggressive edge.
	DistortionModeTwoStage
	// DistortionModeSoftAsym blends a scaled tanh with a squared-tanh
	// term that adds even-harmonic warmth.
	DistortionModeSoftAsym
	// DistortionModeAsymmetric drives positive samples harder than
	// negative ones for a chunky, percussive saturation.
	DistortionModeAsymmetric
)

// String returns the profile-table name of the mode.
func (m DistortionMode) String() string {
	switch m {
	case DistortionModeTanh:
		return "tanh"
	case DistortionModeTwoStage:
		return "hard"
	case DistortionModeSoftAsym:
		return "soft"
	case DistortionModeAsymmetric:
		return "asymmetric"
	default:
		return fmt.Sprintf("DistortionMode(%d)", int(m))
	}
}

// ParseDistortionMode maps a mode name ("tanh", "hard", "soft",
// "asymmetric") to its constant. Matching is case-insensitive.
func ParseDistortionMode(name string) (DistortionMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tanh":
		return DistortionModeTanh, nil
	case "hard":
		return DistortionModeTwoStage, nil
	case "soft":
		return DistortionModeSoftAsym, nil
	case "asymmetric":
		return DistortionModeAsymmetric, nil
	default:
		return 0, fmt.Errorf("distortion mode is unknown: %q", name)
	}
}

func validDistortionMode(mode DistortionMode) bool {
	return mode >= DistortionModeTanh && mode <= DistortionModeAsymmetric
}

// DistortionOption mutates construction-time parameters.
type DistortionOption func(*distortionConfig) error

type distortionConfig struct {
	mode DistortionMode
	gain float64
	mix  float64
}

func defaultDistortionConfig() distortionConfig {
	return distortionConfig{
		mode: DistortionModeTanh,
		gain: defaultDistortionGain,
		mix:  defaultDistortionMix,
	}
}

// WithDistortionMode selects the distortion transfer mode.
func WithDistortionMode(mode DistortionMode) DistortionOption {
	return func(cfg *distortionConfig) error {
		if !validDistortionMode(mode) {
			return fmt.Errorf("distortion mode is invalid: %d", mode)
		}

		cfg.mode = mode

		return nil
	}
}

// WithDistortionGain sets pre-shape gain in [0.01, 100].
func WithDistortionGain(gain float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if gain < minDistortionGain || gain > maxDistortionGain || math.IsNaN(gain) || math.IsInf(gain, 0) {
			return fmt.Errorf("distortion gain must be in [%g, %g]: %f", minDistortionGain, maxDistortionGain, gain)
		}

		cfg.gain = gain

		return nil
	}
}

// WithDistortionMix sets dry/wet mix in [0, 1].
func WithDistortionMix(mix float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if mix < 0 || mix > 1 || math.IsNaN(mix) || math.IsInf(mix, 0) {
			return fmt.Errorf("distortion mix must be in [0, 1]: %f", mix)
		}

		cfg.mix = mix

		return nil
	}
}

// Distortion is a stateless waveshaper with four clipping modes, from
// smooth tube-style saturation to aggressive asymmetric clipping. The
// wet path is driven by a pre-gain, blended with the dry input, and
// attenuated by a fixed 0.9 headroom factor.
type Distortion struct {
	mode DistortionMode
	gain float64
	mix  float64
}

// NewDistortion creates a distortion processor with validated options.
func NewDistortion(opts ...DistortionOption) (*Distortion, error) {
	cfg := defaultDistortionConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Distortion{
		mode: cfg.mode,
		gain: cfg.gain,
		mix:  cfg.mix,
	}, nil
}

// SetMode sets the shaping mode.
func (d *Distortion) SetMode(mode DistortionMode) error {
	if !validDistortionMode(mode) {
		return fmt.Errorf("distortion mode is invalid: %d", mode)
	}

	d.mode = mode

	return nil
}

// SetGain sets pre-shape gain in [0.01, 100].
func (d *Distortion) SetGain(gain float64) error {
	if gain < minDistortionGain || gain > maxDistortionGain || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return fmt.Errorf("distortion gain must be in [%g, %g]: %f", minDistortionGain, maxDistortionGain, gain)
	}

	d.gain = gain

	return nil
}

// SetMix sets dry/wet mix in [0, 1].
func (d *Distortion) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) || math.IsInf(mix, 0) {
		return fmt.Errorf("distortion mix must be in [0, 1]: %f", mix)
	}

	d.mix = mix

	return nil
}

// Mode returns the active shaping mode.
func (d *Distortion) Mode() DistortionMode { return d.mode }

// Gain returns pre-shape gain.
func (d *Distortion) Gain() float64 { return d.gain }

// Mix returns dry/wet mix in [0,1].
func (d *Distortion) Mix() float64 { return d.mix }

// Reset clears internal state; the waveshaper is stateless, so this is
// a no-op kept for interface symmetry with the other effects.
func (d *Distortion) Reset() {}

// ProcessSample applies distortion to one sample.
func (d *Distortion) ProcessSample(input float64) float64 {
	gained := input * d.gain
	wet := d.shapeSample(gained)

	return (d.mix*wet + (1-d.mix)*input) * distortionHeadroom
}

// ProcessInPlace applies distortion to buf in place.
func (d *Distortion) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = d.ProcessSample(buf[i])
	}
}

func (d *Distortion) shapeSample(x float64) float64 {
	switch d.mode {
	case DistortionModeTanh:
		return math.Tanh(x)
	case DistortionModeTwoStage:
		return d.twoStageClip(x)
	case DistortionModeSoftAsym:
		return d.softAsym(x)
	case DistortionModeAsymmetric:
		return d.asymmetric(x)
	default:
		return math.Tanh(x)
	}
}

// twoStageClip saturates softly first, then hard-clips the boosted
// result, keeping the clip aggressive without the harshness of a bare
// limiter.
func (d *Distortion) twoStageClip(x float64) float64 {
	stage1 := math.Tanh(x * 0.6)

	return clamp(stage1*2.2, -twoStageHardLimit, twoStageHardLimit)
}

// softAsym is a warm overdrive: a scaled tanh plus a squared-tanh term
// whose even harmonics thicken the low mids.
func (d *Distortion) softAsym(x float64) float64 {
	wet := math.Tanh(x*1.2) * 0.9
	even := math.Tanh(x * 0.3)

	return wet + even*even*0.15
}

// asymmetric clips the positive half-wave harder than the negative one.
func (d *Distortion) asymmetric(x float64) float64 {
	if x >= 0 {
		return math.Tanh(x*1.8) * 1.1
	}

	return math.Tanh(x*1.3) * 0.95
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}

	if x > hi {
		return hi
	}

	return x
}
