package dynamics

import (
	"fmt"
	"math"
)

const (
	// Default compressor parameters
	defaultCompressorThresholdDB = -20.0
	defaultCompressorRatio       = 4.0
	defaultCompressorAttackMs    = 5.0
	defaultCompressorReleaseMs   = 100.0
	defaultCompressorMakeupGain  = 1.0

	// Parameter validation ranges
	minCompressorRatio      = 1.0
	maxCompressorRatio      = 100.0
	minCompressorAttackMs   = 0.1
	maxCompressorAttackMs   = 1000.0
	minCompressorReleaseMs  = 1.0
	maxCompressorReleaseMs  = 5000.0
	minCompressorMakeupGain = 0.0
	maxCompressorMakeupGain = 10.0
)

// Compressor is a feed-forward dynamic range compressor with a peak
// envelope detector and dB-domain gain computation.
//
// A detected level r dB above the threshold comes out r/ratio dB above
// it; below the threshold the compressor is unity gain. Makeup gain is a
// plain linear output multiplier applied after gain reduction.
//
// The compressor is mono and not thread-safe. Parameter changes should
// occur outside audio processing callbacks.
type Compressor struct {
	thresholdDB float64
	ratio       float64
	attackMs    float64
	releaseMs   float64
	makeupGain  float64

	sampleRate float64

	env follower
}

// NewCompressor creates a compressor with musical defaults.
//
// Sample rate must be positive and finite.
//
// Default parameters:
//   - Threshold: -20 dB
//   - Ratio: 4:1
//   - Attack: 5 ms
//   - Release: 100 ms
//   - Makeup gain: 1.0 (unity)
func NewCompressor(sampleRate float64) (*Compressor, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}

	c := &Compressor{
		thresholdDB: defaultCompressorThresholdDB,
		ratio:       defaultCompressorRatio,
		attackMs:    defaultCompressorAttackMs,
		releaseMs:   defaultCompressorReleaseMs,
		makeupGain:  defaultCompressorMakeupGain,
		sampleRate:  sampleRate,
	}
	c.updateTimeConstants()

	return c, nil
}

// SetThreshold sets the compression threshold in dB.
// Typical range: -60 to 0 dB. Detected levels above it are compressed.
func (c *Compressor) SetThreshold(dB float64) error {
	if math.IsNaN(dB) || math.IsInf(dB, 0) {
		return fmt.Errorf("compressor threshold must be finite: %f", dB)
	}
	c.thresholdDB = dB
	return nil
}

// SetRatio sets the compression ratio.
// Range: 1.0 to 100.0
//   - 1.0 = no compression
//   - 4.0 = 4:1 (musical compression)
//   - 100.0 ≈ limiting
func (c *Compressor) SetRatio(ratio float64) error {
	if ratio < minCompressorRatio || ratio > maxCompressorRatio ||
		math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return fmt.Errorf("compressor ratio must be in [%f, %f]: %f",
			minCompressorRatio, maxCompressorRatio, ratio)
	}
	c.ratio = ratio
	return nil
}

// SetAttack sets the detector attack time in milliseconds.
// Range: 0.1 to 1000 ms. Faster attack = quicker compression response.
func (c *Compressor) SetAttack(ms float64) error {
	if ms < minCompressorAttackMs || ms > maxCompressorAttackMs ||
		math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Errorf("compressor attack must be in [%f, %f]: %f",
			minCompressorAttackMs, maxCompressorAttackMs, ms)
	}
	c.attackMs = ms
	c.updateTimeConstants()
	return nil
}

// SetRelease sets the detector release time in milliseconds.
// Range: 1 to 5000 ms. Slower release = smoother gain recovery.
func (c *Compressor) SetRelease(ms float64) error {
	if ms < minCompressorReleaseMs || ms > maxCompressorReleaseMs ||
		math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Errorf("compressor release must be in [%f, %f]: %f",
			minCompressorReleaseMs, maxCompressorReleaseMs, ms)
	}
	c.releaseMs = ms
	c.updateTimeConstants()
	return nil
}

// SetMakeupGain sets the linear output multiplier applied after gain
// reduction. Range: 0.0 to 10.0; 1.0 is unity.
func (c *Compressor) SetMakeupGain(gain float64) error {
	if gain < minCompressorMakeupGain || gain > maxCompressorMakeupGain ||
		math.IsNaN(gain) || math.IsInf(gain, 0) {
		return fmt.Errorf("compressor makeup gain must be in [%f, %f]: %f",
			minCompressorMakeupGain, maxCompressorMakeupGain, gain)
	}
	c.makeupGain = gain
	return nil
}

// SetSampleRate updates sample rate and recalculates time constants.
func (c *Compressor) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}
	c.sampleRate = sampleRate
	c.updateTimeConstants()
	return nil
}

// Threshold returns the current threshold in dB.
func (c *Compressor) Threshold() float64 { return c.thresholdDB }

// Ratio returns the current compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// Attack returns the current attack time in milliseconds.
func (c *Compressor) Attack() float64 { return c.attackMs }

// Release returns the current release time in milliseconds.
func (c *Compressor) Release() float64 { return c.releaseMs }

// MakeupGain returns the current linear makeup gain.
func (c *Compressor) MakeupGain() float64 { return c.makeupGain }

// SampleRate returns the current sample rate in Hz.
func (c *Compressor) SampleRate() float64 { return c.sampleRate }

// Envelope returns the current detector envelope level (linear).
func (c *Compressor) Envelope() float64 { return c.env.value }

// ProcessSample processes one sample through the compressor.
func (c *Compressor) ProcessSample(input float64) float64 {
	env := c.env.process(math.Abs(input))
	envDB := levelDB(env)

	gain := 1.0
	if envDB > c.thresholdDB {
		compressedDB := c.thresholdDB + (envDB-c.thresholdDB)/c.ratio
		gain = mathPower10((compressedDB - envDB) / 20.0)
	}

	return input * gain * c.makeupGain
}

// ProcessInPlace applies compression to buf in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// Reset clears the envelope follower.
func (c *Compressor) Reset() {
	c.env.reset()
}

func (c *Compressor) updateTimeConstants() {
	c.env.setTimes(c.attackMs*0.001, c.releaseMs*0.001, c.sampleRate)
}
