package dynamics

import (
	"fmt"
	"math"
)

const (
	// Default gate parameters
	defaultGateThresholdDB = -40.0
	defaultGateAttackMs    = 1.0
	defaultGateReleaseMs   = 50.0

	// Gate parameter validation ranges
	minGateAttackMs  = 0.1
	maxGateAttackMs  = 1000.0
	minGateReleaseMs = 1.0
	maxGateReleaseMs = 5000.0
)

// NoiseGate mutes signal below a threshold.
//
// A peak envelope follower tracks the input level; whenever the level in
// dB sits above the threshold the gate targets unity gain, otherwise it
// targets zero. A second follower with the same attack/release times
// smooths that binary target, so the gate opens quickly on transients and
// closes gradually instead of chattering.
//
// The gate is mono and not thread-safe. Parameter changes should occur
// outside audio processing callbacks.
type NoiseGate struct {
	thresholdDB float64
	attackMs    float64
	releaseMs   float64

	sampleRate float64

	env  follower
	gain follower
}

// NewNoiseGate creates a noise gate with defaults suited to cleaning up
// guitar signal between phrases.
//
// Sample rate must be positive and finite.
//
// Default parameters:
//   - Threshold: -40 dB
//   - Attack: 1 ms (gate opens fast)
//   - Release: 50 ms (gate closes smoothly)
func NewNoiseGate(sampleRate float64) (*NoiseGate, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("noise gate sample rate must be positive and finite: %f", sampleRate)
	}

	g := &NoiseGate{
		thresholdDB: defaultGateThresholdDB,
		attackMs:    defaultGateAttackMs,
		releaseMs:   defaultGateReleaseMs,
		sampleRate:  sampleRate,
	}
	g.updateTimeConstants()

	return g, nil
}

// SetThreshold sets the gate threshold in dB.
// Signals below this level are attenuated. Typical range: -60 to -20 dB.
func (g *NoiseGate) SetThreshold(dB float64) error {
	if math.IsNaN(dB) || math.IsInf(dB, 0) {
		return fmt.Errorf("noise gate threshold must be finite: %f", dB)
	}
	g.thresholdDB = dB
	return nil
}

// SetAttack sets the opening speed in milliseconds.
// Range: 0.1 to 1000 ms.
func (g *NoiseGate) SetAttack(ms float64) error {
	if ms < minGateAttackMs || ms > maxGateAttackMs ||
		math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Errorf("noise gate attack must be in [%f, %f]: %f",
			minGateAttackMs, maxGateAttackMs, ms)
	}
	g.attackMs = ms
	g.updateTimeConstants()
	return nil
}

// SetRelease sets the closing speed in milliseconds.
// Range: 1 to 5000 ms.
func (g *NoiseGate) SetRelease(ms float64) error {
	if ms < minGateReleaseMs || ms > maxGateReleaseMs ||
		math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Errorf("noise gate release must be in [%f, %f]: %f",
			minGateReleaseMs, maxGateReleaseMs, ms)
	}
	g.releaseMs = ms
	g.updateTimeConstants()
	return nil
}

// SetSampleRate updates sample rate and recalculates time constants.
func (g *NoiseGate) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("noise gate sample rate must be positive and finite: %f", sampleRate)
	}
	g.sampleRate = sampleRate
	g.updateTimeConstants()
	return nil
}

// Threshold returns the current threshold in dB.
func (g *NoiseGate) Threshold() float64 { return g.thresholdDB }

// Attack returns the current attack time in milliseconds.
func (g *NoiseGate) Attack() float64 { return g.attackMs }

// Release returns the current release time in milliseconds.
func (g *NoiseGate) Release() float64 { return g.releaseMs }

// SampleRate returns the current sample rate in Hz.
func (g *NoiseGate) SampleRate() float64 { return g.sampleRate }

// Envelope returns the current detector envelope level (linear).
func (g *NoiseGate) Envelope() float64 { return g.env.value }

// ProcessSample processes one sample through the gate.
func (g *NoiseGate) ProcessSample(input float64) float64 {
	env := g.env.process(math.Abs(input))

	target := 0.0
	if levelDB(env) > g.thresholdDB {
		target = 1.0
	}

	return input * g.gain.process(target)
}

// ProcessInPlace applies the gate to buf in place.
func (g *NoiseGate) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = g.ProcessSample(buf[i])
	}
}

// Reset clears the envelope follower and closes the gate.
func (g *NoiseGate) Reset() {
	g.env.reset()
	g.gain.reset()
}

func (g *NoiseGate) updateTimeConstants() {
	attackSec := g.attackMs * 0.001
	releaseSec := g.releaseMs * 0.001
	g.env.setTimes(attackSec, releaseSec, g.sampleRate)
	g.gain.setTimes(attackSec, releaseSec, g.sampleRate)
}
