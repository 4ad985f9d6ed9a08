package effects

import (
	"fmt"
	"math"
)

const (
	defaultDelayTimeSeconds = 0.3
	defaultDelayFeedback    = 0.4
	defaultDelayMix         = 0.3
	maxDelayTimeSeconds     = 2.0
	minDelayTimeSeconds     = 0.001
	maxDelayFeedback        = 0.95
)

// Delay is a feedback delay with dry/wet mix. The circular buffer holds
// two seconds of audio at the configured sample rate; the read tap is
// clamped to the buffer bounds, so out-of-range delay times degrade
// gracefully instead of failing.
type Delay struct {
	sampleRate   float64
	delaySeconds float64
	feedback     float64
	mix          float64

	delaySamples int
	buffer       []float64
	write        int
}

// NewDelay creates a delay with practical defaults (300 ms, 0.4
// feedback, 0.3 mix).
func NewDelay(sampleRate float64) (*Delay, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay sample rate must be > 0 and finite: %f", sampleRate)
	}

	d := &Delay{
		sampleRate:   sampleRate,
		delaySeconds: defaultDelayTimeSeconds,
		feedback:     defaultDelayFeedback,
		mix:          defaultDelayMix,
		buffer:       make([]float64, int(maxDelayTimeSeconds*sampleRate)),
	}
	d.updateDelaySamples()

	return d, nil
}

// SetSampleRate updates sample rate. The buffer is resized for two
// seconds at the new rate and any delay history is discarded.
func (d *Delay) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("delay sample rate must be > 0 and finite: %f", sampleRate)
	}

	d.sampleRate = sampleRate
	d.buffer = make([]float64, int(maxDelayTimeSeconds*sampleRate))
	d.write = 0
	d.updateDelaySamples()

	return nil
}

// SetTime sets delay time in seconds, in [0.001, 2].
func (d *Delay) SetTime(seconds float64) error {
	if seconds < minDelayTimeSeconds || seconds > maxDelayTimeSeconds ||
		math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("delay time must be in [%g, %g]: %f",
			minDelayTimeSeconds, maxDelayTimeSeconds, seconds)
	}

	d.delaySeconds = seconds
	d.updateDelaySamples()

	return nil
}

// SetFeedback sets feedback amount in [0, 0.95].
func (d *Delay) SetFeedback(feedback float64) error {
	if feedback < 0 || feedback > maxDelayFeedback || math.IsNaN(feedback) || math.IsInf(feedback, 0) {
		return fmt.Errorf("delay feedback must be in [0, %g]: %f", maxDelayFeedback, feedback)
	}

	d.feedback = feedback

	return nil
}

// SetMix sets wet amount in [0, 1].
func (d *Delay) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) || math.IsInf(mix, 0) {
		return fmt.Errorf("delay mix must be in [0, 1]: %f", mix)
	}

	d.mix = mix

	return nil
}

// Reset clears the delay buffer and write cursor.
func (d *Delay) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}

	d.write = 0
}

// ProcessSample processes one sample: the delayed tap is read first, the
// feedback sum is written at the cursor, then the cursor advances.
func (d *Delay) ProcessSample(input float64) float64 {
	read := d.write - d.delaySamples
	if read < 0 {
		read += len(d.buffer)
	}

	delayed := d.buffer[read]

	d.buffer[d.write] = input + delayed*d.feedback

	d.write++
	if d.write >= len(d.buffer) {
		d.write = 0
	}

	return (1-d.mix)*input + d.mix*delayed
}

// ProcessInPlace applies delay to buf in place.
func (d *Delay) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = d.ProcessSample(buf[i])
	}
}

// SampleRate returns sample rate in Hz.
func (d *Delay) SampleRate() float64 { return d.sampleRate }

// Time returns delay time in seconds.
func (d *Delay) Time() float64 { return d.delaySeconds }

// Feedback returns feedback amount in [0, 0.95].
func (d *Delay) Feedback() float64 { return d.feedback }

// Mix returns wet amount in [0, 1].
func (d *Delay) Mix() float64 { return d.mix }

// DelaySamples returns the active delay length in samples.
func (d *Delay) DelaySamples() int { return d.delaySamples }

func (d *Delay) updateDelaySamples() {
	samples := int(d.delaySeconds * d.sampleRate)
	d.delaySamples = int(clamp(float64(samples), 1, float64(len(d.buffer)-1)))
}
