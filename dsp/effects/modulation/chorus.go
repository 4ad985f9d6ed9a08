package modulation

import (
	"fmt"
	"math"
)

const (
	defaultChorusRateHz       = 1.5
	defaultChorusDepthSeconds = 0.003
	defaultChorusMix          = 0.5

	// The delay line holds 50 ms; modulation depth cannot exceed it.
	chorusMaxDelaySeconds = 0.05
)

// Chorus is a single-voice modulated-delay chorus. A sinusoidal LFO
// sweeps the read tap through the delay line:
//
//	d(t) = depth * 0.5 * (1 + sin(2π·phase))
//
// with the tap quantized to whole samples, which adds a subtle grit
// that suits electric guitar. Depth is in seconds.
type Chorus struct {
	sampleRate   float64
	rateHz       float64
	depthSeconds float64
	mix          float64

	lfoPhase float64

	buffer []float64
	write  int
}

// NewChorus creates a chorus with musical defaults (1.5 Hz, 3 ms
// depth, equal mix).
func NewChorus(sampleRate float64) (*Chorus, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("chorus sample rate must be > 0 and finite: %f", sampleRate)
	}

	return &Chorus{
		sampleRate:   sampleRate,
		rateHz:       defaultChorusRateHz,
		depthSeconds: defaultChorusDepthSeconds,
		mix:          defaultChorusMix,
		buffer:       make([]float64, chorusBufferSize(sampleRate)),
	}, nil
}

func chorusBufferSize(sampleRate float64) int {
	size := int(chorusMaxDelaySeconds * sampleRate)
	if size < 1 {
		size = 1
	}

	return size
}

// SetSampleRate updates sample rate. The delay line is resized for
// 50 ms at the new rate and its history is discarded.
func (c *Chorus) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("chorus sample rate must be > 0 and finite: %f", sampleRate)
	}

	c.sampleRate = sampleRate
	c.buffer = make([]float64, chorusBufferSize(sampleRate))
	c.write = 0

	return nil
}

// SetRate updates LFO rate in Hz.
func (c *Chorus) SetRate(rateHz float64) error {
	if rateHz <= 0 || math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
		return fmt.Errorf("chorus rate must be > 0 and finite: %f", rateHz)
	}

	c.rateHz = rateHz

	return nil
}

// SetDepth updates modulation depth in seconds, up to the 50 ms line.
func (c *Chorus) SetDepth(depth float64) error {
	if depth < 0 || depth > chorusMaxDelaySeconds || math.IsNaN(depth) || math.IsInf(depth, 0) {
		return fmt.Errorf("chorus depth must be in [0, %g]: %f", chorusMaxDelaySeconds, depth)
	}

	c.depthSeconds = depth

	return nil
}

// SetMix updates wet amount in [0, 1].
func (c *Chorus) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) || math.IsInf(mix, 0) {
		return fmt.Errorf("chorus mix must be in [0, 1]: %f", mix)
	}

	c.mix = mix

	return nil
}

// Reset clears the delay line and modulation phase.
func (c *Chorus) Reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}

	c.write = 0
	c.lfoPhase = 0
}

// ProcessSample processes one sample. The input lands in the line
// before the tap is read, so a zero delay returns the input itself.
func (c *Chorus) ProcessSample(input float64) float64 {
	c.buffer[c.write] = input

	lfo := math.Sin(2 * math.Pi * c.lfoPhase)

	c.lfoPhase += c.rateHz / c.sampleRate
	if c.lfoPhase >= 1 {
		c.lfoPhase -= 1
	}

	delay := int(c.depthSeconds * c.sampleRate * (1 + lfo) / 2)
	if delay < 0 {
		delay = 0
	}

	if delay > len(c.buffer)-1 {
		delay = len(c.buffer) - 1
	}

	read := c.write - delay
	if read < 0 {
		read += len(c.buffer)
	}

	delayed := c.buffer[read]

	c.write++
	if c.write >= len(c.buffer) {
		c.write = 0
	}

	return c.mix*delayed + (1-c.mix)*input
}

// ProcessInPlace applies chorus to buf in place.
func (c *Chorus) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// SampleRate returns sample rate in Hz.
func (c *Chorus) SampleRate() float64 { return c.sampleRate }

// Rate returns LFO rate in Hz.
func (c *Chorus) Rate() float64 { return c.rateHz }

// Depth returns modulation depth in seconds.
func (c *Chorus) Depth() float64 { return c.depthSeconds }

// Mix returns wet amount in [0, 1].
func (c *Chorus) Mix() float64 { return c.mix }
