package effects

import (
	"fmt"
	"math"
)

const (
	reverbNumCombs     = 8
	reverbNumAllpasses = 4

	// Comb feedback derived from room size: 0.84 + roomSize*0.1.
	reverbBaseFeedback     = 0.84
	reverbRoomSizeFeedback = 0.1

	reverbAllpassCoeff = 0.5

	// Delay tunings are calibrated for 44.1 kHz and scaled
	// proportionally to the configured sample rate.
	reverbTuningRate = 44100.0

	defaultReverbRoomSize = 0.5
	defaultReverbDamping  = 0.5
	defaultReverbMix      = 0.3
)

var reverbCombTunings = [reverbNumCombs]int{1557, 1617, 1491, 1422, 1277, 1356, 1188, 1116}

var reverbAllpassTunings = [reverbNumAllpasses]int{225, 556, 441, 341}

// Reverb is a Schroeder reverb: eight parallel feedback combs with
// damping feed four serial allpass diffusers. Comb feedback is shared
// and derived from the room size; damping blends high-frequency loss
// into the comb loop.
type Reverb struct {
	sampleRate float64
	roomSize   float64
	damping    float64
	mix        float64

	combs     [reverbNumCombs]reverbComb
	allpasses [reverbNumAllpasses]reverbAllpass
}

type reverbComb struct {
	feedback float64
	damp     float64
	buffer   []float64
	index    int
}

func newReverbComb(size int) reverbComb {
	return reverbComb{
		buffer: make([]float64, size),
	}
}

func (c *reverbComb) process(input float64) float64 {
	delayed := c.buffer[c.index]

	// Memoryless damping: blend the raw tap with its feedback-attenuated
	// version to mimic high-frequency absorption.
	filtered := delayed*(1-c.damp) + c.feedback*delayed*c.damp

	next := input + filtered*c.feedback
	if math.Abs(next) < 1e-23 {
		next = 0
	}
	c.buffer[c.index] = next

	c.index++
	if c.index >= len(c.buffer) {
		c.index = 0
	}

	return delayed
}

func (c *reverbComb) reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
	c.index = 0
}

type reverbAllpass struct {
	buffer []float64
	index  int
}

func newReverbAllpass(size int) reverbAllpass {
	return reverbAllpass{
		buffer: make([]float64, size),
	}
}

func (a *reverbAllpass) process(input float64) float64 {
	delayed := a.buffer[a.index]
	a.buffer[a.index] = input + delayed*reverbAllpassCoeff

	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}

	return delayed - input*reverbAllpassCoeff
}

func (a *reverbAllpass) reset() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
	a.index = 0
}

// NewReverb constructs a reverb with delay lines scaled to the sample
// rate and the default room size, damping, and mix.
func NewReverb(sampleRate float64) (*Reverb, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("reverb sample rate must be > 0 and finite: %f", sampleRate)
	}

	r := &Reverb{
		sampleRate: sampleRate,
		roomSize:   defaultReverbRoomSize,
		damping:    defaultReverbDamping,
		mix:        defaultReverbMix,
	}

	for i, tuning := range reverbCombTunings {
		r.combs[i] = newReverbComb(scaledDelay(tuning, sampleRate))
	}

	for i, tuning := range reverbAllpassTunings {
		r.allpasses[i] = newReverbAllpass(scaledDelay(tuning, sampleRate))
	}

	r.updateFeedback()
	r.updateDamping()

	return r, nil
}

// scaledDelay converts a 44.1 kHz tuning to the target rate. Very low
// sample rates are floored at one sample to keep the lines non-empty.
func scaledDelay(tuning int, sampleRate float64) int {
	size := int(sampleRate * float64(tuning) / reverbTuningRate)
	if size < 1 {
		size = 1
	}

	return size
}

// SetRoomSize sets room size in [0, 1] and re-derives comb feedback.
func (r *Reverb) SetRoomSize(roomSize float64) error {
	if roomSize < 0 || roomSize > 1 || math.IsNaN(roomSize) || math.IsInf(roomSize, 0) {
		return fmt.Errorf("reverb room size must be in [0, 1]: %f", roomSize)
	}

	r.roomSize = roomSize
	r.updateFeedback()

	return nil
}

// SetDamping sets high-frequency damping in [0, 1].
func (r *Reverb) SetDamping(damping float64) error {
	if damping < 0 || damping > 1 || math.IsNaN(damping) || math.IsInf(damping, 0) {
		return fmt.Errorf("reverb damping must be in [0, 1]: %f", damping)
	}

	r.damping = damping
	r.updateDamping()

	return nil
}

// SetMix sets wet amount in [0, 1].
func (r *Reverb) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) || math.IsInf(mix, 0) {
		return fmt.Errorf("reverb mix must be in [0, 1]: %f", mix)
	}

	r.mix = mix

	return nil
}

// Reset clears all comb and allpass state.
func (r *Reverb) Reset() {
	for i := range r.combs {
		r.combs[i].reset()
	}

	for i := range r.allpasses {
		r.allpasses[i].reset()
	}
}

// ProcessSample processes one sample through the comb bank and the
// allpass chain.
func (r *Reverb) ProcessSample(input float64) float64 {
	var combSum float64
	for i := range r.combs {
		combSum += r.combs[i].process(input)
	}

	wet := combSum / reverbNumCombs
	for i := range r.allpasses {
		wet = r.allpasses[i].process(wet)
	}

	return (1-r.mix)*input + r.mix*wet
}

// ProcessInPlace applies reverb to buf in place.
func (r *Reverb) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = r.ProcessSample(buf[i])
	}
}

// SampleRate returns sample rate in Hz.
func (r *Reverb) SampleRate() float64 { return r.sampleRate }

// RoomSize returns room size in [0, 1].
func (r *Reverb) RoomSize() float64 { return r.roomSize }

// Damping returns damping in [0, 1].
func (r *Reverb) Damping() float64 { return r.damping }

// Mix returns wet amount in [0, 1].
func (r *Reverb) Mix() float64 { return r.mix }

func (r *Reverb) updateFeedback() {
	feedback := reverbBaseFeedback + r.roomSize*reverbRoomSizeFeedback
	for i := range r.combs {
		r.combs[i].feedback = feedback
	}
}

func (r *Reverb) updateDamping() {
	for i := range r.combs {
		r.combs[i].damp = r.damping
	}
}
