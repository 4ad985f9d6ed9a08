package dynamics

import "math"

// envelopeFloor keeps the dB conversion finite when a follower sits at zero.
const envelopeFloor = 1e-10

// follower is a one-pole attack/release smoother: it moves toward the
// target with the attack coefficient when rising and the release
// coefficient when falling. The compressor's level detector and both
// stages of the noise gate share this shape.
type follower struct {
	attackCoeff  float64
	releaseCoeff float64
	value        float64
}

// setTimes derives the smoothing coefficients exp(-1/(tau*sr)) from attack
// and release time constants in seconds. Callers validate the times; a
// non-positive time would blow up the exponent.
func (f *follower) setTimes(attackSeconds, releaseSeconds, sampleRate float64) {
	f.attackCoeff = math.Exp(-1.0 / (attackSeconds * sampleRate))
	f.releaseCoeff = math.Exp(-1.0 / (releaseSeconds * sampleRate))
}

func (f *follower) process(target float64) float64 {
	if target > f.value {
		f.value = f.attackCoeff*f.value + (1.0-f.attackCoeff)*target
	} else {
		f.value = f.releaseCoeff*f.value + (1.0-f.releaseCoeff)*target
	}

	return f.value
}

func (f *follower) reset() {
	f.value = 0
}

// levelDB converts a linear level to decibels with the envelopeFloor
// offset, mapping zero to a large negative number instead of -Inf.
func levelDB(level float64) float64 {
	return 20 * mathLog10(level+envelopeFloor)
}
