package effectchain

import (
	"fmt"

	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/core"
	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/effects/dynamics"
)

type compressorUnit struct {
	fx *dynamics.Compressor
}

// Profile times are seconds; the dynamics setters take milliseconds.
func (u *compressorUnit) Configure(_ Context, p Params) error {
	err := u.fx.SetThreshold(core.Clamp(p.GetNum("threshold", -20), -60, 0))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor threshold: %w", err)
	}

	err = u.fx.SetRatio(core.Clamp(p.GetNum("ratio", 4), 1, 100))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor ratio: %w", err)
	}

	err = u.fx.SetAttack(core.Clamp(p.GetNum("attack", 0.005)*1000, 0.1, 1000))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor attack: %w", err)
	}

	err = u.fx.SetRelease(core.Clamp(p.GetNum("release", 0.1)*1000, 1, 5000))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor release: %w", err)
	}

	err = u.fx.SetMakeupGain(core.Clamp(p.GetNum("makeupGain", 1), 0, 10))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor makeup gain: %w", err)
	}

	return nil
}

func (u *compressorUnit) Process(block []float64) {
	u.fx.ProcessInPlace(block)
}

func (u *compressorUnit) Reset() {
	u.fx.Reset()
}

type noiseGateUnit struct {
	fx *dynamics.NoiseGate
}

func (u *noiseGateUnit) Configure(_ Context, p Params) error {
	err := u.fx.SetThreshold(core.Clamp(p.GetNum("threshold", -40), -80, 0))
	if err != nil {
		return fmt.Errorf("effectchain: configure noise gate threshold: %w", err)
	}

	err = u.fx.SetAttack(core.Clamp(p.GetNum("attack", 0.001)*1000, 0.1, 1000))
	if err != nil {
		return fmt.Errorf("effectchain: configure noise gate attack: %w", err)
	}

	err = u.fx.SetRelease(core.Clamp(p.GetNum("release", 0.05)*1000, 1, 5000))
	if err != nil {
		return fmt.Errorf("effectchain: configure noise gate release: %w", err)
	}

	return nil
}

func (u *noiseGateUnit) Process(block []float64) {
	u.fx.ProcessInPlace(block)
}

func (u *noiseGateUnit) Reset() {
	u.fx.Reset()
}
