package effectchain

import (
	"fmt"

	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/core"
	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/effects"
)

type distortionUnit struct {
	fx *effects.Distortion
}

func (u *distortionUnit) Configure(_ Context, p Params) error {
	err := u.fx.SetMode(normalizeDistortionMode(p.GetStr("mode", "tanh")))
	if err != nil {
		return fmt.Errorf("effectchain: configure distortion mode: %w", err)
	}

	err = u.fx.SetGain(core.Clamp(p.GetNum("gain", 5), 0.01, 100))
	if err != nil {
		return fmt.Errorf("effectchain: configure distortion gain: %w", err)
	}

	err = u.fx.SetMix(core.Clamp(p.GetNum("mix", 1), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure distortion mix: %w", err)
	}

	return nil
}

func (u *distortionUnit) Process(block []float64) {
	u.fx.ProcessInPlace(block)
}

func (u *distortionUnit) Reset() {
	u.fx.Reset()
}

// normalizeDistortionMode maps a profile mode string to a shaper mode,
// falling back to tanh for anything unrecognized.
func normalizeDistortionMode(raw string) effects.DistortionMode {
	mode, err := effects.ParseDistortionMode(raw)
	if err != nil {
		return effects.DistortionModeTanh
	}

	return mode
}

type delayUnit struct {
	fx *effects.Delay
}

func (u *delayUnit) Configure(_ Context, p Params) error {
	err := u.fx.SetTime(core.Clamp(p.GetNum("delayTime", 0.3), 0.001, 2))
	if err != nil {
		return fmt.Errorf("effectchain: configure delay time: %w", err)
	}

	err = u.fx.SetFeedback(core.Clamp(p.GetNum("feedback", 0.4), 0, 0.95))
	if err != nil {
		return fmt.Errorf("effectchain: configure delay feedback: %w", err)
	}

	err = u.fx.SetMix(core.Clamp(p.GetNum("mix", 0.3), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure delay mix: %w", err)
	}

	return nil
}

func (u *delayUnit) Process(block []float64) {
	u.fx.ProcessInPlace(block)
}

func (u *delayUnit) Reset() {
	u.fx.Reset()
}

type reverbUnit struct {
	fx *effects.Reverb
}

func (u *reverbUnit) Configure(_ Context, p Params) error {
	err := u.fx.SetRoomSize(core.Clamp(p.GetNum("roomSize", 0.5), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure reverb room size: %w", err)
	}

	err = u.fx.SetDamping(core.Clamp(p.GetNum("damping", 0.5), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure reverb damping: %w", err)
	}

	err = u.fx.SetMix(core.Clamp(p.GetNum("mix", 0.3), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure reverb mix: %w", err)
	}

	return nil
}

func (u *reverbUnit) Process(block []float64) {
	u.fx.ProcessInPlace(block)
}

func (u *reverbUnit) Reset() {
	u.fx.Reset()
}

type eqUnit struct {
	fx *effects.EQ
}

// Configure may run at a block boundary on the audio thread, so an
// unknown preset degrades to flat silently instead of logging.
func (u *eqUnit) Configure(_ Context, p Params) error {
	preset, _ := effects.ParseEQPreset(p.GetStr("preset", effects.EQPresetFlat))
	u.fx.SetPreset(preset)

	return nil
}

func (u *eqUnit) Process(block []float64) {
	u.fx.ProcessInPlace(block)
}

func (u *eqUnit) Reset() {
	u.fx.Reset()
}
