package effectchain

import (
	"fmt"

	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/core"
	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/effects/modulation"
)

type chorusUnit struct {
	fx *modulation.Chorus
}

func (u *chorusUnit) Configure(_ Context, p Params) error {
	err := u.fx.SetRate(core.Clamp(p.GetNum("rate", 1.5), 0.05, 5))
	if err != nil {
		return fmt.Errorf("effectchain: configure chorus rate: %w", err)
	}

	err = u.fx.SetDepth(core.Clamp(p.GetNum("depth", 0.003), 0, 0.05))
	if err != nil {
		return fmt.Errorf("effectchain: configure chorus depth: %w", err)
	}

	err = u.fx.SetMix(core.Clamp(p.GetNum("mix", 0.5), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure chorus mix: %w", err)
	}

	return nil
}

func (u *chorusUnit) Process(block []float64) {
	u.fx.ProcessInPlace(block)
}

func (u *chorusUnit) Reset() {
	u.fx.Reset()
}
