package effectchain

import (
	"io"

	"github.com/sirupsen/logrus"
)

// stubUnit is a minimal Unit implementation for testing.
type stubUnit struct {
	configureErr   error
	configureCalls int
	processCalls   int
	resetCalls     int
	lastCtx        Context
	lastParams     Params
}

func (s *stubUnit) Configure(ctx Context, params Params) error {
	s.configureCalls++
	s.lastCtx = ctx
	s.lastParams = params

	return s.configureErr
}

func (s *stubUnit) Process(_ []float64) {
	s.processCalls++
}

func (s *stubUnit) Reset() {
	s.resetCalls++
}

// gainUnit multiplies every sample by a fixed gain.
type gainUnit struct {
	gain float64
}

func (g *gainUnit) Configure(_ Context, _ Params) error {
	return nil
}

func (g *gainUnit) Process(block []float64) {
	for i := range block {
		block[i] *= g.gain
	}
}

func (g *gainUnit) Reset() {}

// panicUnit panics on every Process call.
type panicUnit struct {
	configureCalls int
	resetCalls     int
}

func (p *panicUnit) Configure(_ Context, _ Params) error {
	p.configureCalls++

	return nil
}

func (p *panicUnit) Process(_ []float64) {
	panic("stage blew up")
}

func (p *panicUnit) Reset() {
	p.resetCalls++
}

// testLogger returns a logger that swallows all output.
func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}
