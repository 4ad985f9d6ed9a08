package effectchain

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/effects"
	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/effects/dynamics"
	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/effects/modulation"
	"github.com/vacasaiyan/genre-adaptive-guitar-effects/internal/vecmath"
)

type chainConfig struct {
	initialGenre string
	log          *logrus.Logger
}

// Option configures optional Chain behavior.
type Option func(*chainConfig)

// WithInitialGenre selects the profile applied when the chain is created.
func WithInitialGenre(name string) Option {
	return func(cfg *chainConfig) {
		cfg.initialGenre = name
	}
}

// WithLogger routes chain diagnostics to log instead of the standard logger.
func WithLogger(log *logrus.Logger) Option {
	return func(cfg *chainConfig) {
		cfg.log = log
	}
}

// Chain runs an ordered set of effect stages over mono sample blocks and
// swaps the whole set atomically when the genre changes.
//
// Process is meant for a single audio goroutine; SetGenre may be called
// from any goroutine. A switch requested mid-block takes effect at the
// next Process call, never within a block.
type Chain struct {
	sampleRate float64
	log        *logrus.Logger
	units      map[string]Unit

	// Control side, guarded by mu. The audio thread never takes this lock.
	mu         sync.Mutex
	genre      string
	outputGain float64

	// Single-slot handoff cell. SetGenre publishes the full profile,
	// Process consumes it at the next block boundary. A newer switch
	// replaces an unconsumed older one wholesale.
	pending atomic.Pointer[Profile]

	// Audio side, touched only inside Process.
	active  []string
	gain    float64
	scratch []float64

	switches atomic.Uint64
	resets   atomic.Uint64
	bypasses atomic.Uint64
}

// New creates a chain for the given sample rate and applies the initial
// genre profile. Unknown initial genres fall back to DefaultGenre.
func New(sampleRate float64, opts ...Option) (*Chain, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("effectchain: sample rate must be positive, got %v", sampleRate)
	}

	cfg := chainConfig{
		initialGenre: DefaultGenre,
		log:          logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	units, err := newUnitPool(sampleRate)
	if err != nil {
		return nil, err
	}

	c := &Chain{
		sampleRate: sampleRate,
		log:        cfg.log,
		units:      units,
	}

	profile, ok := lookupProfile(cfg.initialGenre)
	if !ok {
		c.log.WithFields(logrus.Fields{
			"genre":    cfg.initialGenre,
			"fallback": DefaultGenre,
		}).Warn("unknown genre")

		profile, _ = lookupProfile(DefaultGenre)
	}

	if err := c.applyProfile(profile); err != nil {
		return nil, err
	}

	c.genre = profile.Name
	c.outputGain = profile.OutputGain

	return c, nil
}

// newUnitPool builds every stage the genre table can reference, all at
// the same sample rate. Units are created once and reconfigured on each
// switch; nothing is allocated on the audio thread.
func newUnitPool(sampleRate float64) (map[string]Unit, error) {
	distortion, err := effects.NewDistortion()
	if err != nil {
		return nil, fmt.Errorf("effectchain: create distortion: %w", err)
	}

	chorus, err := modulation.NewChorus(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create chorus: %w", err)
	}

	compressor, err := dynamics.NewCompressor(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create compressor: %w", err)
	}

	gate, err := dynamics.NewNoiseGate(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create noise gate: %w", err)
	}

	delay, err := effects.NewDelay(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create delay: %w", err)
	}

	reverb, err := effects.NewReverb(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create reverb: %w", err)
	}

	eq, err := effects.NewEQ(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create eq: %w", err)
	}

	eqPre, err := effects.NewEQ(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create pre eq: %w", err)
	}

	eqPost, err := effects.NewEQ(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create post eq: %w", err)
	}

	return map[string]Unit{
		RoleDistortion: &distortionUnit{fx: distortion},
		RoleChorus:     &chorusUnit{fx: chorus},
		RoleCompressor: &compressorUnit{fx: compressor},
		RoleNoiseGate:  &noiseGateUnit{fx: gate},
		RoleDelay:      &delayUnit{fx: delay},
		RoleReverb:     &reverbUnit{fx: reverb},
		RoleEQ:         &eqUnit{fx: eq},
		RoleEQPre:      &eqUnit{fx: eqPre},
		RoleEQPost:     &eqUnit{fx: eqPost},
	}, nil
}

// SetGenre requests a switch to the named genre's profile. Unknown names
// fall back to DefaultGenre. Requesting the already-active genre is a
// no-op. The switch itself happens at the next Process call.
func (c *Chain) SetGenre(name string) {
	profile, ok := lookupProfile(name)
	if !ok {
		c.log.WithFields(logrus.Fields{
			"genre":    name,
			"fallback": DefaultGenre,
		}).Warn("unknown genre")

		profile, _ = lookupProfile(DefaultGenre)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if profile.Name == c.genre {
		return
	}

	c.genre = profile.Name
	c.outputGain = profile.OutputGain
	c.pending.Store(profile)

	if len(profile.Stages) == 0 {
		c.log.WithField("genre", profile.Name).Info("switched to bypass chain")
		return
	}

	c.log.WithFields(logrus.Fields{
		"genre":  profile.Name,
		"stages": strings.Join(profile.Stages, " -> "),
	}).Info("switched effect chain")
}

// Process runs the active chain over block in place. An empty block is
// a no-op. A pending genre switch is applied first, so the whole block
// is shaped by exactly one profile.
func (c *Chain) Process(block []float64) {
	if len(block) == 0 {
		return
	}

	// The audio thread never logs; the initial chain.New call surfaces
	// configure errors, and the built-in profiles clamp every value into
	// the setters' ranges, so a failure here means a test swapped in a
	// broken unit. The switch still applies so the chain keeps running.
	if p := c.pending.Swap(nil); p != nil {
		_ = c.applyProfile(p)
		c.switches.Add(1)
	}

	if cap(c.scratch) < len(block) {
		c.scratch = make([]float64, len(block))
	}

	for _, role := range c.active {
		unit := c.units[role]
		if unit == nil {
			continue
		}

		c.runStage(unit, block)
	}

	vecmath.ScaleBlockInPlace(block, c.gain)
}

// applyProfile pushes the profile's parameters into every referenced
// unit and clears unit state so no echoes or envelopes leak across the
// switch. A configure failure on one stage does not stop the rest; the
// first error is returned after all stages are handled.
func (c *Chain) applyProfile(p *Profile) error {
	ctx := Context{SampleRate: c.sampleRate}

	var firstErr error

	for _, role := range p.Stages {
		unit := c.units[role]
		if unit == nil {
			continue
		}

		if err := unit.Configure(ctx, p.Params[role]); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("effectchain: profile %s: %w", p.Name, err)
		}

		unit.Reset()
		c.resets.Add(1)
	}

	c.active = p.Stages
	c.gain = p.OutputGain

	return firstErr
}

// runStage processes one stage, restoring the stage's input and carrying
// on with the rest of the chain if the unit panics. The bypass counter is
// the only record; logging from the audio thread would trade a corrupted
// block for a stalled one.
func (c *Chain) runStage(unit Unit, block []float64) {
	saved := c.scratch[:len(block)]
	copy(saved, block)

	defer func() {
		if recover() != nil {
			copy(block, saved)
			c.bypasses.Add(1)
		}
	}()

	unit.Process(block)
}

// Genre reports the most recently requested genre, which Process may not
// have applied yet.
func (c *Chain) Genre() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.genre
}

// OutputGain reports the output gain of the most recently requested genre.
func (c *Chain) OutputGain() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.outputGain
}

// Stages reports the stage order of the most recently requested genre.
func (c *Chain) Stages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	profile, ok := lookupProfile(c.genre)
	if !ok {
		return nil
	}

	stages := make([]string, len(profile.Stages))
	copy(stages, profile.Stages)

	return stages
}

// SampleRate reports the rate the unit pool was built for.
func (c *Chain) SampleRate() float64 {
	return c.sampleRate
}

// SwitchCount reports how many genre switches Process has applied.
func (c *Chain) SwitchCount() uint64 {
	return c.switches.Load()
}

// ResetCount reports how many per-unit state resets profile applications
// have performed, including the initial profile at creation.
func (c *Chain) ResetCount() uint64 {
	return c.resets.Load()
}

// BypassCount reports how many stage invocations were bypassed after a
// panic.
func (c *Chain) BypassCount() uint64 {
	return c.bypasses.Load()
}
