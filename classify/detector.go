// Package classify derives genre labels from the spectral shape of an
// incoming mono signal. It is a deliberately lightweight, rule-based stand-in
// for a trained genre model: it produces the same five labels the effect
// chain understands and smooths them with a short majority vote, so a driver
// can wire it straight into the chain's genre input.
package classify

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/sirupsen/logrus"

	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/effectchain"
	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/spectrum"
	"github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/window"
	"github.com/vacasaiyan/genre-adaptive-guitar-effects/stats/frequency"
	timestats "github.com/vacasaiyan/genre-adaptive-guitar-effects/stats/time"
)

const (
	defaultFrameSize = 2048
	defaultSmoothing = 3

	// Frames below silenceRMS carry no usable information and cast no vote.
	silenceRMS = 1e-4
	// Frames below quietRMS read as sparse, quiet playing.
	quietRMS = 0.05
	// Flatness at or above noisyFlatness reads as dense/driven material,
	// below as tonal playing. Plucked and sung material measures well
	// under 0.01, broadband material well over 0.15.
	noisyFlatness = 0.1
	// Centroid split points in Hz for the noisy and tonal branches.
	brightHz = 3000.0
	warmHz   = 800.0
)

// Features holds the per-frame measurements the genre rules operate on.
type Features struct {
	RMS      float64
	Centroid float64
	Spread   float64
	Flatness float64
	Rolloff  float64
}

// Detector accumulates samples into fixed-size analysis frames and derives a
// smoothed genre label from each completed frame.
//
// Feed must be called from a single goroutine; Genre, LastFeatures, and
// Frames are safe to call concurrently with Feed.
type Detector struct {
	sampleRate float64
	smoothing  int
	log        *logrus.Logger
	onChange   func(genre string)

	frame []float64
	fill  int

	win    []float64
	fftIn  []complex128
	fftOut []complex128
	plan   *algofft.Plan[complex128]
	re     []float64
	im     []float64
	mag    []float64

	frames atomic.Uint64

	mu          sync.Mutex
	history     []string
	current     string
	last        Features
	hasFeatures bool
}

// Option configures a Detector.
type Option func(*Detector)

// WithFrameSize sets the analysis frame length in samples. Unsupported sizes
// fall back to the default.
func WithFrameSize(n int) Option {
	return func(d *Detector) {
		switch n {
		case 256, 512, 1024, 2048, 4096, 8192:
			d.frame = make([]float64, n)
		default:
			d.frame = make([]float64, defaultFrameSize)
		}
	}
}

// WithSmoothing sets the number of recent frame picks the majority vote runs
// over. Values below 1 are coerced to 1.
func WithSmoothing(n int) Option {
	return func(d *Detector) {
		if n < 1 {
			n = 1
		}
		d.smoothing = n
	}
}

// WithLogger sets the logger used for genre-change events.
func WithLogger(log *logrus.Logger) Option {
	return func(d *Detector) {
		if log != nil {
			d.log = log
		}
	}
}

// WithOnChange registers a callback invoked whenever the smoothed genre label
// changes. The callback runs on the goroutine calling Feed.
func WithOnChange(fn func(genre string)) Option {
	return func(d *Detector) {
		d.onChange = fn
	}
}

// NewDetector creates a detector for the given sample rate.
func NewDetector(sampleRate float64, opts ...Option) (*Detector, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("classify: sample rate must be positive and finite: %f", sampleRate)
	}

	d := &Detector{
		sampleRate: sampleRate,
		smoothing:  defaultSmoothing,
		log:        logrus.StandardLogger(),
		frame:      make([]float64, defaultFrameSize),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	size := len(d.frame)
	d.win = window.Generate(window.TypeHann, size, window.WithPeriodic())
	if len(d.win) != size {
		return nil, fmt.Errorf("classify: invalid analysis window size: %d", size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("classify: init fft plan: %w", err)
	}
	d.plan = plan

	bins := size/2 + 1
	d.fftIn = make([]complex128, size)
	d.fftOut = make([]complex128, size)
	d.re = make([]float64, bins)
	d.im = make([]float64, bins)
	d.mag = make([]float64, bins)

	return d, nil
}

// Feed adds samples to the pending analysis frame. Completed frames are
// analyzed immediately; leftover samples start the next frame. Frames do not
// overlap.
func (d *Detector) Feed(block []float64) {
	for len(block) > 0 {
		n := copy(d.frame[d.fill:], block)
		d.fill += n
		block = block[n:]

		if d.fill == len(d.frame) {
			d.fill = 0
			d.analyzeFrame()
		}
	}
}

// Genre returns the current smoothed genre label, or the empty string if no
// voiced frame has been analyzed yet.
func (d *Detector) Genre() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// LastFeatures returns the measurements of the most recently analyzed frame.
// The second return is false until the first frame completes.
func (d *Detector) LastFeatures() (Features, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last, d.hasFeatures
}

// Frames returns the number of completed analysis frames.
func (d *Detector) Frames() uint64 {
	return d.frames.Load()
}

// FrameSize returns the analysis frame length in samples.
func (d *Detector) FrameSize() int {
	return len(d.frame)
}

// Reset discards the pending frame, the vote history, and the current label.
func (d *Detector) Reset() {
	d.fill = 0

	d.mu.Lock()
	d.history = d.history[:0]
	d.current = ""
	d.last = Features{}
	d.hasFeatures = false
	d.mu.Unlock()
}

func (d *Detector) analyzeFrame() {
	size := len(d.frame)
	for i, s := range d.frame {
		d.fftIn[i] = complex(s*d.win[i], 0)
	}

	if err := d.plan.Forward(d.fftOut, d.fftIn); err != nil {
		d.log.WithError(err).Warn("classify: fft failed, dropping frame")
		return
	}

	bins := size/2 + 1
	for i := 0; i < bins; i++ {
		d.re[i] = real(d.fftOut[i])
		d.im[i] = imag(d.fftOut[i])
	}
	spectrum.MagnitudeFromParts(d.mag, d.re, d.im)

	s := frequency.Calculate(d.mag, d.sampleRate)
	feats := Features{
		RMS:      timestats.RMS(d.frame),
		Centroid: s.Centroid,
		Spread:   s.Spread,
		Flatness: s.Flatness,
		Rolloff:  s.Rolloff,
	}

	d.frames.Add(1)

	d.mu.Lock()
	d.last = feats
	d.hasFeatures = true

	if feats.RMS < silenceRMS {
		// Hold the current label through silence.
		d.mu.Unlock()
		return
	}

	pick := pickGenre(feats)
	d.history = append(d.history, pick)
	if len(d.history) > d.smoothing {
		d.history = d.history[1:]
	}

	smoothed := d.smoothedLocked()
	changed := smoothed != d.current
	d.current = smoothed
	cb := d.onChange
	d.mu.Unlock()

	if changed {
		d.log.WithFields(logrus.Fields{
			"genre":    smoothed,
			"centroid": feats.Centroid,
			"flatness": feats.Flatness,
		}).Info("detected genre change")

		if cb != nil {
			cb(smoothed)
		}
	}
}

// smoothedLocked returns the majority label over the vote history. Until the
// history is full the latest pick wins; ties break in the canonical profile
// order. Callers must hold d.mu.
func (d *Detector) smoothedLocked() string {
	if len(d.history) < d.smoothing {
		return d.history[len(d.history)-1]
	}

	counts := make(map[string]int, len(d.history))
	for _, g := range d.history {
		counts[g]++
	}

	best := ""
	bestCount := 0
	for _, g := range effectchain.Genres() {
		if counts[g] > bestCount {
			best = g
			bestCount = counts[g]
		}
	}
	return best
}

// pickGenre maps one frame's measurements to a profile label.
//
// Quiet playing reads as Clean regardless of shape. Dense spectra (high
// flatness) split on brightness into Metal or Rock/Country; tonal spectra
// split on warmth into Jazz/Blues or Pop.
func pickGenre(f Features) string {
	if f.RMS < quietRMS {
		return effectchain.GenreClean
	}

	if f.Flatness >= noisyFlatness {
		if f.Centroid >= brightHz {
			return effectchain.GenreMetal
		}
		return effectchain.GenreRockCountry
	}

	if f.Centroid < warmHz {
		return effectchain.GenreJazzBlues
	}
	return effectchain.GenrePop
}
