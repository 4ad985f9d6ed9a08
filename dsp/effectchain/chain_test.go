package effectchain

import (
	"errors"
	"math"
	"sync"
	"testing"
)

const testSampleRate = 44100.0

func newTestChain(t *testing.T, sampleRate float64, opts ...Option) *Chain {
	t.Helper()

	all := append([]Option{WithLogger(testLogger())}, opts...)

	c, err := New(sampleRate, all...)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", sampleRate, err)
	}

	return c
}

// testBlock returns a deterministic low-level signal.
func testBlock(n int) []float64 {
	block := make([]float64, n)
	for i := range block {
		block[i] = 0.5 * math.Sin(2*math.Pi*220*float64(i)/testSampleRate)
	}

	return block
}

func TestChainNewDefaults(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate)

	if got := c.Genre(); got != GenrePop {
		t.Errorf("expected initial genre %q, got %q", GenrePop, got)
	}

	if got := c.OutputGain(); got != 1.1 {
		t.Errorf("expected output gain 1.1, got %v", got)
	}

	wantStages := []string{RoleDelay, RoleEQ, RoleReverb}

	stages := c.Stages()
	if len(stages) != len(wantStages) {
		t.Fatalf("expected %d stages, got %d", len(wantStages), len(stages))
	}

	for i, role := range wantStages {
		if stages[i] != role {
			t.Errorf("stage %d: expected %q, got %q", i, role, stages[i])
		}
	}

	if got := c.SampleRate(); got != testSampleRate {
		t.Errorf("expected sample rate %v, got %v", testSampleRate, got)
	}

	if got := c.SwitchCount(); got != 0 {
		t.Errorf("expected 0 switches, got %d", got)
	}

	if got := c.ResetCount(); got != 3 {
		t.Errorf("expected 3 resets from the initial profile, got %d", got)
	}

	if got := c.BypassCount(); got != 0 {
		t.Errorf("expected 0 bypasses, got %d", got)
	}
}

func TestChainNewValidation(t *testing.T) {
	t.Parallel()

	for _, rate := range []float64{0, -44100, math.NaN(), math.Inf(1)} {
		if _, err := New(rate, WithLogger(testLogger())); err == nil {
			t.Errorf("New(%v) should fail", rate)
		}
	}
}

func TestChainNewInitialGenre(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate, WithInitialGenre(GenreMetal))

	if got := c.Genre(); got != GenreMetal {
		t.Errorf("expected genre %q, got %q", GenreMetal, got)
	}

	if got := len(c.Stages()); got != 6 {
		t.Errorf("expected 6 stages, got %d", got)
	}

	if got := c.OutputGain(); got != 0.1 {
		t.Errorf("expected output gain 0.1, got %v", got)
	}

	if got := c.ResetCount(); got != 6 {
		t.Errorf("expected 6 resets from the initial profile, got %d", got)
	}
}

func TestChainNewUnknownInitialGenre(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate, WithInitialGenre("Polka"))

	if got := c.Genre(); got != DefaultGenre {
		t.Errorf("expected fallback to %q, got %q", DefaultGenre, got)
	}
}

func TestChainSetGenreSameGenreIsNoOp(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate)

	c.SetGenre(GenrePop)
	c.SetGenre("pop")
	c.SetGenre(" POP ")
	c.Process(testBlock(64))

	if got := c.SwitchCount(); got != 0 {
		t.Errorf("re-selecting the active genre should not switch, got %d switches", got)
	}

	if got := c.ResetCount(); got != 3 {
		t.Errorf("re-selecting the active genre should not reset, got %d resets", got)
	}
}

func TestChainSetGenreUnknownFallsBack(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate, WithInitialGenre(GenreMetal))

	c.SetGenre("Polka")

	if got := c.Genre(); got != DefaultGenre {
		t.Errorf("expected fallback to %q, got %q", DefaultGenre, got)
	}

	c.Process(testBlock(64))

	if got := c.SwitchCount(); got != 1 {
		t.Errorf("expected 1 switch, got %d", got)
	}
}

func TestChainSwitchAppliesAtNextProcess(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate)

	c.SetGenre(GenreMetal)

	// The request is visible immediately, the reconfiguration is not.
	if got := c.Genre(); got != GenreMetal {
		t.Errorf("expected genre %q after request, got %q", GenreMetal, got)
	}

	if got := c.SwitchCount(); got != 0 {
		t.Errorf("switch should wait for Process, got %d switches", got)
	}

	if got := c.ResetCount(); got != 3 {
		t.Errorf("expected only the initial 3 resets, got %d", got)
	}

	c.Process(testBlock(64))

	if got := c.SwitchCount(); got != 1 {
		t.Errorf("expected 1 switch after Process, got %d", got)
	}

	if got := c.ResetCount(); got != 9 {
		t.Errorf("expected 3+6 resets after the switch, got %d", got)
	}
}

func TestChainSupersededSwitchAppliesLastOnly(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate)

	c.SetGenre(GenreMetal)
	c.SetGenre(GenreClean)

	block := []float64{1, 1, 1, 1}
	c.Process(block)

	if got := c.Genre(); got != GenreClean {
		t.Errorf("expected genre %q, got %q", GenreClean, got)
	}

	if got := c.SwitchCount(); got != 1 {
		t.Errorf("superseded request should apply once, got %d switches", got)
	}

	// Clean has no stages, so only the initial profile's resets remain.
	if got := c.ResetCount(); got != 3 {
		t.Errorf("expected 3 resets, got %d", got)
	}

	for i, v := range block {
		if v != 1.1 {
			t.Errorf("sample %d: expected pure 1.1 gain, got %v", i, v)
		}
	}
}

func TestChainCleanIsPureGain(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate, WithInitialGenre(GenreClean))

	block := []float64{0.5, -0.5, 0.25, 0}
	want := make([]float64, len(block))
	for i, v := range block {
		want[i] = v * 1.1
	}

	c.Process(block)

	for i := range block {
		if block[i] != want[i] {
			t.Errorf("sample %d: expected %v, got %v", i, want[i], block[i])
		}
	}
}

func TestChainProcessEmptyBlock(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate)

	c.SetGenre(GenreMetal)
	c.Process(nil)
	c.Process([]float64{})

	// An empty block is a no-op, including the pending switch.
	if got := c.SwitchCount(); got != 0 {
		t.Errorf("empty block should not consume the switch, got %d", got)
	}
}

func TestChainSwitchResetsState(t *testing.T) {
	t.Parallel()

	warm := newTestChain(t, testSampleRate)
	fresh := newTestChain(t, testSampleRate, WithInitialGenre(GenreMetal))

	// Warm up delay lines and filter memory on the Pop profile.
	warm.Process(testBlock(512))
	warm.SetGenre(GenreMetal)

	a := testBlock(256)
	b := testBlock(256)

	warm.Process(a)
	fresh.Process(b)

	// After the switch the warmed chain must sound exactly like a chain
	// that never played anything else.
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d: warmed chain %v differs from fresh chain %v", i, a[i], b[i])
		}
	}
}

func TestChainConfigureErrorDoesNotBlockSwitch(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate, WithInitialGenre(GenreClean))

	bad := &stubUnit{configureErr: errors.New("boom")}
	rest := &stubUnit{}
	c.units[RoleDelay] = bad
	c.units[RoleEQ] = rest

	c.SetGenre(GenrePop)
	c.Process(testBlock(64))

	if got := c.SwitchCount(); got != 1 {
		t.Errorf("expected the switch to apply despite the error, got %d switches", got)
	}

	if bad.resetCalls != 1 {
		t.Errorf("failing stage should still be reset, got %d resets", bad.resetCalls)
	}

	if rest.configureCalls != 1 {
		t.Errorf("stages after the failure should still be configured, got %d calls", rest.configureCalls)
	}

	if rest.processCalls == 0 {
		t.Error("stages after the failure should still process")
	}
}

func TestChainPanicBypassRestoresInput(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate, WithInitialGenre(GenreClean))

	c.units[RoleDelay] = &panicUnit{}
	c.units[RoleEQ] = &gainUnit{gain: 2}
	c.units[RoleReverb] = &gainUnit{gain: 3}

	c.SetGenre(GenrePop)

	block := []float64{1, 1, 1, 1}
	c.Process(block)

	// The panicking delay is bypassed with its input restored; the rest
	// of the chain and the output gain still run.
	want := 1.0 * 2 * 3 * 1.1
	for i, v := range block {
		if v != want {
			t.Errorf("sample %d: expected %v, got %v", i, want, v)
		}
	}

	if got := c.BypassCount(); got != 1 {
		t.Errorf("expected 1 bypass, got %d", got)
	}

	c.Process(block)

	if got := c.BypassCount(); got != 2 {
		t.Errorf("expected a bypass per block, got %d", got)
	}
}

func TestChainConcurrentSetGenre(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate)

	names := []string{GenreRockCountry, GenreJazzBlues, GenrePop, GenreClean, GenreMetal, "Polka"}

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range 50 {
				c.SetGenre(names[(w+i)%len(names)])
			}
		}()
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		block := testBlock(64)
		for range 200 {
			c.Process(block)
		}
	}()

	wg.Wait()
	<-done

	c.Process(testBlock(64))

	got := c.Genre()

	valid := false
	for _, name := range Genres() {
		if got == name {
			valid = true
		}
	}

	if !valid {
		t.Errorf("chain ended on unknown genre %q", got)
	}
}

func TestChainStagesReturnsCopy(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, testSampleRate)

	stages := c.Stages()
	stages[0] = "mangled"

	if got := c.Stages()[0]; got != RoleDelay {
		t.Errorf("Stages should return a copy, got %q", got)
	}
}
