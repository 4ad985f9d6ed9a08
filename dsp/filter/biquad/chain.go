package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// Parametric EQs and higher-order filters run each second-order section
// into the next.
type Chain struct {
	sections []Section
}

// chainConfig holds options for NewChain.
type chainConfig struct {
	capacity int
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithSectionCapacity reserves storage for up to n sections so later
// UpdateCoefficients calls within that capacity never allocate. Useful
// when coefficients are swapped on a processing thread.
func WithSectionCapacity(n int) ChainOption {
	return func(cfg *chainConfig) {
		if n > 0 {
			cfg.capacity = n
		}
	}
}

// NewChain creates a cascade from zero or more coefficient sets.
// Each Coefficients value becomes one Section in the cascade; an empty
// chain passes samples through unchanged.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	capacity := cfg.capacity
	if capacity < len(coeffs) {
		capacity = len(coeffs)
	}

	c := &Chain{
		sections: make([]Section, len(coeffs), capacity),
	}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample cascades input through all sections in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// UpdateCoefficients replaces the filter coefficients.
// If the number of sections is unchanged the delay-line state of each section
// is preserved, avoiding the output discontinuity that would result from
// starting a fresh chain with zero state.
// If the section count changes the sections are replaced and state is reset;
// existing capacity is reused, so within the reserved capacity this never
// allocates.
func (c *Chain) UpdateCoefficients(coeffs []Coefficients) {
	if len(coeffs) == len(c.sections) {
		for i := range c.sections {
			c.sections[i].Coefficients = coeffs[i]
		}

		return
	}

	if cap(c.sections) >= len(coeffs) {
		c.sections = c.sections[:len(coeffs)]
		for i := range c.sections {
			c.sections[i] = Section{Coefficients: coeffs[i]}
		}

		return
	}

	c.sections = make([]Section, len(coeffs))
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
}

// Section returns a pointer to the i-th section for inspection or modification.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// State returns a snapshot of all section delay-line states.
func (c *Chain) State() [][2]float64 {
	states := make([][2]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores previously saved section states.
// The slice length must match NumSections.
func (c *Chain) SetState(states [][2]float64) {
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}
