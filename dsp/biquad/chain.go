package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// Each section owns independent coefficients and delay taps, so chains
// of unequal center frequencies (allpass phase networks, crossovers)
// are just a coefficient list.
type Chain struct {
	sections []Section
}

// NewChain creates a cascade from one or more coefficient sets.
// Each Coefficients value becomes one Section in the cascade.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// Step cascades input through all sections in order.
func (c *Chain) Step(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].Step(x)
	}

	return x
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

// Section returns a pointer to the i-th section for inspection or
// modification.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// UpdateCoefficients replaces the filter coefficients. If the number of
// sections is unchanged the delay-tap state of each section is preserved,
// avoiding the output discontinuity that would result from starting a
// fresh chain with zero state. If the section count changes the sections
// are replaced and state is reset.
func (c *Chain) UpdateCoefficients(coeffs []Coefficients) {
	if len(coeffs) == len(c.sections) {
		for i := range c.sections {
			c.sections[i].Coefficients = coeffs[i]
		}

		return
	}

	c.sections = make([]Section, len(coeffs))
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
}
