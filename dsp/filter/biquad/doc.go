// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain], which is how the parametric EQ runs its bands.
//
// This package provides the processing runtime only. Coefficient design
// (peaking EQ sections) lives in dsp/filter/design.
package biquad
