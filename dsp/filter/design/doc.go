// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing. [Peak] implements the RBJ
// cookbook peaking-EQ section that the parametric EQ builds its bands from.
package design
