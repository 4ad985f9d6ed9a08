// Package vecmath holds the block kernels the engine needs beyond the
// surface algo-vecmath exports: scalar scaling, in-place accumulation,
// and peak search. All kernels are pure Go and allocation-free.
package vecmath
