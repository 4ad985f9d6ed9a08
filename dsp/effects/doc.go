// Package effects provides reusable non-I/O DSP effect kernels.
//
// Subpackages:
//   - github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/effects/dynamics
//   - github.com/vacasaiyan/genre-adaptive-guitar-effects/dsp/effects/modulation
//
// Effects in this package:
//   - Distortion: Four-mode waveshaper from tube-style overdrive to
//     asymmetric metal clipping.
//   - Delay: Feedback delay with dry/wet mix over a two-second buffer.
//   - Reverb: Schroeder reverb (eight damped combs, four allpasses).
//   - EQ: Parametric peaking-band cascade with named presets.
//
// All effects are designed for real-time processing with zero-allocation
// hot paths and support both single-sample and buffer-based processing.
package effects
