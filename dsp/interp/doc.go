// Package interp provides the fractional-delay interpolation primitives used
// by modulated delay lines.
//
// Two methods are available, selected once at configuration time through the
// [Mode] enum and dispatched per sample without indirection:
//
//   - [Linear2]:     2-point linear interpolation
//   - [Quadratic3]:  3-point quadratic Lagrange interpolation
package interp
