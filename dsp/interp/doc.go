// Package interp reads fractional positions from looped wavetables.
//
// Available modes, from cheapest to highest quality:
//
//   - [ModeLinear]:  2-point linear interpolation
//   - [ModeHermite]: 4-point cubic Hermite
package interp
