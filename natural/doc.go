// Package natural converts external values into canonical natural numbers.
//
// Every other zeckit package works on arbitrary-precision non-negative
// integers (*big.Int). This package is the single gate through which raw
// input (decimal strings typed by a user, fixed-width integers, floats coming
// from a UI slider, or an existing *big.Int) enters the system.
//
// Accepted kinds:
//
//   - *big.Int / big.Int     — must be ≥ 0; the value is copied.
//   - int, int8..int64       — must be ≥ 0.
//   - uint, uint8..uint64    — always accepted.
//   - float32, float64       — must be finite, integral and ≥ 0.
//   - string                 — one or more ASCII digits '0'..'9', nothing else.
//
// Anything else fails with ErrInvalidInput. The result is always a fresh
// *big.Int which the caller owns.
//
// Usage:
//
//	n, err := natural.Normalize("12345678901234567890")
//	if errors.Is(err, natural.ErrInvalidInput) {
//	    // re-prompt
//	}
package natural
