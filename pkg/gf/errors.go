// Package gf implements binary extension fields GF(2^n) for
// n in {8, 16, 32, 64, 128, 256}, used as the arithmetic substrate for
// Shamir's Secret Sharing in pkg/shamir.
package gf

import "errors"

// ErrWrongSize indicates a byte slice does not match any supported field
// width, or a serialized element has the wrong hex length.
var ErrWrongSize = errors.New("gf: input does not match a supported field width")

// ErrZeroInverse indicates an attempt to invert the zero element.
// Public entry points in pkg/shamir guard against this; if it surfaces
// here it signals an internal invariant violation.
var ErrZeroInverse = errors.New("gf: zero has no multiplicative inverse")

// ErrOracleFailure wraps a failure reported by a random byte Oracle.
var ErrOracleFailure = errors.New("gf: random oracle failed")
