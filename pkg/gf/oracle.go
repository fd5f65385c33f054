package gf

import (
	"crypto/rand"
	"fmt"
)

// Oracle yields uniformly random bytes. Split and the per-width Random
// functions consume an Oracle rather than reading from a process-global
// source, so callers can substitute a deterministic stream in tests.
type Oracle interface {
	Read(buf []byte) error
}

// CryptoRandOracle is the default Oracle, backed by crypto/rand.
type CryptoRandOracle struct{}

// Read fills buf with cryptographically secure random bytes.
func (CryptoRandOracle) Read(buf []byte) error {
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrOracleFailure, err)
	}
	return nil
}

// DeterministicOracle replays bytes from a fixed stream, looping if it
// runs out. It exists for reproducibility tests (spec property #7,
// "Determinism") and must never be used to protect real secrets.
type DeterministicOracle struct {
	Stream []byte
	pos    int
}

// Read copies the next len(buf) bytes from the stream, wrapping around.
func (d *DeterministicOracle) Read(buf []byte) error {
	if len(d.Stream) == 0 {
		return fmt.Errorf("%w: empty deterministic stream", ErrOracleFailure)
	}
	for i := range buf {
		buf[i] = d.Stream[d.pos]
		d.pos = (d.pos + 1) % len(d.Stream)
	}
	return nil
}
