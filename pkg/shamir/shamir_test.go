package shamir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beastly713/gf2share/pkg/gf"
)

func randomSecret(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	oracle := gf.CryptoRandOracle{}
	require.NoError(t, oracle.Read(buf))
	return buf
}

func TestSplitReconstructRoundTripCompact(t *testing.T) {
	secret := []byte("my shared secret")
	shares, err := Split(secret, 10, 3, Compact, gf.CryptoRandOracle{})
	require.NoError(t, err)
	require.Len(t, shares, 10)

	subset := []Share{shares[2], shares[4], shares[7]}
	recovered, err := Reconstruct(subset, 3)
	require.NoError(t, err)
	assert.Equal(t, secret, recovered)
}

func TestSplitReconstructRoundTripRandomized(t *testing.T) {
	secret := randomSecret(t, 32)
	shares, err := Split(secret, 10, 3, Randomized, gf.CryptoRandOracle{})
	require.NoError(t, err)
	require.Len(t, shares, 10)

	seenX := make(map[string]struct{})
	for _, s := range shares {
		assert.False(t, s.X.IsZero())
		key := string(s.X.ToBytes())
		_, dup := seenX[key]
		assert.False(t, dup, "x values must be pairwise distinct")
		seenX[key] = struct{}{}
	}

	subset := []Share{shares[0], shares[5], shares[9]}
	recovered, err := Reconstruct(subset, 3)
	require.NoError(t, err)
	assert.Equal(t, secret, recovered)
}

func TestReconstructEverySubsetOfThreshold(t *testing.T) {
	secret := []byte{0x01, 0x02}
	shares, err := Split(secret, 5, 3, Compact, gf.CryptoRandOracle{})
	require.NoError(t, err)

	for i := 0; i < len(shares); i++ {
		for j := i + 1; j < len(shares); j++ {
			for k := j + 1; k < len(shares); k++ {
				subset := []Share{shares[i], shares[j], shares[k]}
				recovered, err := Reconstruct(subset, 3)
				require.NoError(t, err)
				assert.Equal(t, secret, recovered)
			}
		}
	}
}

func TestReconstructDuplicateShares(t *testing.T) {
	secret := []byte{0xab}
	shares, err := Split(secret, 5, 3, Compact, gf.CryptoRandOracle{})
	require.NoError(t, err)

	_, err = Reconstruct([]Share{shares[0], shares[0], shares[1]}, 3)
	assert.ErrorIs(t, err, ErrDuplicateShares)
}

func TestReconstructTooFewShares(t *testing.T) {
	secret := []byte{0xab}
	shares, err := Split(secret, 5, 3, Compact, gf.CryptoRandOracle{})
	require.NoError(t, err)

	_, err = Reconstruct(shares[:2], 3)
	assert.ErrorIs(t, err, ErrTooFewShares)
}

func TestReconstructZeroShareX(t *testing.T) {
	zero, err := gf.Zero(8)
	require.NoError(t, err)
	one, err := gf.FromBytes(8, []byte{1})
	require.NoError(t, err)

	bad := Share{Encoding: Compact, X: zero, Y: one}
	ok := Share{Encoding: Compact, X: one, Y: one}
	_, err = Reconstruct([]Share{bad, ok, ok}, 3)
	assert.ErrorIs(t, err, ErrZeroShareX)
}

func TestSplitTooFewShares(t *testing.T) {
	_, err := Split([]byte{0x01}, 2, 3, Compact, gf.CryptoRandOracle{})
	assert.ErrorIs(t, err, ErrTooFewShares)
}

func TestSplitTooManyCompactShares(t *testing.T) {
	_, err := Split([]byte{0x01}, 256, 2, Compact, gf.CryptoRandOracle{})
	assert.ErrorIs(t, err, ErrTooManyCompactShares)
}

func TestSplitWrongSizeSecret(t *testing.T) {
	_, err := Split(make([]byte, 31), 10, 3, Compact, gf.CryptoRandOracle{})
	assert.ErrorIs(t, err, gf.ErrWrongSize)
}

func TestShareLineRoundTrip(t *testing.T) {
	secret := []byte{0x01, 0x02, 0x03, 0x04}
	shares, err := Split(secret, 4, 2, Compact, gf.CryptoRandOracle{})
	require.NoError(t, err)

	for _, s := range shares {
		line, err := s.Format()
		require.NoError(t, err)
		parsed, err := ParseShare(line, Compact, 32)
		require.NoError(t, err)
		assert.True(t, parsed.X.Equal(s.X))
		assert.True(t, parsed.Y.Equal(s.Y))
	}
}

func TestShareLineRoundTripRandomized(t *testing.T) {
	secret := []byte{0x01, 0x02, 0x03, 0x04}
	shares, err := Split(secret, 4, 2, Randomized, gf.CryptoRandOracle{})
	require.NoError(t, err)

	for _, s := range shares {
		line, err := s.Format()
		require.NoError(t, err)
		parsed, err := ParseShare(line, Randomized, 32)
		require.NoError(t, err)
		assert.True(t, parsed.X.Equal(s.X))
		assert.True(t, parsed.Y.Equal(s.Y))
	}
}

func TestParseShareMalformed(t *testing.T) {
	_, err := ParseShare("not-a-share-line", Compact, 8)
	assert.ErrorIs(t, err, ErrParseShare)

	_, err = ParseShare("3|zz", Compact, 8)
	assert.ErrorIs(t, err, ErrParseShare)
}

func TestDeterministicSplitIsReproducible(t *testing.T) {
	secret := []byte{0x10, 0x20, 0x30, 0x40}
	stream := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
	}

	shares1, err := Split(secret, 5, 3, Compact, &gf.DeterministicOracle{Stream: append([]byte(nil), stream...)})
	require.NoError(t, err)
	shares2, err := Split(secret, 5, 3, Compact, &gf.DeterministicOracle{Stream: append([]byte(nil), stream...)})
	require.NoError(t, err)

	require.Len(t, shares1, len(shares2))
	for i := range shares1 {
		assert.True(t, shares1[i].X.Equal(shares2[i].X))
		assert.True(t, shares1[i].Y.Equal(shares2[i].Y))
	}
}

func TestReconstructAtRecoversSameSecretAtZero(t *testing.T) {
	secret := []byte{0x7f, 0x01}
	shares, err := Split(secret, 5, 3, Compact, gf.CryptoRandOracle{})
	require.NoError(t, err)

	zero, err := gf.Zero(16)
	require.NoError(t, err)
	share, err := ReconstructAt(shares[:3], 3, zero)
	require.NoError(t, err)
	assert.Equal(t, secret, share.Y.ToBytes())
}

func TestReconstructAtMintsValidShare(t *testing.T) {
	secret := []byte{0x7f, 0x01}
	shares, err := Split(secret, 5, 3, Compact, gf.CryptoRandOracle{})
	require.NoError(t, err)

	newX, err := gf.FromBytes(16, []byte{0x12, 0x34})
	require.NoError(t, err)
	minted, err := ReconstructAt(shares[:3], 3, newX)
	require.NoError(t, err)

	recovered, err := Reconstruct([]Share{shares[0], shares[1], minted}, 3)
	require.NoError(t, err)
	assert.Equal(t, secret, recovered)
}

// TestSecrecyBoundaryBelowThresholdRevealsNothing checks spec.md
// property 5: a coalition of only threshold-1 shares must not
// constrain the secret at all. Holding two of three real shares fixed
// and letting a third, unknown share's y-value range over every
// possible byte, the "recovered secret" produced by treating that
// guess as genuine must range over every possible byte too — if the
// two real shares already pinned down the secret, some guesses would
// be unreachable or repeats would outnumber distinct outcomes.
func TestSecrecyBoundaryBelowThresholdRevealsNothing(t *testing.T) {
	secret := []byte{0x42}
	shares, err := Split(secret, 5, 3, Compact, gf.CryptoRandOracle{})
	require.NoError(t, err)

	coalition := shares[:2]
	missingX, err := gf.FromBytes(8, []byte{0xfe})
	require.NoError(t, err)

	recovered := make(map[string]struct{}, 256)
	for guess := 0; guess < 256; guess++ {
		y, err := gf.FromBytes(8, []byte{byte(guess)})
		require.NoError(t, err)
		trial := append(append([]Share{}, coalition...), Share{Encoding: Compact, X: missingX, Y: y})
		got, err := Reconstruct(trial, 3)
		require.NoError(t, err)
		recovered[string(got)] = struct{}{}
	}
	assert.Len(t, recovered, 256, "every possible secret must be reachable from some guess at the missing share")
}

func TestZeroInverseAcrossWidths(t *testing.T) {
	for _, n := range gf.SupportedBitWidths() {
		zero, err := gf.Zero(n)
		require.NoError(t, err)
		_, err = zero.Inv()
		assert.ErrorIs(t, err, gf.ErrZeroInverse)
	}
}
