package gf

// The functions in this file implement the width-generic "profile"
// described in section 9: every GF(2^n) width is represented as a
// little-endian slice of 64-bit words, and mul/square/inv are derived
// from wideMul/wideSquare/reduce, which are the only width-specific
// pieces (by way of n and the fold_shifts table).

// wordsFor returns the number of 64-bit words needed to hold n bits.
func wordsFor(n int) int {
	return (n + 63) / 64
}

func testBit(words []uint64, i int) bool {
	return (words[i/64]>>uint(i%64))&1 != 0
}

func toggleBit(words []uint64, i int) {
	words[i/64] ^= 1 << uint(i%64)
}

func clearBit(words []uint64, i int) {
	words[i/64] &^= 1 << uint(i%64)
}

// wideMul computes the carry-less (XOR-convolution) product of two
// n-bit values represented as equal-length word slices, returning a
// slice of 2*len(a) words holding the up-to-(2n-1)-bit wide product.
func wideMul(a, b []uint64) []uint64 {
	out := make([]uint64, 2*len(a))
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			if bj == 0 {
				continue
			}
			lo, hi := clmul64(ai, bj)
			out[i+j] ^= lo
			out[i+j+1] ^= hi
		}
	}
	return out
}

// wideSquare computes the carry-less square of an n-bit value. Squaring
// a polynomial over GF(2) cancels every cross term (each pair (i,j),
// i != j, with i+j=k appears twice and XORs away), leaving only the
// diagonal terms — so only len(a) carry-less multiplies are needed
// instead of len(a)^2.
func wideSquare(a []uint64) []uint64 {
	out := make([]uint64, 2*len(a))
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		lo, hi := clmul64(ai, ai)
		out[2*i] ^= lo
		out[2*i+1] ^= hi
	}
	return out
}

// reduce folds a 2*nWords-word wide product down to nWords words modulo
// the degree-n polynomial x^n + sum(x^p : p in lowTerms), where
// lowTerms holds the exponents of R_n's nonzero terms below x^n, including
// 0 for the constant term (fold_shifts, not including the implicit
// leading x^n term).
//
// For every set bit k in [n, top], the implicit x^n term is equivalent
// (mod R_n) to the sum of the low terms, so shifting that equivalence by
// k-n and XORing it in cancels bit k while introducing replacement bits
// at lower positions; the scan proceeds top-down until every bit below n
// is a genuine field element.
func reduce(wide []uint64, n int, lowTerms []int) []uint64 {
	nWords := len(wide) / 2
	top := nWords*128 - 1
	for k := top; k >= n; k-- {
		if !testBit(wide, k) {
			continue
		}
		clearBit(wide, k)
		shift := k - n
		for _, p := range lowTerms {
			toggleBit(wide, p+shift)
		}
	}
	return wide[:nWords]
}

// pow computes a^e for an n-bit element a and an n-bit exponent e (both
// little-endian word slices) via right-to-left square-and-multiply.
func pow(a []uint64, n int, e []uint64, lowTerms []int) []uint64 {
	nWords := wordsFor(n)
	result := make([]uint64, nWords)
	result[0] = 1

	base := make([]uint64, nWords)
	copy(base, a)

	for bit := 0; bit < n; bit++ {
		if testBit(e, bit) {
			result = reduce(wideMul(result, base), n, lowTerms)
		}
		if bit != n-1 {
			base = reduce(wideSquare(base), n, lowTerms)
		}
	}
	return result
}

// invExponent returns the word representation of 2^n - 2, i.e. n-1 ones
// followed by a single zero bit at position 0 — the exponent used by
// Fermat inversion in GF(2^n).
func invExponent(n int) []uint64 {
	nWords := wordsFor(n)
	e := make([]uint64, nWords)
	for i := 0; i < n; i++ {
		if i != 0 {
			toggleBit(e, i)
		}
	}
	return e
}

func isZeroWords(words []uint64) bool {
	for _, w := range words {
		if w != 0 {
			return false
		}
	}
	return true
}
