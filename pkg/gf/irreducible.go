package gf

// width describes one of the six supported GF(2^n) field sizes and the
// low-degree terms of its reduction polynomial R_n = x^n + x^A + x^B + x^C + 1
// (A > B > C > 0; the x^n term is implicit and is not listed in lowTerms,
// which holds {A, B, C, 0}, the 0 standing for the constant 1 term).
//
// These exact exponents are not derivable from spec.md alone; they are
// taken from the reference field construction this package's wire
// format must stay bit-compatible with (GF8/GF16/GF32/GF64/GF128/GF256
// type aliases), most notably GF128's x^128+x^7+x^2+x+1, the same
// polynomial used by GHASH/AES-GCM.
type width struct {
	n        int
	lowTerms []int
}

var widths = map[int]width{
	8:   {n: 8, lowTerms: []int{4, 3, 1, 0}},
	16:  {n: 16, lowTerms: []int{5, 3, 1, 0}},
	32:  {n: 32, lowTerms: []int{7, 3, 2, 0}},
	64:  {n: 64, lowTerms: []int{4, 3, 1, 0}},
	128: {n: 128, lowTerms: []int{7, 2, 1, 0}},
	256: {n: 256, lowTerms: []int{10, 5, 2, 0}},
}

// SupportedBitWidths lists the field widths this package implements, in
// ascending order.
func SupportedBitWidths() []int {
	return []int{8, 16, 32, 64, 128, 256}
}

func widthFor(n int) (width, bool) {
	w, ok := widths[n]
	return w, ok
}
