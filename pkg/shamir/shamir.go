// Package shamir implements Shamir's Secret Sharing over the binary
// extension fields in pkg/gf: split a secret byte string into N shares
// such that any T reconstruct it and any T-1 reveal nothing.
//
// This replaces the teacher's fixed GF(256) log/exp-table
// implementation (which only ever shared one fixed-size AES key) with a
// width-generic scheme driven by pkg/gf and pkg/polynomial, supporting
// secrets of 1, 2, 4, 8, 16, or 32 bytes.
package shamir

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/Beastly713/gf2share/pkg/gf"
	"github.com/Beastly713/gf2share/pkg/polynomial"
)

// Encoding selects how a share's x-coordinate is chosen and serialized.
type Encoding int

const (
	// Compact shares use x = 1, 2, 3, ... N, serialized as a small
	// decimal index.
	Compact Encoding = iota
	// Randomized shares use a uniformly random nonzero field element
	// for x, serialized as hex like y.
	Randomized
)

func (e Encoding) String() string {
	switch e {
	case Compact:
		return "compact"
	case Randomized:
		return "randomized"
	default:
		return "unknown"
	}
}

var (
	// ErrTooFewShares is returned when split is asked for fewer
	// shares than threshold (N < T), or reconstruct is given fewer
	// than T shares.
	ErrTooFewShares = errors.New("shamir: too few shares")
	// ErrTooManyCompactShares is returned when compact encoding is
	// requested with N >= 2^n, so not every share index fits in a
	// distinct nonzero field element.
	ErrTooManyCompactShares = errors.New("shamir: too many shares for compact encoding at this bit width")
	// ErrDuplicateShares is returned when two shares given to
	// reconstruct carry the same x.
	ErrDuplicateShares = errors.New("shamir: duplicate share x-coordinate")
	// ErrZeroShareX is returned when a share's x-coordinate is zero.
	ErrZeroShareX = errors.New("shamir: share has zero x-coordinate")
	// ErrParseShare is returned for a malformed share line.
	ErrParseShare = errors.New("shamir: malformed share line")
)

// Share is a single (x, P(x)) point.
type Share struct {
	Encoding Encoding
	X        gf.Element
	Y        gf.Element
}

var compactLine = regexp.MustCompile(`^([0-9]+)\|([0-9a-fA-F]+)$`)
var randomizedLine = regexp.MustCompile(`^([0-9a-fA-F]+)\|([0-9a-fA-F]+)$`)

// ParseShare decodes one line of the share grammar (section 6): compact
// shares are "<decimal-index>|<hex-y>", randomized shares are
// "<hex-x>|<hex-y>". bitWidth fixes n so the hex lengths can be checked
// and the index turned into the right-width field element.
func ParseShare(line string, encoding Encoding, bitWidth int) (Share, error) {
	switch encoding {
	case Compact:
		m := compactLine.FindStringSubmatch(line)
		if m == nil {
			return Share{}, fmt.Errorf("%w: %q is not \"<index>|<hex>\"", ErrParseShare, line)
		}
		index, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return Share{}, fmt.Errorf("%w: bad index %q", ErrParseShare, m[1])
		}
		x, err := indexToElement(bitWidth, index)
		if err != nil {
			return Share{}, fmt.Errorf("%w: %v", ErrParseShare, err)
		}
		y, err := gf.FromHex(bitWidth, m[2])
		if err != nil {
			return Share{}, fmt.Errorf("%w: %v", ErrParseShare, err)
		}
		return Share{Encoding: Compact, X: x, Y: y}, nil

	case Randomized:
		m := randomizedLine.FindStringSubmatch(line)
		if m == nil {
			return Share{}, fmt.Errorf("%w: %q is not \"<hex-x>|<hex-y>\"", ErrParseShare, line)
		}
		x, err := gf.FromHex(bitWidth, m[1])
		if err != nil {
			return Share{}, fmt.Errorf("%w: %v", ErrParseShare, err)
		}
		y, err := gf.FromHex(bitWidth, m[2])
		if err != nil {
			return Share{}, fmt.Errorf("%w: %v", ErrParseShare, err)
		}
		return Share{Encoding: Randomized, X: x, Y: y}, nil

	default:
		return Share{}, fmt.Errorf("%w: unknown encoding", ErrParseShare)
	}
}

// Format renders a share back into its share-line grammar.
func (s Share) Format() (string, error) {
	switch s.Encoding {
	case Compact:
		index, err := elementToIndex(s.X)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d|%s", index, s.Y.Hex()), nil
	case Randomized:
		return fmt.Sprintf("%s|%s", s.X.Hex(), s.Y.Hex()), nil
	default:
		return "", fmt.Errorf("shamir: share has unknown encoding")
	}
}

// indexToElement turns a 1-based compact share index into the field
// element whose bit pattern equals that integer.
func indexToElement(bitWidth int, index uint64) (gf.Element, error) {
	buf := make([]byte, bitWidth/8)
	for i := len(buf) - 1; i >= 0 && index != 0; i-- {
		buf[i] = byte(index)
		index >>= 8
	}
	if index != 0 {
		return gf.Element{}, fmt.Errorf("%w: index does not fit in %d bits", gf.ErrWrongSize, bitWidth)
	}
	return gf.FromBytes(bitWidth, buf)
}

// elementToIndex is the inverse of indexToElement, used when formatting
// a compact share back to text.
func elementToIndex(x gf.Element) (uint64, error) {
	buf := x.ToBytes()
	if len(buf) > 8 {
		// Only the low 8 bytes can hold a uint64 index; compact
		// shares never exceed N < 2^n anyway, but wider fields
		// still only use small indices in the low bytes.
		buf = buf[len(buf)-8:]
	}
	var index uint64
	for _, b := range buf {
		index = index<<8 | uint64(b)
	}
	return index, nil
}

// maxCompactShares returns the number of distinct nonzero field
// elements available as compact indices at this bit width, saturating
// at MaxUint64 for widths where 2^n-1 would overflow.
func maxCompactShares(bitWidth int) uint64 {
	if bitWidth >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bitWidth)) - 1
}

// Split divides secret into n shares such that any threshold of them
// reconstruct it. The field width is determined by len(secret): 1, 2,
// 4, 8, 16, or 32 bytes: anything else fails with gf.ErrWrongSize.
func Split(secret []byte, n, threshold int, encoding Encoding, oracle gf.Oracle) ([]Share, error) {
	shares, _, err := splitWithCoefficients(secret, n, threshold, encoding, oracle)
	return shares, err
}

// SplitVerbose behaves like Split but also returns the hex encoding of
// the sampled polynomial's non-constant coefficients a_1..a_{T-1},
// mirroring the debugging affordance the CLI demo uses to print each
// coefficient ("a1 = ...") while splitting; it is not part of the core contract
// and must never be relied on for anything but display.
func SplitVerbose(secret []byte, n, threshold int, encoding Encoding, oracle gf.Oracle) ([]Share, []string, error) {
	return splitWithCoefficients(secret, n, threshold, encoding, oracle)
}

func splitWithCoefficients(secret []byte, n, threshold int, encoding Encoding, oracle gf.Oracle) ([]Share, []string, error) {
	bitWidth := len(secret) * 8
	if _, err := gf.Zero(bitWidth); err != nil {
		return nil, nil, fmt.Errorf("%w: secret is %d bytes, which is not a supported field width", gf.ErrWrongSize, len(secret))
	}
	if n < threshold {
		return nil, nil, fmt.Errorf("%w: n=%d < threshold=%d", ErrTooFewShares, n, threshold)
	}
	if encoding == Compact && uint64(n) > maxCompactShares(bitWidth) {
		return nil, nil, fmt.Errorf("%w: n=%d shares exceed 2^%d-1 distinct indices", ErrTooManyCompactShares, n, bitWidth)
	}

	secretElement, err := gf.FromBytes(bitWidth, secret)
	if err != nil {
		return nil, nil, err
	}

	poly, err := polynomial.Sample(secretElement, threshold, oracle)
	if err != nil {
		return nil, nil, err
	}
	defer poly.Destroy()

	coeffHex := make([]string, 0, len(poly.Coefficients)-1)
	for _, c := range poly.Coefficients[1:] {
		coeffHex = append(coeffHex, c.Hex())
	}

	shares := make([]Share, n)
	seen := make(map[string]struct{}, n)

	for j := 0; j < n; j++ {
		var x gf.Element
		switch encoding {
		case Compact:
			x, err = indexToElement(bitWidth, uint64(j+1))
			if err != nil {
				return nil, nil, err
			}
		case Randomized:
			for {
				x, err = gf.RandomNonzero(bitWidth, oracle)
				if err != nil {
					return nil, nil, err
				}
				if _, dup := seen[string(x.ToBytes())]; !dup {
					seen[string(x.ToBytes())] = struct{}{}
					break
				}
			}
		default:
			return nil, nil, fmt.Errorf("shamir: unknown encoding")
		}

		y, err := poly.Evaluate(x)
		if err != nil {
			return nil, nil, err
		}
		shares[j] = Share{Encoding: encoding, X: x, Y: y}
	}

	return shares, coeffHex, nil
}

// validateShares checks the distinctness and nonzero-x invariants
// shared by Reconstruct and ReconstructAt, and trims to exactly
// threshold shares by input order (section 5: "MUST select exactly T
// shares by input order when more are supplied").
func validateShares(shares []Share, threshold int) ([]Share, error) {
	if len(shares) < threshold {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrTooFewShares, len(shares), threshold)
	}
	selected := shares[:threshold]

	seen := make(map[string]struct{}, threshold)
	for _, s := range selected {
		if s.X.IsZero() {
			return nil, ErrZeroShareX
		}
		key := string(s.X.ToBytes())
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: x=%s appears twice", ErrDuplicateShares, s.X.Hex())
		}
		seen[key] = struct{}{}
	}
	return selected, nil
}

func toPoints(shares []Share) []polynomial.Point {
	points := make([]polynomial.Point, len(shares))
	for i, s := range shares {
		points[i] = polynomial.Point{X: s.X, Y: s.Y}
	}
	return points
}

// Reconstruct recovers the secret from at least threshold shares. If
// more than threshold are given, exactly the first threshold (by input
// order) are used.
func Reconstruct(shares []Share, threshold int) ([]byte, error) {
	selected, err := validateShares(shares, threshold)
	if err != nil {
		return nil, err
	}
	secret, err := polynomial.InterpolateAtZero(toPoints(selected))
	if err != nil {
		return nil, err
	}
	return secret.ToBytes(), nil
}

// ReconstructAt evaluates the shared polynomial at an arbitrary point x
// rather than at 0, generalizing Reconstruct: a coalition holding
// threshold shares can mint an additional share at x without ever
// recovering the secret itself, since InterpolateAt never materializes
// the constant term unless target happens to be zero.
func ReconstructAt(shares []Share, threshold int, x gf.Element) (Share, error) {
	selected, err := validateShares(shares, threshold)
	if err != nil {
		return Share{}, err
	}
	y, err := polynomial.InterpolateAt(toPoints(selected), x)
	if err != nil {
		return Share{}, err
	}
	return Share{Encoding: selected[0].Encoding, X: x, Y: y}, nil
}
