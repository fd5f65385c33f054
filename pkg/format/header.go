package format

import (
	"errors"
	"fmt"
)

// Standard Markers used to delineate sections in the text-friendly format.
const (
	// MagicHeader is the user-friendly introduction found at the top of the file.
	MagicHeader = `# THIS FILE IS A SHARE BUNDLE.
# IT IS ONE OF %d SHARES OF A SECRET SPLIT OVER GF(2^%d).
# THIS IS SHARE NUMBER %d.
# ANY %d OF THEM RECONSTRUCT THE ORIGINAL SECRET.
`
	// HeaderMarker indicates the start of the JSON metadata.
	HeaderMarker = "-- HEADER --"

	// BodyMarker indicates the start of the share line that follows.
	BodyMarker = "-- BODY --"
)

// Header contains the metadata required to regroup and reconstruct a
// set of shares. Unlike the teacher's per-file bundle (which carried an
// OriginalFilename/Timestamp pair to correlate horcruxes from the same
// split and a KeyFragment holding an encrypted AES key), this header
// describes one GF(2^n) share directly: its field width, encoding, and
// position among its siblings.
type Header struct {
	// BitWidth is n for the GF(2^n) the secret was split over.
	BitWidth int `json:"bitWidth"`

	// Encoding names the share's x-coordinate scheme ("compact" or
	// "randomized"), so a reader can parse the body line correctly.
	Encoding string `json:"encoding"`

	// Index is the share's 1-based position among Total.
	Index int `json:"index"`

	// Total is the total number of shares created.
	Total int `json:"total"`

	// Threshold is the number of shares required to recover the secret.
	Threshold int `json:"threshold"`
}

// Validate checks if the header contains sane values.
func (h *Header) Validate() error {
	if h.Index < 1 || h.Index > h.Total {
		return fmt.Errorf("invalid index %d for total %d", h.Index, h.Total)
	}
	if h.Threshold < 1 || h.Threshold > h.Total {
		return fmt.Errorf("invalid threshold %d for total %d", h.Threshold, h.Total)
	}
	if h.Encoding != "compact" && h.Encoding != "randomized" {
		return errors.New("header has unknown encoding")
	}
	switch h.BitWidth {
	case 8, 16, 32, 64, 128, 256:
	default:
		return fmt.Errorf("header has unsupported bit width %d", h.BitWidth)
	}
	return nil
}
