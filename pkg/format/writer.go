package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Writer handles the writing of a single share bundle.
type Writer struct {
	w io.Writer
}

// NewWriter creates a new Writer around an io.Writer (usually an os.File).
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write serializes the header and a single share line to the
// underlying writer. If headerless is true, it skips the metadata
// entirely and writes only the bare share line (Paranoiac Mode).
func (hw *Writer) Write(header *Header, content []byte, headerless bool) error {
	if !headerless {
		// 1. Validate the header before writing anything
		if err := header.Validate(); err != nil {
			return fmt.Errorf("invalid header: %w", err)
		}

		// 2. Format and write the "Magic Header" text.
		magicText := fmt.Sprintf(MagicHeader, header.Total, header.BitWidth, header.Index, header.Threshold)
		if _, err := fmt.Fprint(hw.w, magicText); err != nil {
			return fmt.Errorf("failed to write magic header: %w", err)
		}

		// 3. Write the Header Marker
		if _, err := fmt.Fprintln(hw.w, HeaderMarker); err != nil {
			return fmt.Errorf("failed to write header marker: %w", err)
		}

		// 4. Marshal and write the Header JSON
		headerBytes, err := json.Marshal(header)
		if err != nil {
			return fmt.Errorf("failed to marshal header: %w", err)
		}
		if _, err := hw.w.Write(headerBytes); err != nil {
			return fmt.Errorf("failed to write json header: %w", err)
		}

		// Add a newline for readability before the body marker
		if _, err := fmt.Fprintln(hw.w); err != nil {
			return err
		}

		// 5. Write the Body Marker
		if _, err := fmt.Fprintln(hw.w, BodyMarker); err != nil {
			return fmt.Errorf("failed to write body marker: %w", err)
		}
	}

	// 6. Write the Content (the "<x>|<y>" share line)
	if _, err := hw.w.Write(content); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}

	return nil
}