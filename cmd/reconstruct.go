package cmd

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Beastly713/gf2share/pkg/format"
	"github.com/Beastly713/gf2share/pkg/gf"
	"github.com/Beastly713/gf2share/pkg/shamir"
)

var (
	sharesFile      string
	reconstructType string
	reconstructBits int
	reconstructT    int
	reconstructAtX  string
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct",
	Short: "Reconstruct a secret (or mint a new share) from T or more shares",
	Long: `Reconstruct reads shares from a file (either bare "<x>|<y>" lines,
one per line, or a single share bundle written with --bundle) and
recovers the original secret.

Pass --at to instead evaluate the shared polynomial at an arbitrary
point, producing a brand new share without ever recovering the secret.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		encoding, err := parseEncodingFlag(reconstructType)
		if err != nil {
			return err
		}

		shares, err := readShareFile(sharesFile, encoding, reconstructBits)
		if err != nil {
			return err
		}

		if reconstructAtX != "" {
			x, err := gf.FromHex(reconstructBits, reconstructAtX)
			if err != nil {
				return fmt.Errorf("--at is not a valid hex field element: %w", err)
			}
			minted, err := shamir.ReconstructAt(shares, reconstructT, x)
			if err != nil {
				return fmt.Errorf("reconstruct failed: %w", err)
			}
			line, err := minted.Format()
			if err != nil {
				return err
			}
			fmt.Println(line)
			return nil
		}

		secret, err := shamir.Reconstruct(shares, reconstructT)
		if err != nil {
			return fmt.Errorf("reconstruct failed: %w", err)
		}
		fmt.Printf("Secret = %s\n", hex.EncodeToString(secret))
		return nil
	},
}

// readShareFile reads one share per line from path. A line is either a
// bare "<x>|<y>" share line, or the start of a full bundle written with
// --bundle (recognized by the magic header / "-- HEADER --" marker),
// in which case format.NewReader consumes the header and the remainder
// of the stream is the single share line that follows it. A bundle
// carries its own Encoding in the header, which takes precedence over
// the --type flag; encoding and bitWidth passed in here only apply to
// bare, headerless share files, which have no metadata of their own.
func readShareFile(path string, encoding shamir.Encoding, bitWidth int) ([]shamir.Share, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.Contains(string(data), format.HeaderMarker) {
		reader, err := format.NewReader(strings.NewReader(string(data)))
		if err != nil {
			return nil, fmt.Errorf("failed to parse share bundle %s: %w", path, err)
		}
		bundleEncoding, err := parseEncodingFlag(reader.Header.Encoding)
		if err != nil {
			return nil, fmt.Errorf("share bundle %s: %w", path, err)
		}
		bodyBytes, err := readAllLines(reader.Body)
		if err != nil {
			return nil, err
		}
		return parseShareLines(bodyBytes, bundleEncoding, reader.Header.BitWidth)
	}

	return parseShareLines(splitLines(string(data)), encoding, bitWidth)
}

func readAllLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func splitLines(data string) []string {
	var lines []string
	for _, l := range strings.Split(data, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func parseShareLines(lines []string, encoding shamir.Encoding, bitWidth int) ([]shamir.Share, error) {
	shares := make([]shamir.Share, 0, len(lines))
	for _, line := range lines {
		s, err := shamir.ParseShare(line, encoding, bitWidth)
		if err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return shares, nil
}

func init() {
	rootCmd.AddCommand(reconstructCmd)

	reconstructCmd.Flags().StringVarP(&sharesFile, "shares", "s", "", "file containing one share per line")
	reconstructCmd.Flags().StringVar(&reconstructType, "type", "compact", "share encoding: \"compact\" or \"random\"")
	reconstructCmd.Flags().IntVarP(&reconstructBits, "bitsize", "b", 256, "GF(2^n) width the shares were split over")
	reconstructCmd.Flags().IntVarP(&reconstructT, "threshold", "t", 0, "number of shares required to reconstruct")
	reconstructCmd.Flags().StringVar(&reconstructAtX, "at", "", "reconstruct a new share at this hex x-coordinate instead of the secret")

	reconstructCmd.MarkFlagRequired("shares")
	reconstructCmd.MarkFlagRequired("threshold")
}
