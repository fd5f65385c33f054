package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Beastly713/gf2share/pkg/crypto/secrets"
	"github.com/Beastly713/gf2share/pkg/format"
	"github.com/Beastly713/gf2share/pkg/gf"
	"github.com/Beastly713/gf2share/pkg/shamir"
)

var (
	totalShares  int
	threshold    int
	bitWidth     int
	encodingName string
	secretHex    string
	destDir      string
	writeBundles bool
	isHeaderless bool
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a secret into N shares, any T of which reconstruct it",
	Long: `Split a secret into N shares over GF(2^n). Any T of the N shares
reconstruct the secret; any T-1 reveal nothing about it.

Example:
  gf2share split -n 5 -t 3 --bitsize 256
  gf2share split -n 5 -t 3 --secret cafebabe...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		encoding, err := parseEncodingFlag(encodingName)
		if err != nil {
			return err
		}

		secretBytes, owned, err := resolveSecret(secretHex, bitWidth)
		if err != nil {
			return err
		}
		if owned != nil {
			defer owned.Destroy()
		}
		// A --secret hex string carries its own width; it may disagree
		// with --bitsize, so the actual field width is always derived
		// from the secret's byte length, not the flag.
		bitWidth = len(secretBytes) * 8

		shares, coeffHex, err := shamir.SplitVerbose(secretBytes, totalShares, threshold, encoding, gf.CryptoRandOracle{})
		if err != nil {
			return fmt.Errorf("split failed: %w", err)
		}

		fmt.Printf("Secret  = %s\n", hex.EncodeToString(secretBytes))
		if verbose {
			fmt.Printf("Backend = %s\n", gf.Backend())
			for i, c := range coeffHex {
				fmt.Printf("a%d      = %s\n", i+1, c)
			}
			if bitWidth == 128 {
				secretElement, err := gf.FromBytes(bitWidth, secretBytes)
				if err != nil {
					return err
				}
				fmt.Printf("Secret (GHASH-reflected) = %s\n", secretElement.ReflectedHex())
			}
		}
		fmt.Printf("Encoding = %s, bitwidth = %d, N = %d, T = %d\n\n", encoding, bitWidth, totalShares, threshold)

		for i, s := range shares {
			line, err := s.Format()
			if err != nil {
				return err
			}
			fmt.Printf("share %d: %s\n", i+1, line)
		}

		if destDir != "" {
			if err := writeShareFiles(shares, bitWidth, encoding, threshold, destDir, isHeaderless, writeBundles); err != nil {
				return err
			}
		}

		return nil
	},
}

// resolveSecret returns the secret bytes to split: either the decoded
// --secret hex flag, or bitWidth/8 freshly generated random bytes
// wrapped in a Secret so the CLI can zero them once splitting is done.
func resolveSecret(secretHex string, bitWidth int) ([]byte, *secrets.Secret, error) {
	if secretHex != "" {
		b, err := hex.DecodeString(secretHex)
		if err != nil {
			return nil, nil, fmt.Errorf("--secret is not valid hex: %w", err)
		}
		return b, nil, nil
	}
	s, err := secrets.NewSecret(bitWidth / 8)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate random secret: %w", err)
	}
	return s.Bytes(), s, nil
}

func parseEncodingFlag(name string) (shamir.Encoding, error) {
	switch name {
	case "compact":
		return shamir.Compact, nil
	case "random", "randomized":
		return shamir.Randomized, nil
	default:
		return 0, fmt.Errorf("--type must be \"compact\" or \"random\", got %q", name)
	}
}

func writeShareFiles(shares []shamir.Share, bitWidth int, encoding shamir.Encoding, threshold int, destDir string, headerless, bundle bool) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	for i, s := range shares {
		index := i + 1
		line, err := s.Format()
		if err != nil {
			return err
		}

		outPath := filepath.Join(destDir, fmt.Sprintf("share_%d_of_%d.txt", index, len(shares)))
		outFile, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create share file %s: %w", outPath, err)
		}

		if bundle {
			header := &format.Header{
				BitWidth:  bitWidth,
				Encoding:  encoding.String(),
				Index:     index,
				Total:     len(shares),
				Threshold: threshold,
			}
			writer := format.NewWriter(outFile)
			err = writer.Write(header, []byte(line+"\n"), headerless)
		} else {
			_, err = fmt.Fprintln(outFile, line)
		}
		closeErr := outFile.Close()
		if err != nil {
			return fmt.Errorf("failed to write share file %s: %w", outPath, err)
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close share file %s: %w", outPath, closeErr)
		}
		fmt.Printf("wrote %s\n", outPath)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().IntVarP(&totalShares, "nshares", "n", 0, "total number of shares to create")
	splitCmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "number of shares required to reconstruct")
	splitCmd.Flags().IntVarP(&bitWidth, "bitsize", "b", 256, "GF(2^n) width: 8, 16, 32, 64, 128, or 256")
	splitCmd.Flags().StringVar(&encodingName, "type", "compact", "share encoding: \"compact\" or \"random\"")
	splitCmd.Flags().StringVar(&secretHex, "secret", "", "hex-encoded secret to split (random if omitted)")
	splitCmd.Flags().StringVarP(&destDir, "destination", "d", "", "directory to write one share file per share (omit to only print)")
	splitCmd.Flags().BoolVar(&writeBundles, "bundle", false, "write full text bundles (magic header + JSON metadata) instead of bare share lines")
	splitCmd.Flags().BoolVar(&isHeaderless, "headerless", false, "when --bundle is set, omit the metadata header from written files")

	splitCmd.MarkFlagRequired("nshares")
	splitCmd.MarkFlagRequired("threshold")
}
