package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gf2share",
	Short: "Split and reconstruct secrets with Shamir's Secret Sharing over GF(2^n)",
	Long: `gf2share splits a secret byte string into N shares such that any T of
them reconstruct it and any T-1 reveal nothing, using finite-field
arithmetic over GF(2^n) for n in {8, 16, 32, 64, 128, 256}.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic information, including the selected clmul backend")
}
