package tests

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beastly713/gf2share/cmd"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it. The CLI commands print directly to
// os.Stdout rather than cmd.OutOrStdout(), matching the teacher's style,
// so tests observe their output this way instead of via cobra's output
// buffer.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	original := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = original }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func concatFiles(t *testing.T, dir string, paths []string) string {
	t.Helper()
	var b strings.Builder
	for _, p := range paths {
		content, err := os.ReadFile(p)
		require.NoError(t, err)
		b.Write(content)
		b.WriteString("\n")
	}
	return b.String()
}

// TestFullRoundTrip simulates the full user journey: split -> partial
// share loss -> reconstruct, using bare "<x>|<y>" share files (the
// default, non-bundle output).
func TestFullRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	secretHex := "3f5ffcd50ac6d0ece12bd0063e0c5f6e1c3e317f2d4692a3237fac857b85bca00"[:64]

	root := cmd.GetRootCmd()
	root.SetArgs([]string{
		"split", "-n", "5", "-t", "3", "--bitsize", "256",
		"--secret", secretHex, "-d", tmpDir,
	})
	require.NoError(t, root.Execute())

	matches, err := filepath.Glob(filepath.Join(tmpDir, "share_*.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 5, "should have created 5 share files")

	// Lose two of the five shares; three remain, meeting the threshold.
	surviving := matches[:3]

	sharesFile := filepath.Join(tmpDir, "surviving.txt")
	require.NoError(t, os.WriteFile(sharesFile, []byte(concatFiles(t, tmpDir, surviving)), 0o644))

	root2 := cmd.GetRootCmd()
	output := captureStdout(t, func() {
		root2.SetArgs([]string{
			"reconstruct", "--shares", sharesFile, "-t", "3", "--bitsize", "256",
		})
		require.NoError(t, root2.Execute())
	})

	assert.Contains(t, output, "Secret = "+secretHex)
}

// TestBundleRoundTrip exercises --bundle mode (full text bundles with
// a magic header and JSON metadata) end to end.
func TestBundleRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	secretHex := "cafebabe"

	root := cmd.GetRootCmd()
	root.SetArgs([]string{
		"split", "-n", "4", "-t", "2", "--bitsize", "32",
		"--secret", secretHex, "-d", tmpDir, "--bundle",
	})
	require.NoError(t, root.Execute())

	matches, err := filepath.Glob(filepath.Join(tmpDir, "share_*.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 4)

	for _, path := range matches {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "-- HEADER --")
	}

	root2 := cmd.GetRootCmd()
	output := captureStdout(t, func() {
		root2.SetArgs([]string{
			"reconstruct", "--shares", matches[0], "-t", "2", "--bitsize", "32",
		})
		// Only one bundle file is available; reconstruct with a single
		// share must fail with TooFewShares.
		err := root2.Execute()
		assert.Error(t, err)
	})
	_ = output
}

// TestHeaderlessRoundTrip verifies that --headerless bundles contain no
// metadata markers, and that reconstruct can still consume the bare
// share lines the headerless writer falls back to.
func TestHeaderlessRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	secretHex := "ab"

	root := cmd.GetRootCmd()
	root.SetArgs([]string{
		"split", "-n", "3", "-t", "2", "--bitsize", "8",
		"--secret", secretHex, "-d", tmpDir, "--bundle", "--headerless",
	})
	require.NoError(t, root.Execute())

	matches, err := filepath.Glob(filepath.Join(tmpDir, "share_*.txt"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	for _, path := range matches {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "THIS FILE IS A SHARE BUNDLE")
		assert.NotContains(t, string(content), "-- HEADER --")
	}

	sharesFile := filepath.Join(tmpDir, "surviving.txt")
	require.NoError(t, os.WriteFile(sharesFile, []byte(concatFiles(t, tmpDir, matches[:2])), 0o644))

	root2 := cmd.GetRootCmd()
	output := captureStdout(t, func() {
		root2.SetArgs([]string{
			"reconstruct", "--shares", sharesFile, "-t", "2", "--bitsize", "8",
		})
		require.NoError(t, root2.Execute())
	})
	assert.Contains(t, output, "Secret = "+secretHex)
}
