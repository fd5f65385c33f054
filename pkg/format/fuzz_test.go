package format_test

import (
	"bytes"
	"testing"

	"github.com/Beastly713/gf2share/pkg/format"
)

// FuzzNewReader feeds random byte streams into the parser.
// We don't care IF it fails (garbage in, garbage out),
// we only care that it fails GRACEFULLY (returns error, doesn't panic).
func FuzzNewReader(f *testing.F) {
	// 1. Add some valid seed corpus to help the fuzzer start
	// This represents a minimal valid header structure
	validHeader := []byte(`# THIS FILE IS A SHARE BUNDLE...
-- HEADER --
{"bitWidth":256,"encoding":"compact","index":1,"total":5,"threshold":3}
-- BODY --
3|ce4df4704413d1a7b6be44943e47cc5d85627cfafb21ef6cc9f904630ddda8e`)
	f.Add(validHeader)

	// 2. Add completely random seeds
	f.Add([]byte("random garbage"))
	f.Add([]byte("-- HEADER --"))
	f.Add([]byte("{}"))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Pass the fuzzed data to the reader
		r := bytes.NewReader(data)
		_, err := format.NewReader(r)

		// We expect errors for garbage data.
		// If NewReader panics, the fuzzer will catch it and report it as a failure.
		if err != nil {
			return
		}
	})
}
