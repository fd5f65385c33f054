package gf

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// clmul64 is resolved once at process start (section 4.A/9: "a runtime
// dispatch path is acceptable but must resolve once at startup, not per
// field op"). Every field multiply, square, and inverse in this package
// goes through this single indirection.
var clmul64 = clmul64Portable

var dispatchOnce sync.Once

func init() {
	dispatchOnce.Do(selectBackend)
}

// selectBackend picks the carry-less multiply backend based on detected
// CPU capability. x86_64 cores advertising PCLMULQDQ and aarch64 cores
// advertising PMULL (NEON's carry-less multiply extension) are assumed
// to also have the cache and register budget to benefit from a
// table-driven software implementation without constant-time concerns,
// since this spec explicitly treats timing-attack resistance as a
// non-goal.
func hasHardwareClmul() bool {
	return cpuid.CPU.Supports(cpuid.CLMUL) || cpuid.CPU.Supports(cpuid.PMULL)
}

func selectBackend() {
	if hasHardwareClmul() {
		clmul64 = clmulNibbleTable
		return
	}
	clmul64 = clmul64Portable
}

// Backend names the carry-less multiply implementation currently
// selected, for diagnostics (e.g. printed by the CLI's --verbose mode).
func Backend() string {
	if hasHardwareClmul() {
		return "accelerated (table-driven, cpuid-gated)"
	}
	return "portable (bit-serial)"
}
