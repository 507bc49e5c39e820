// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import "testing"

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// FillGradient writes a deterministic byte pattern into buf so tests can
// verify a data view aliases the frame's real buffer.
func FillGradient(buf []byte) {
	for i := range buf {
		buf[i] = byte(i * 7)
	}
}

// IsGradient reports whether buf still holds the FillGradient pattern.
func IsGradient(buf []byte) bool {
	for i := range buf {
		if buf[i] != byte(i*7) {
			return false
		}
	}
	return true
}
