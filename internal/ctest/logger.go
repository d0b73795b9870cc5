package ctest

import (
	"log/slog"
	"testing"

	"github.com/neilotoole/slogt"
)

// NewLogger returns a logger that routes through t.Log,
// so that log output is associated with the test producing it
// and is only printed for failing or verbose runs.
func NewLogger(t testing.TB) *slog.Logger {
	return slogt.New(t)
}
