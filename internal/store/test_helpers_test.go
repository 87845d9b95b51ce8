package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/bfi/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a successful run record with minimal required fields.
func createTestRun(id, programHash string) Run {
	return Run{
		ID:            id,
		ProgramHash:   programHash,
		SourcePath:    "hello.bf",
		StartedAt:     "2024-01-01T00:00:00Z",
		Steps:         42,
		InputBytes:    0,
		OutputBytes:   13,
		Outcome:       OutcomeOK,
		EngineVersion: ir.EngineVersion,
	}
}
