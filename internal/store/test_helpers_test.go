package store

import (
	"path/filepath"
	"testing"
)

// createTestStore creates a new store in a temp dir with fixed run IDs.
func createTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(NewFixedGenerator(ids...)))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with minimal required fields.
func createTestRun(digest, algorithm string) Run {
	return Run{
		InputPath:      "testdata/in.png",
		InputDigest:    digest,
		Algorithm:      algorithm,
		TraceKind:      "swap",
		Frames:         60,
		GridRows:       4,
		GridCols:       8,
		MaxTraceLength: 28,
		Seed:           42,
		Randomise:      true,
		OutputPath:     "out.gif",
	}
}
