package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRun_AssignsIncreasingSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq1, err := s.WriteRun(ctx, createTestRun("run-1", "hash-a"))
	require.NoError(t, err)
	seq2, err := s.WriteRun(ctx, createTestRun("run-2", "hash-a"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), seq1)
	assert.Equal(t, int64(2), seq2)
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("run-1", "hash-a")
	seq1, err := s.WriteRun(ctx, run)
	require.NoError(t, err)

	run.Steps = 999
	seq2, err := s.WriteRun(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, seq1, seq2)

	stored, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), stored.Steps, "first write wins")
}

func TestWriteRun_Validation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRun(ctx, createTestRun("", "hash"))
	assert.Error(t, err)

	bad := createTestRun("run-x", "hash")
	bad.Outcome = "maybe"
	_, err = s.WriteRun(ctx, bad)
	assert.Error(t, err)
}

func TestReadRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("run-err", "hash-b")
	run.Outcome = OutcomeError
	run.ErrorCode = "TAPE_BOUNDS"
	run.ErrorMessage = "cursor 30000 outside tape"
	seq, err := s.WriteRun(ctx, run)
	require.NoError(t, err)

	stored, err := s.ReadRun(ctx, "run-err")
	require.NoError(t, err)

	run.Seq = seq
	assert.Equal(t, run, stored)
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := s.WriteRun(ctx, createTestRun(fmt.Sprintf("run-%d", i), "hash"))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-1", runs[2].ID)
}

func TestListRuns_LimitAndFilter(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i, hash := range []string{"a", "b", "a", "a"} {
		_, err := s.WriteRun(ctx, createTestRun(fmt.Sprintf("run-%d", i), hash))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = s.ListRuns(ctx, ListOptions{ProgramHash: "a"})
	require.NoError(t, err)
	require.Len(t, runs, 3)
	for _, r := range runs {
		assert.Equal(t, "a", r.ProgramHash)
	}

	runs, err = s.ListRuns(ctx, ListOptions{ProgramHash: "a", Limit: 1})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-3", runs[0].ID)
}

func TestListRuns_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	gen := UUIDv7Generator{}
	a := gen.Generate()
	b := gen.Generate()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
