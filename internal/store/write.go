package store

import (
	"context"
	"fmt"
)

// WriteRun appends a run record and returns the seq assigned to it.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing the same ID twice
// keeps the first row and returns its seq.
func (s *Store) WriteRun(ctx context.Context, run Run) (int64, error) {
	if run.ID == "" {
		return 0, fmt.Errorf("write run: id is required")
	}
	if run.Outcome != OutcomeOK && run.Outcome != OutcomeError {
		return 0, fmt.Errorf("write run: invalid outcome %q", run.Outcome)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, program_hash, source_path, started_at, steps, input_bytes, output_bytes,
		 outcome, error_code, error_message, engine_version)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.ProgramHash,
		run.SourcePath,
		run.StartedAt,
		run.Steps,
		run.InputBytes,
		run.OutputBytes,
		run.Outcome,
		run.ErrorCode,
		run.ErrorMessage,
		run.EngineVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, run.ID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: read seq: %w", err)
	}
	return seq, nil
}
