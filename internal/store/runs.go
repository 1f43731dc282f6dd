package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by GetRun when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// Run is one render recorded in history.
type Run struct {
	Seq            int64
	ID             string
	InputPath      string
	InputDigest    string
	Algorithm      string
	TraceKind      string
	Frames         int
	GridRows       int
	GridCols       int
	MaxTraceLength int
	Seed           uint64
	Randomise      bool
	Reverse        bool
	OutputPath     string
	DelayCS        int
	LoopCount      int
}

// WriteRun appends a run. ID is assigned from the store's generator when
// empty; Seq is always assigned by the database. The stored run is returned.
func (s *Store) WriteRun(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = s.idGen.Generate()
	}

	// seed is uint64 but SQLite integers are signed; store the bit pattern.
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, input_path, input_digest, algorithm, trace_kind, frames,
		 grid_rows, grid_cols, max_trace_length, seed, randomise, reverse, output_path,
		 delay_cs, loop_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		r.InputPath,
		r.InputDigest,
		r.Algorithm,
		r.TraceKind,
		r.Frames,
		r.GridRows,
		r.GridCols,
		r.MaxTraceLength,
		int64(r.Seed),
		boolToInt(r.Randomise),
		boolToInt(r.Reverse),
		r.OutputPath,
		r.DelayCS,
		r.LoopCount,
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	r.Seq = seq
	return r, nil
}

const selectRun = `
	SELECT seq, id, input_path, input_digest, algorithm, trace_kind, frames,
	       grid_rows, grid_cols, max_trace_length, seed, randomise, reverse, output_path,
	       delay_cs, loop_count
	FROM runs
`

// ListRuns returns the most recent runs, newest first. A limit <= 0 returns
// every run.
//
// Returns an empty slice (not nil) if history is empty.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := selectRun + ` ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryRuns(ctx, query, args...)
}

// RunsForDigest returns every run of the given input image, oldest first.
func (s *Store) RunsForDigest(ctx context.Context, digest string) ([]Run, error) {
	return s.queryRuns(ctx, selectRun+` WHERE input_digest = ? ORDER BY seq ASC`, digest)
}

// GetRun returns the run with the given ID, or ErrNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %q: %w", id, err)
	}
	return r, nil
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r         Run
		seed      int64
		randomise int
		reverse   int
	)
	err := sc.Scan(
		&r.Seq,
		&r.ID,
		&r.InputPath,
		&r.InputDigest,
		&r.Algorithm,
		&r.TraceKind,
		&r.Frames,
		&r.GridRows,
		&r.GridCols,
		&r.MaxTraceLength,
		&seed,
		&randomise,
		&reverse,
		&r.OutputPath,
		&r.DelayCS,
		&r.LoopCount,
	)
	if err != nil {
		return Run{}, err
	}
	r.Seed = uint64(seed)
	r.Randomise = randomise != 0
	r.Reverse = reverse != 0
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
