// Package storage archives pipeline runs in a local SQLite database so
// verdicts and diagnostics can be inspected after the fact.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/annigue/Artikel-LLM/internal/engine"
)

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("run not found")

// Store wraps the runs database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one archived pipeline run.
type Run struct {
	ID               string
	CreatedAt        time.Time
	Topic            string
	Details          string
	PrimaryKeyword   string
	Destination      string
	StoryMode        bool
	Passed           bool
	RepairRounds     int
	ForcedExpansions int
	ServiceCalls     int
	Strategies       []string
	Words            int
	Final            string
	ReportJSON       string
}

// SaveRun archives a finished run.
func (s *Store) SaveRun(ctx context.Context, req engine.Request, res *engine.Result) error {
	reportJSON, err := json.Marshal(res.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	strategies := make([]string, len(res.Strategies))
	for i, st := range res.Strategies {
		strategies[i] = string(st)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, topic, details, primary_keyword, destination,
			story_mode, passed, repair_rounds, forced_expansions, service_calls,
			strategies, words, final_markdown, report_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, time.Now().UTC().Format(time.RFC3339), req.Topic, req.Details,
		req.PrimaryKeyword, res.Destination,
		boolInt(res.StoryMode), boolInt(res.Passed),
		res.RepairRounds, res.ForcedExpansions, res.ServiceCalls,
		strings.Join(strategies, ","), res.Report.Style.Words, res.Final, string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, topic, details, primary_keyword, destination,
		       story_mode, passed, repair_rounds, forced_expansions, service_calls,
		       strategies, words, final_markdown, report_json
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun fetches one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, topic, details, primary_keyword, destination,
		       story_mode, passed, repair_rounds, forced_expansions, service_calls,
		       strategies, words, final_markdown, report_json
		FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt, strategies string
	var storyMode, passed int
	err := sc.Scan(
		&r.ID, &createdAt, &r.Topic, &r.Details, &r.PrimaryKeyword, &r.Destination,
		&storyMode, &passed, &r.RepairRounds, &r.ForcedExpansions, &r.ServiceCalls,
		&strategies, &r.Words, &r.Final, &r.ReportJSON,
	)
	if err != nil {
		return Run{}, err
	}
	r.StoryMode = storyMode != 0
	r.Passed = passed != 0
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		r.CreatedAt = t
	}
	if strategies != "" {
		r.Strategies = strings.Split(strategies, ",")
	}
	return r, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
