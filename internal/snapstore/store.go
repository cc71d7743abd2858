// Package snapstore archives resolved queries for auditing. It is write-only
// from the engine's point of view: nothing in the resolve path ever reads it
// back, so it is an audit sink, not a cache.
package snapstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"    // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"    // PostgreSQL driver
	_ "modernc.org/sqlite"                // SQLite driver (pure Go)

	"github.com/mcarrero/laborstat/internal/contract"
	"github.com/mcarrero/laborstat/schema"
)

// Table names for the run archive.
const (
	runsTable         = "laborstat_runs"
	observationsTable = "laborstat_observations"
)

// RunStoreImpl handles durable archive operations using various database
// backends.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore initializes and returns a new RunStore based on the backend
// type. The archive tables are created on first use.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	db, err := openBackend(backend, connStr)
	if err != nil {
		return nil, err
	}
	if db == nil { // NoneBackend
		return &RunStoreImpl{backend: backend}, nil
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	for _, query := range createTableQueries(backend) {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create archive tables: %w", err)
		}
	}

	return &RunStoreImpl{db: db, backend: backend}, nil
}

func openBackend(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetArchiveDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite archive at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL archive: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=postgres
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL archive: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		return db, nil

	case schema.NoneBackend:
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

func createTableQueries(backend schema.DatabaseBackend) []string {
	timestampType := "TIMESTAMP"
	if backend == schema.SQLiteBackend {
		timestampType = "TEXT"
	}
	return []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT PRIMARY KEY,
				executed_at %s NOT NULL,
				indicator VARCHAR(32) NOT NULL,
				breakdown VARCHAR(32) NOT NULL,
				frequency VARCHAR(16) NOT NULL,
				basis VARCHAR(16) NOT NULL,
				start_year INTEGER NOT NULL,
				end_year INTEGER NOT NULL,
				source VARCHAR(16) NOT NULL,
				observation_count INTEGER NOT NULL,
				duration_ms BIGINT NOT NULL
			);
		`, runsTable, timestampType),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				period VARCHAR(8) NOT NULL,
				year INTEGER NOT NULL,
				category VARCHAR(64) NOT NULL,
				value DOUBLE PRECISION NOT NULL
			);
		`, observationsTable),
	}
}

// RecordRun inserts one archived resolve invocation.
func (s *RunStoreImpl) RecordRun(run contract.RunRecord) error {
	if s.db == nil {
		return nil
	}
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s
		(run_id, executed_at, indicator, breakdown, frequency, basis, start_year, end_year, source, observation_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, runsTable))
	_, err := s.db.Exec(query,
		run.ID, s.formatTime(run.ExecutedAt),
		string(run.Indicator), string(run.Dimension), string(run.Frequency), string(run.Basis),
		run.StartYear, run.EndYear, string(run.Source), run.Observations, run.Duration.Milliseconds())
	return err
}

// RecordObservations inserts a run's observations inside one transaction.
func (s *RunStoreImpl) RecordObservations(runID int64, observations []schema.Observation) error {
	if s.db == nil || len(observations) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s (run_id, period, year, category, value) VALUES (?, ?, ?, ?, ?)`, observationsTable))
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, obs := range observations {
		if _, err := stmt.Exec(runID, obs.Period, obs.Year, obs.Category, obs.Value); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Runs returns archived runs, newest first.
func (s *RunStoreImpl) Runs(limit int) ([]contract.RunRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 25
	}
	query := s.rebind(fmt.Sprintf(`SELECT run_id, executed_at, indicator, breakdown, frequency, basis, start_year, end_year, source, observation_count, duration_ms
		FROM %s ORDER BY run_id DESC LIMIT ?`, runsTable))
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []contract.RunRecord
	for rows.Next() {
		var run contract.RunRecord
		var executedAt any
		var indicator, breakdown, frequency, basis, source string
		var durationMs int64
		if err := rows.Scan(&run.ID, &executedAt, &indicator, &breakdown, &frequency, &basis,
			&run.StartYear, &run.EndYear, &source, &run.Observations, &durationMs); err != nil {
			return nil, err
		}
		run.ExecutedAt = toStoredTime(executedAt)
		run.Indicator = schema.Indicator(indicator)
		run.Dimension = schema.Dimension(breakdown)
		run.Frequency = schema.Frequency(frequency)
		run.Basis = schema.Basis(basis)
		run.Source = schema.SourceTag(source)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Observations returns the archived observations of one run.
func (s *RunStoreImpl) Observations(runID int64) ([]schema.Observation, error) {
	if s.db == nil {
		return nil, nil
	}
	query := s.rebind(fmt.Sprintf(`SELECT period, year, category, value FROM %s WHERE run_id = ? ORDER BY period, category`, observationsTable))
	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var observations []schema.Observation
	for rows.Next() {
		var obs schema.Observation
		if err := rows.Scan(&obs.Period, &obs.Year, &obs.Category, &obs.Value); err != nil {
			return nil, err
		}
		observations = append(observations, obs)
	}
	return observations, rows.Err()
}

// Status summarizes the archive contents.
func (s *RunStoreImpl) Status() (contract.RunStoreStatus, error) {
	status := contract.RunStoreStatus{Backend: s.backend}
	if s.db == nil {
		return status, nil
	}
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.Runs); err != nil {
		return status, err
	}
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", observationsTable)).Scan(&status.Observations); err != nil {
		return status, err
	}
	return status, nil
}

// Clear removes every archived run and observation, keeping the tables.
func (s *RunStoreImpl) Clear() error {
	if s.db == nil {
		return nil
	}
	for _, table := range []string{observationsTable, runsTable} {
		if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying DB connection.
func (s *RunStoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// rebind rewrites '?' placeholders into the backend's parameter style.
func (s *RunStoreImpl) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

// formatTime renders a timestamp the way the backend's column type expects:
// RFC3339 for SQLite's TEXT column, the plain datetime layout for server
// TIMESTAMP columns.
func (s *RunStoreImpl) formatTime(t time.Time) string {
	if s.backend == schema.SQLiteBackend {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t.UTC().Format("2006-01-02 15:04:05.999999")
}

// toStoredTime normalizes a scanned timestamp column. Drivers disagree on
// the Go type they hand back for TIMESTAMP columns.
func toStoredTime(v any) time.Time {
	switch value := v.(type) {
	case time.Time:
		return value.UTC()
	case []byte:
		return parseStoredTime(string(value))
	case string:
		return parseStoredTime(value)
	default:
		return time.Time{}
	}
}

func parseStoredTime(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05.999999999Z07:00", "2006-01-02 15:04:05.999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
