package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultBusyTimeout = 5 * time.Second

// Outcome is the result of a provisioning attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// Attempt is one recorded provisioning attempt.
type Attempt struct {
	ID        int64         `json:"id" yaml:"id"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`

	// Device is the locator string of the device.
	Device    string `json:"device" yaml:"device"`
	Transport string `json:"transport,omitempty" yaml:"transport,omitempty"`
	SSID      string `json:"ssid,omitempty" yaml:"ssid,omitempty"`
	Scheme    string `json:"scheme,omitempty" yaml:"scheme,omitempty"`

	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Step and Error describe a failure.
	Step  string `json:"step,omitempty" yaml:"step,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// StationState and IPv4Addr are the last station status read.
	StationState string `json:"station_state,omitempty" yaml:"station_state,omitempty"`
	IPv4Addr     string `json:"ipv4_addr,omitempty" yaml:"ipv4_addr,omitempty"`
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Device  string
	SSID    string
	Outcome Outcome
	Since   time.Time

	// Limit caps the number of rows (0 = no limit).
	Limit int
}

// NotFoundError reports a missing record.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

// Options configures Open.
type Options struct {
	// Path is the database file. Its directory is created if missing.
	Path string

	// ReadOnly opens an existing database without writing.
	ReadOnly bool
}

// Store is a SQLite-backed attempt log.
type Store struct {
	db       *sql.DB
	path     string
	readOnly bool
}

// Open opens or creates the database at opts.Path.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, errors.New("history: empty database path")
	}

	dsn := opts.Path
	if opts.ReadOnly {
		dsn = fmt.Sprintf("file:%s?mode=ro", opts.Path)
	} else if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := applyPragmas(ctx, db, opts.ReadOnly); err != nil {
		db.Close()
		return nil, err
	}
	if !opts.ReadOnly {
		if err := applySchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Store{db: db, path: opts.Path, readOnly: opts.ReadOnly}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a and sets its ID.
func (s *Store) Record(ctx context.Context, a *Attempt) error {
	if s.readOnly {
		return errors.New("history: store is read-only")
	}
	if a.StartedAt.IsZero() {
		a.StartedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (started_at, duration_ms, device, transport, ssid, scheme,
			outcome, step, error, station_state, ipv4_addr)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.StartedAt.UnixMilli(), a.Duration.Milliseconds(), a.Device, a.Transport, a.SSID, a.Scheme,
		string(a.Outcome), a.Step, a.Error, a.StationState, a.IPv4Addr)
	if err != nil {
		return fmt.Errorf("history: record attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("history: record attempt: %w", err)
	}
	a.ID = id
	return nil
}

// List returns matching attempts, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Attempt, error) {
	var (
		where []string
		args  []any
	)
	if f.Device != "" {
		where = append(where, "device = ?")
		args = append(args, f.Device)
	}
	if f.SSID != "" {
		where = append(where, "ssid = ?")
		args = append(args, f.SSID)
	}
	if f.Outcome != "" {
		where = append(where, "outcome = ?")
		args = append(args, string(f.Outcome))
	}
	if !f.Since.IsZero() {
		where = append(where, "started_at >= ?")
		args = append(args, f.Since.UnixMilli())
	}

	query := `SELECT id, started_at, duration_ms, device, transport, ssid, scheme,
		outcome, step, error, station_state, ipv4_addr FROM attempts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY started_at DESC, id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list attempts: %w", err)
	}
	defer rows.Close()

	attempts := []Attempt{}
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: list attempts: %w", err)
	}
	return attempts, nil
}

// Last returns the newest attempt for a device.
func (s *Store) Last(ctx context.Context, device string) (*Attempt, error) {
	attempts, err := s.List(ctx, Filter{Device: device, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, NotFoundError{Entity: "attempt for device", Key: device}
	}
	return &attempts[0], nil
}

// Prune deletes attempts started before cutoff and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attempts WHERE started_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("history: prune: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(r rowScanner) (Attempt, error) {
	var (
		a              Attempt
		started, durMs int64
		outcome        string
	)
	err := r.Scan(&a.ID, &started, &durMs, &a.Device, &a.Transport, &a.SSID, &a.Scheme,
		&outcome, &a.Step, &a.Error, &a.StationState, &a.IPv4Addr)
	if err != nil {
		return Attempt{}, fmt.Errorf("history: scan attempt: %w", err)
	}
	a.StartedAt = time.UnixMilli(started)
	a.Duration = time.Duration(durMs) * time.Millisecond
	a.Outcome = Outcome(outcome)
	return a, nil
}
