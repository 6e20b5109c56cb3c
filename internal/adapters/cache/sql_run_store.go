package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/platform/db"
	"lng-supply-optimizer/internal/platform/obs"
	"lng-supply-optimizer/internal/ports"
	"strings"
	"time"
)

// SQLRunStore persists run records in the run_records table.
// Timestamps are stored as unix milliseconds so the same schema works on
// postgres and SQLite.
type SQLRunStore struct {
	DB      *sql.DB
	Dialect db.Dialect
	Now     func() time.Time
}

func NewSQLRunStore(conn *sql.DB, dialect db.Dialect) *SQLRunStore {
	return &SQLRunStore{DB: conn, Dialect: dialect, Now: time.Now}
}

// Fetch the run record stored under key.
func (s *SQLRunStore) Get(ctx context.Context, key string) (_ *domain.RunRecord, err error) {
	defer obs.Time(ctx, "runstore.sql.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("run store: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get run record: key must not be empty")
	}

	q := db.Rebind(s.Dialect, `
	SELECT payload, reuse_count, created_at, updated_at
	FROM run_records
	WHERE run_key = ?;
	`)

	var (
		payload            string
		reuse              int
		createdMS, updated int64
	)
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload, &reuse, &createdMS, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run record: query run_records table: %w", err)
	}

	rec, err := decodePayload(key, []byte(payload))
	if err != nil {
		return nil, fmt.Errorf("get run record: %w", err)
	}
	rec.ReuseCount = reuse
	rec.CreatedAt = time.UnixMilli(createdMS).UTC()
	rec.UpdatedAt = time.UnixMilli(updated).UTC()

	return rec, nil
}

// Insert a new run record; on key conflict return the existing one untouched.
func (s *SQLRunStore) Create(ctx context.Context, rec *domain.RunRecord) (_ *domain.RunRecord, _ bool, err error) {
	defer obs.Time(ctx, "runstore.sql.Create")(&err)

	if s.DB == nil {
		return nil, false, errors.New("run store: db is nil")
	}
	if rec == nil || strings.TrimSpace(rec.Key) == "" {
		return nil, false, errors.New("insert run record: key must not be empty")
	}

	payload, err := encodePayload(rec)
	if err != nil {
		return nil, false, fmt.Errorf("insert run record: %w", err)
	}

	created := rec.CreatedAt
	if created.IsZero() {
		created = s.now()
	}

	q := db.Rebind(s.Dialect, `
	INSERT INTO run_records (run_key, mode, payload, reuse_count, created_at, updated_at)
	VALUES (?, ?, ?, 0, ?, ?)
	ON CONFLICT (run_key) DO NOTHING;
	`)

	res, err := s.DB.ExecContext(ctx, q, rec.Key, runMode(rec), string(payload), created.UnixMilli(), created.UnixMilli())
	if err != nil {
		return nil, false, fmt.Errorf("insert run record %s: %w", rec.Key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("insert run record %s: rows affected: %w", rec.Key, err)
	}

	stored, err := s.Get(ctx, rec.Key)
	if err != nil {
		return nil, false, fmt.Errorf("insert run record %s: read back: %w", rec.Key, err)
	}

	return stored, n == 1, nil
}

// Bump the reuse counter of key by exactly one.
func (s *SQLRunStore) IncrementReuse(ctx context.Context, key string) (_ *domain.RunRecord, err error) {
	defer obs.Time(ctx, "runstore.sql.IncrementReuse")(&err)

	if s.DB == nil {
		return nil, errors.New("run store: db is nil")
	}

	q := db.Rebind(s.Dialect, `
	UPDATE run_records
	SET reuse_count = reuse_count + 1,
		updated_at = ?
	WHERE run_key = ?;
	`)

	res, err := s.DB.ExecContext(ctx, q, s.now().UnixMilli(), key)
	if err != nil {
		return nil, fmt.Errorf("increment reuse %s: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("increment reuse %s: rows affected: %w", key, err)
	}
	if n == 0 {
		return nil, ports.ErrRunNotFound
	}

	return s.Get(ctx, key)
}

func (s *SQLRunStore) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
