package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jusunglee/mapuipa/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

const selectColumns = `id, source, ipa, u_variant, r_variant, g_variant, simple, created_at`

// Repository implements db.Repository using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository
func New(ctx context.Context, dbPath string) (*Repository, error) {
	// Strip sqlite:// prefix if present
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	isNew := false
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		isNew = true
	}

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	if dbPath == ":memory:" {
		sqliteDB.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if isNew {
		slog.Info("created new SQLite database", "path", dbPath)
	}

	return &Repository{db: sqliteDB, now: time.Now}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) CreateTranscription(ctx context.Context, arg db.CreateTranscriptionParams) (db.Transcription, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO transcriptions (source, ipa, u_variant, r_variant, g_variant, simple, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, arg.Source, arg.IPA, arg.UVariant, arg.RVariant, arg.GVariant, arg.Simple, r.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return db.Transcription{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return db.Transcription{}, err
	}

	return r.GetTranscription(ctx, id)
}

func (r *Repository) GetTranscription(ctx context.Context, id int64) (db.Transcription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+selectColumns+`
		FROM transcriptions
		WHERE id = ?
	`, id)

	return scanTranscription(row)
}

func (r *Repository) ListTranscriptions(ctx context.Context, arg db.ListTranscriptionsParams) ([]db.Transcription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM transcriptions
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTranscriptions(rows)
}

func (r *Repository) CountTranscriptions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transcriptions`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteTranscription(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transcriptions WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInto(s scanner) (db.Transcription, error) {
	var t db.Transcription
	var createdAtStr string
	if err := s.Scan(&t.ID, &t.Source, &t.IPA, &t.UVariant, &t.RVariant, &t.GVariant, &t.Simple, &createdAtStr); err != nil {
		return db.Transcription{}, err
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
	return t, nil
}

func scanTranscription(row *sql.Row) (db.Transcription, error) {
	t, err := scanInto(row)
	if err == sql.ErrNoRows {
		return db.Transcription{}, db.ErrNoRows
	}
	return t, err
}

func scanTranscriptions(rows *sql.Rows) ([]db.Transcription, error) {
	transcriptions := []db.Transcription{}
	for rows.Next() {
		t, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		transcriptions = append(transcriptions, t)
	}
	return transcriptions, rows.Err()
}
