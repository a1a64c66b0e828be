package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/mapuipa/internal/db"
	"github.com/jusunglee/mapuipa/internal/metrics"
)

//go:embed schema.sql
var schemaSQL string

const selectColumns = `id, source, ipa, u_variant, r_variant, g_variant, simple, created_at`

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL repository and applies the schema.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	config.MaxConns = 5
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 30 * time.Second
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// RecordPoolStats publishes connection pool gauges until ctx is cancelled.
func (r *Repository) RecordPoolStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		stat := r.pool.Stat()
		metrics.DBPoolTotalConns.Set(float64(stat.TotalConns()))
		metrics.DBPoolIdleConns.Set(float64(stat.IdleConns()))
		metrics.DBPoolAcquiredConns.Set(float64(stat.AcquiredConns()))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Repository) CreateTranscription(ctx context.Context, arg db.CreateTranscriptionParams) (db.Transcription, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transcriptions (source, ipa, u_variant, r_variant, g_variant, simple)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+selectColumns,
		arg.Source, arg.IPA, arg.UVariant, arg.RVariant, arg.GVariant, arg.Simple)
	return scanTranscription(row)
}

func (r *Repository) GetTranscription(ctx context.Context, id int64) (db.Transcription, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+selectColumns+`
		FROM transcriptions
		WHERE id = $1
	`, id)
	return scanTranscription(row)
}

func (r *Repository) ListTranscriptions(ctx context.Context, arg db.ListTranscriptionsParams) ([]db.Transcription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+selectColumns+`
		FROM transcriptions
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transcriptions := []db.Transcription{}
	for rows.Next() {
		t, err := scanTranscription(rows)
		if err != nil {
			return nil, err
		}
		transcriptions = append(transcriptions, t)
	}
	return transcriptions, rows.Err()
}

func (r *Repository) CountTranscriptions(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transcriptions`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteTranscription(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transcriptions WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanTranscription(row pgx.Row) (db.Transcription, error) {
	var t db.Transcription
	err := row.Scan(&t.ID, &t.Source, &t.IPA, &t.UVariant, &t.RVariant, &t.GVariant, &t.Simple, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Transcription{}, db.ErrNoRows
	}
	if err != nil {
		return db.Transcription{}, err
	}
	return t, nil
}
