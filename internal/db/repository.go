package db

import (
	"context"
	"time"
)

// Transcription is a saved conversion together with the variant settings that
// produced it.
type Transcription struct {
	ID        int64
	Source    string
	IPA       string
	UVariant  string
	RVariant  string
	GVariant  string
	Simple    bool
	CreatedAt time.Time
}

type CreateTranscriptionParams struct {
	Source   string
	IPA      string
	UVariant string
	RVariant string
	GVariant string
	Simple   bool
}

type ListTranscriptionsParams struct {
	Limit  int32
	Offset int32
}

// Repository defines the interface for database operations
type Repository interface {
	CreateTranscription(ctx context.Context, arg CreateTranscriptionParams) (Transcription, error)
	GetTranscription(ctx context.Context, id int64) (Transcription, error)
	// ListTranscriptions returns newest first.
	ListTranscriptions(ctx context.Context, arg ListTranscriptionsParams) ([]Transcription, error)
	CountTranscriptions(ctx context.Context) (int64, error)
	DeleteTranscription(ctx context.Context, id int64) (int64, error)

	// Lifecycle
	Close() error
}
