package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jusunglee/mapuipa/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func createTranscription(t *testing.T, repo *Repository, source, ipa string) db.Transcription {
	t.Helper()
	tr, err := repo.CreateTranscription(context.Background(), db.CreateTranscriptionParams{
		Source:   source,
		IPA:      ipa,
		UVariant: "ɨ",
		RVariant: "ʐ",
		GVariant: "ɣ",
	})
	require.NoError(t, err)
	return tr
}

func TestTranscriptionCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	fixed := time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC)
	repo.now = func() time.Time { return fixed }

	tr, err := repo.CreateTranscription(ctx, db.CreateTranscriptionParams{
		Source:   "mapuche",
		IPA:      "mapuʧe",
		UVariant: "ə",
		RVariant: "ɻ",
		GVariant: "ɰ",
		Simple:   true,
	})
	require.NoError(t, err)
	assert.NotZero(t, tr.ID)
	assert.Equal(t, "mapuche", tr.Source)
	assert.Equal(t, "mapuʧe", tr.IPA)
	assert.Equal(t, "ə", tr.UVariant)
	assert.Equal(t, "ɻ", tr.RVariant)
	assert.Equal(t, "ɰ", tr.GVariant)
	assert.True(t, tr.Simple)
	assert.True(t, fixed.Equal(tr.CreatedAt))

	got, err := repo.GetTranscription(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, tr, got)

	rows, err := repo.DeleteTranscription(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = repo.GetTranscription(ctx, tr.ID)
	assert.True(t, db.IsNoRows(err))

	rows, err = repo.DeleteTranscription(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestListTranscriptions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	empty, err := repo.ListTranscriptions(ctx, db.ListTranscriptionsParams{Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, w := range []string{"ruka", "küme", "che"} {
		createTranscription(t, repo, w, w)
	}

	count, err := repo.CountTranscriptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	page, err := repo.ListTranscriptions(ctx, db.ListTranscriptionsParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "che", page[0].Source)
	assert.Equal(t, "küme", page[1].Source)

	page, err = repo.ListTranscriptions(ctx, db.ListTranscriptionsParams{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "ruka", page[0].Source)
}

func TestNewOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapuipa.db")
	ctx := context.Background()

	repo, err := New(ctx, "sqlite://"+path)
	require.NoError(t, err)
	createTranscription(t, repo, "ñuke", "ɲuke")
	require.NoError(t, repo.Close())

	// Reopening keeps existing rows.
	repo, err = New(ctx, path)
	require.NoError(t, err)
	defer repo.Close()

	count, err := repo.CountTranscriptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
