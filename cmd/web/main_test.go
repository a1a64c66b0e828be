package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jusunglee/mapuipa/internal/db/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheme(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"sqlite://./mapuipa.db", "sqlite"},
		{"postgres://u:p@localhost/db", "postgres"},
		{"postgresql://localhost/db", "postgresql"},
		{"./plain.db", "sqlite"},
		{"mysql://localhost/db", "mysql"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scheme(tt.url), tt.url)
	}
}

func TestOpenRepository(t *testing.T) {
	ctx := context.Background()

	repo, err := openRepository(ctx, "sqlite://"+filepath.Join(t.TempDir(), "t.db"))
	require.NoError(t, err)
	defer repo.Close()
	_, ok := repo.(*sqlite.Repository)
	assert.True(t, ok)

	_, err = openRepository(ctx, "mysql://localhost/db")
	assert.ErrorContains(t, err, "unsupported")
}
