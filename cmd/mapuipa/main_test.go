package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jusunglee/mapuipa/internal/transliteration"
	"github.com/jusunglee/mapuipa/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := mainE(context.Background(), args, strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", []string{"--text", "Mapuche"}, "maput͡ʃe\n"},
		{"simple", []string{"--text", "mapuche", "--simple"}, "mapuʧe\n"},
		{"variants", []string{"--text", "rüga", "--u-variant", "schwa", "--r-variant", "ɻ", "--g-variant", "approximant"}, "ɻəɰa\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestStdin(t *testing.T) {
	out, err := run(t, "  küme antü\n")
	require.NoError(t, err)
	assert.Equal(t, "kɨme antɨ\n", out)
}

func TestInvalidVariant(t *testing.T) {
	_, err := run(t, "", "--text", "ü", "--u-variant", "ø")
	assert.ErrorIs(t, err, transliteration.ErrInvalidVariant)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "mapuipa "+version.Version+"\n", out)
}

func TestTableAndChartWithoutText(t *testing.T) {
	out, err := run(t, "ignored", "--table", "--chart")
	require.NoError(t, err)
	assert.Contains(t, out, "Orthography → IPA")
	assert.Contains(t, out, "Variants:")
	assert.NotContains(t, out, "ignored")
}

func TestExplain(t *testing.T) {
	out, err := run(t, "", "--text", "che!", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "rule")
	assert.Contains(t, out, "kept")
	assert.True(t, strings.HasSuffix(out, "t͡ʃe!\n"))
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "saludo.txt")
	require.NoError(t, os.WriteFile(in, []byte("mari mari"), 0o644))
	outDir := filepath.Join(dir, "out")

	out, err := run(t, "", "--output-dir", outDir, in)
	require.NoError(t, err)
	assert.Contains(t, out, "Words: 2")

	data, err := os.ReadFile(filepath.Join(outDir, "saludo.ipa.txt"))
	require.NoError(t, err)
	assert.Equal(t, "maʐi maʐi", string(data))
}

func TestFilesBlankAndClashing(t *testing.T) {
	dir := t.TempDir()
	blank := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(blank, []byte("\n"), 0o644))

	out, err := run(t, "", blank)
	require.NoError(t, err)
	assert.Contains(t, out, "blank.txt: skipped (blank)")

	a := filepath.Join(dir, "a", "words.txt")
	b := filepath.Join(dir, "b", "words.txt")
	for _, p := range []string{a, b} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("che"), 0o644))
	}
	_, err = run(t, "", "--output-dir", filepath.Join(dir, "out"), a, b)
	assert.ErrorContains(t, err, "share an output file")
}

func TestAboutAndHelp(t *testing.T) {
	out, err := run(t, "", "--about")
	require.NoError(t, err)
	assert.Contains(t, out, version.About())
	assert.Contains(t, out, "sadowsky")

	out, err = run(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--u-variant")
	assert.Contains(t, out, version.Guide)
}

func TestUnknownFlag(t *testing.T) {
	out, err := run(t, "", "--nope")
	assert.Error(t, err)
	assert.Contains(t, out, "--u-variant")
}
