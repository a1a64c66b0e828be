package textio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jusunglee/mapuipa/internal/transliteration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  mari mari  \n"), 0o644))

	text, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mari mari", text)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "latin1.txt")
	require.NoError(t, os.WriteFile(bad, []byte{0x6b, 0xfc, 0x6d, 0x65}, 0o644))
	_, err = ReadFile(bad)
	assert.ErrorIs(t, err, ErrNotUTF8)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(filepath.Join(dir, "out"), "maput͡ʃe\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "maput͡ʃe", string(data))

	path, err = WriteFile(filepath.Join(dir, "keep.ipa"), "x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "keep.ipa"), path)
}

func TestWriteFileRejectsEmptyOutput(t *testing.T) {
	_, err := WriteFile(filepath.Join(t.TempDir(), "out.txt"), "   ")
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestCount(t *testing.T) {
	tests := []struct {
		input string
		want  Stats
	}{
		{"", Stats{}},
		{"   ", Stats{}},
		{"mapuche", Stats{Lines: 1, Words: 1, Characters: 7}},
		{"mari mari\nküme", Stats{Lines: 2, Words: 3, Characters: 14}},
	}
	for _, tt := range tests {
		got := Count(tt.input)
		if got != tt.want {
			t.Errorf("Count(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
	assert.Equal(t, "Lines: 1 | Words: 1 | Characters: 7", Count("mapuche").String())
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "words.ipa.txt"), OutputPath(filepath.Join("in", "words.txt"), "out"))
	assert.Equal(t, filepath.Join("in", "words.ipa.txt"), OutputPath(filepath.Join("in", "words.txt"), ""))
}

func TestConvertFiles(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
	}
	require.NoError(t, os.WriteFile(inputs[0], []byte("Mapuche"), 0o644))
	require.NoError(t, os.WriteFile(inputs[1], []byte("küme\nruka"), 0o644))

	outDir := filepath.Join(dir, "out")
	convert := func(s string) string {
		return transliteration.Convert(s, transliteration.DefaultConfiguration())
	}

	results, err := ConvertFiles(context.Background(), convert, inputs, outDir)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, filepath.Join(outDir, "a.ipa.txt"), results[0].Output)
	data, err := os.ReadFile(results[0].Output)
	require.NoError(t, err)
	assert.Equal(t, "maput͡ʃe", string(data))

	data, err = os.ReadFile(results[1].Output)
	require.NoError(t, err)
	assert.Equal(t, "kɨme\nʐuka", string(data))
	assert.Equal(t, 2, results[1].Stats.Lines)
}

func TestConvertFilesFailsOnMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := ConvertFiles(context.Background(), strings.ToUpper, []string{filepath.Join(dir, "nope.txt")}, "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvertFilesRejectsSharedOutput(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a", "words.txt")
	b := filepath.Join(dir, "b", "words.txt")
	for path, text := range map[string]string{a: "che", b: "ruka"} {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
	outDir := filepath.Join(dir, "out")

	results, err := ConvertFiles(context.Background(), strings.ToUpper, []string{a, b}, outDir)
	require.ErrorIs(t, err, ErrOutputCollision)
	assert.Nil(t, results)
	assert.NoFileExists(t, filepath.Join(outDir, "words.ipa.txt"))

	// Next to each input the names no longer clash.
	results, err = ConvertFiles(context.Background(), strings.ToUpper, []string{a, b}, "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	for i, want := range []string{"CHE", "RUKA"} {
		data, err := os.ReadFile(results[i].Output)
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestConvertFilesSkipsBlankInputs(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
	}
	require.NoError(t, os.WriteFile(inputs[0], []byte("che"), 0o644))
	require.NoError(t, os.WriteFile(inputs[1], []byte("\n  \n"), 0o644))

	results, err := ConvertFiles(context.Background(), strings.ToUpper, inputs, "")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.False(t, results[0].Skipped)
	assert.FileExists(t, results[0].Output)

	assert.True(t, results[1].Skipped)
	assert.Empty(t, results[1].Output)
	assert.NoFileExists(t, filepath.Join(dir, "b.ipa.txt"))
}
