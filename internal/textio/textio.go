// Package textio reads Mapudungun text from plain UTF-8 files and writes IPA
// output back to them.
package textio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotUTF8 is returned when an imported file is not valid UTF-8.
	ErrNotUTF8 = errors.New("file is not valid UTF-8")
	// ErrEmptyOutput is returned when there is nothing to export.
	ErrEmptyOutput = errors.New("there is no IPA output to export")
	// ErrOutputCollision is returned when two inputs would write the same file.
	ErrOutputCollision = errors.New("inputs share an output file")
)

// ReadFile loads a UTF-8 text file and trims surrounding whitespace.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("reading %s: %w", path, ErrNotUTF8)
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteFile saves text as UTF-8. A path without an extension gets ".txt".
// It returns the path actually written.
func WriteFile(path, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyOutput
	}
	if filepath.Ext(path) == "" {
		path += ".txt"
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Stats are the counts shown in the status line.
type Stats struct {
	Lines      int
	Words      int
	Characters int
}

func (s Stats) String() string {
	return fmt.Sprintf("Lines: %d | Words: %d | Characters: %d", s.Lines, s.Words, s.Characters)
}

// Count measures trimmed text. Empty text has zero lines.
func Count(text string) Stats {
	text = strings.TrimSpace(text)
	if text == "" {
		return Stats{}
	}
	return Stats{
		Lines:      strings.Count(text, "\n") + 1,
		Words:      len(strings.Fields(text)),
		Characters: utf8.RuneCountInString(text),
	}
}

// Result describes one converted file. Blank inputs are Skipped and have no
// Output.
type Result struct {
	Input   string
	Output  string
	Stats   Stats
	Skipped bool
}

// OutputPath is where ConvertFiles writes the IPA for input.
func OutputPath(input, outDir string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, name+".ipa.txt")
}

// ConvertFiles reads every input, converts it and writes <name>.ipa.txt into
// outDir (or next to the input when outDir is empty). Files are processed
// concurrently; the first failure cancels the rest. Blank inputs are skipped.
// On failure the results of files already written are returned with the error.
func ConvertFiles(ctx context.Context, convert func(string) string, inputs []string, outDir string) ([]Result, error) {
	outputs, err := outputPaths(inputs, outDir)
	if err != nil {
		return nil, err
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	results := make([]Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := ReadFile(in)
			if err != nil {
				return err
			}
			if text == "" {
				results[i] = Result{Input: in, Skipped: true}
				return nil
			}
			out, err := WriteFile(outputs[i], convert(text))
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			results[i] = Result{Input: in, Output: out, Stats: Count(text)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return lo.Filter(results, func(r Result, _ int) bool {
			return r.Input != ""
		}), err
	}
	return results, nil
}

// outputPaths resolves every output up front and rejects two inputs that map
// to the same file, e.g. a/words.txt and b/words.txt into one outDir.
func outputPaths(inputs []string, outDir string) ([]string, error) {
	outputs := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		out := filepath.Clean(OutputPath(in, outDir))
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%s and %s both write %s: %w", prev, in, out, ErrOutputCollision)
		}
		seen[out] = in
		outputs[i] = out
	}
	return outputs, nil
}
