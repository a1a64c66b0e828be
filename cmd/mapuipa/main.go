// mapuipa transcribes Mapudungun orthography to IPA from the command line.
//
//	mapuipa --text "mari mari"
//	echo "küme antü" | mapuipa --u-variant schwa --simple
//	mapuipa --output-dir ipa/ texts/*.txt
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jusunglee/mapuipa/internal/chart"
	"github.com/jusunglee/mapuipa/internal/logger"
	"github.com/jusunglee/mapuipa/internal/textio"
	"github.com/jusunglee/mapuipa/internal/transliteration"
	"github.com/jusunglee/mapuipa/internal/version"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := mainE(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("mapuipa")

	var (
		uVariant  = fs.StringLong("u-variant", "", "sixth vowel: ɨ|barred-i, ə|schwa, ɯ|unrounded-u, sadowsky")
		rVariant  = fs.StringLong("r-variant", "", "r: ʐ|fricative, ɻ|approximant")
		gVariant  = fs.StringLong("g-variant", "", "g: ɣ|fricative, ɰ|approximant")
		simple    = fs.BoolLong("simple", "use single-symbol IPA")
		text      = fs.StringLong("text", "", "text to transcribe (default: stdin)")
		outputDir = fs.StringLong("output-dir", "", "directory for converted files (default: next to each input)")
		showTable = fs.BoolLong("table", "print the orthography → IPA table")
		showChart = fs.BoolLong("chart", "print the IPA chart")
		explain   = fs.BoolLong("explain", "show how the text was segmented")
		showVer   = fs.BoolLong("version", "print version and exit")
		showAbout = fs.BoolLong("about", "print a short usage guide and exit")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("MAPUIPA")); err != nil {
		fmt.Fprintf(stdout, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			fmt.Fprintf(stdout, "\n%s\n", version.Guide)
			return nil
		}
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.NewWithWriter(os.Stderr)
	slog.SetDefault(log)

	if *showVer {
		fmt.Fprintf(stdout, "mapuipa %s\n", version.Version)
		return nil
	}
	if *showAbout {
		fmt.Fprintf(stdout, "%s\n\n%s\n", version.About(), version.Guide)
		return nil
	}

	cfg, err := transliteration.NewConfiguration(*uVariant, *rVariant, *gVariant, *simple)
	if err != nil {
		return err
	}

	if *showTable {
		fmt.Fprintln(stdout, chart.MappingTable(transliteration.DefaultCache.Table(cfg)))
	}
	if *showChart {
		fmt.Fprintln(stdout, chart.IPAChart(cfg))
	}

	convert := func(s string) string { return transliteration.Convert(s, cfg) }

	if files := fs.GetArgs(); len(files) > 0 {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		results, err := textio.ConvertFiles(ctx, convert, files, *outputDir)
		for _, r := range results {
			if r.Skipped {
				log.Warn("skipped blank input", "input", r.Input)
				fmt.Fprintf(stdout, "%s: skipped (blank)\n", r.Input)
				continue
			}
			log.Info("converted", "input", r.Input, "output", r.Output, "words", r.Stats.Words)
			fmt.Fprintf(stdout, "%s → %s (%s)\n", r.Input, r.Output, r.Stats)
		}
		return err
	}

	input := *text
	if input == "" {
		if *showTable || *showChart {
			return nil
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = strings.TrimSpace(string(data))
	}

	if *explain {
		fmt.Fprintln(stdout, chart.Explain(cfg, input))
	}
	fmt.Fprintln(stdout, convert(input))
	return nil
}
