// tui is the interactive transcriber. Logs go to --log-file because the
// terminal belongs to the UI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/jusunglee/mapuipa/internal/logger"
	"github.com/jusunglee/mapuipa/internal/preferences"
	"github.com/jusunglee/mapuipa/internal/transliteration"
	"github.com/jusunglee/mapuipa/internal/tui"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("mapuipa-tui")

	var (
		uVariant   = fs.StringLong("u-variant", "", "initial sixth vowel variant")
		rVariant   = fs.StringLong("r-variant", "", "initial r variant")
		gVariant   = fs.StringLong("g-variant", "", "initial g variant")
		simple     = fs.BoolLong("simple", "start in simple IPA mode")
		importPath = fs.StringLong("import", "", "text file to load on start")
		exportPath = fs.StringLong("export", "mapuipa-output.txt", "file written by ctrl+s")
		logFile    = fs.StringLong("log-file", "", "write logs to this file")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("MAPUIPA")); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	cfg, err := transliteration.NewConfiguration(*uVariant, *rVariant, *gVariant, *simple)
	if err != nil {
		return err
	}

	log := logger.Discard()
	if *logFile != "" {
		var closeLog func() error
		log, closeLog, err = logger.NewFile(*logFile)
		if err != nil {
			return err
		}
		defer closeLog()
	}
	log.Info("starting", "config", cfg.String())

	return tui.Run(tui.Options{
		Store:      preferences.NewStoreWith(cfg),
		ImportPath: *importPath,
		ExportPath: *exportPath,
		Log:        log,
	})
}
