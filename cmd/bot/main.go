package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/jusunglee/mapuipa/internal/bot"
	"github.com/jusunglee/mapuipa/internal/envsetup"
	"github.com/jusunglee/mapuipa/internal/health"
	"github.com/jusunglee/mapuipa/internal/logger"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	if envsetup.NeedsSetup(".env") && os.Getenv("DISCORD_TOKEN") == "" {
		ok, err := envsetup.Run(".env")
		if err != nil {
			return fmt.Errorf("running setup wizard: %w", err)
		}
		if !ok {
			return errors.New("setup cancelled")
		}
	}
	_ = godotenv.Load()

	fs := ff.NewFlagSet("mapuipa-bot")

	var (
		discordToken = fs.StringLong("discord-token", "", "Discord bot token")
		guildID      = fs.StringLong("discord-guild-id", "", "register commands to one guild (instant updates)")
		healthPort   = fs.IntLong("health-port", 8081, "port for the /health endpoint")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *discordToken == "" {
		return errors.New("discord-token is required")
	}

	log := logger.New()

	dg, err := discordgo.New("Bot " + *discordToken)
	if err != nil {
		return fmt.Errorf("creating Discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bot.New(log, bot.NewDiscordSession(dg), bot.Config{GuildID: *guildID})
	healthServer := health.New(*healthPort)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(healthServer.Start)
	g.Go(func() error {
		return b.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return healthServer.Shutdown(shutdownCtx)
	})

	log.InfoContext(ctx, "health endpoint listening", "port", *healthPort)
	return g.Wait()
}
