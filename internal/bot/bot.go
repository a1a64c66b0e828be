package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/jusunglee/mapuipa/internal/metrics"
	"github.com/jusunglee/mapuipa/internal/preferences"
	"github.com/jusunglee/mapuipa/internal/transliteration"
	"github.com/samber/lo"
)

// maxInputRunes keeps replies under Discord's 2000 character message limit.
const maxInputRunes = 500

type Config struct {
	GuildID string
}

type Bot struct {
	log      *slog.Logger
	session  DiscordSession
	sessions *preferences.Sessions
	limiter  *RateLimiter
	config   Config
}

func New(log *slog.Logger, session DiscordSession, config Config) *Bot {
	return &Bot{
		log:      log,
		session:  session,
		sessions: preferences.NewSessions(),
		limiter:  NewRateLimiter(),
		config:   config,
	}
}

func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.log.InfoContext(ctx, "connected to Discord", "username", r.User.Username)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening Discord connection: %w", err)
	}

	if err := b.registerCommands(ctx); err != nil {
		b.session.Close()
		return fmt.Errorf("registering commands: %w", err)
	}

	b.log.InfoContext(ctx, "bot is running, press Ctrl+C to stop")

	<-ctx.Done()
	b.log.Info("shutdown signal received")
	if err := b.session.Close(); err != nil {
		b.log.Warn("closing Discord session", "error", err)
	}
	b.log.Info("shut down complete")

	return nil
}

func (b *Bot) registerCommands(ctx context.Context) error {
	guildID := b.config.GuildID
	if guildID != "" {
		b.log.InfoContext(ctx, "registering commands to guild", "guild_id", guildID)
	} else {
		b.log.InfoContext(ctx, "registering commands globally (may take up to 1 hour to propagate)")
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.GetUserID(), guildID, commands)
	if err != nil {
		return fmt.Errorf("bulk overwrite commands: %w", err)
	}
	b.log.InfoContext(ctx, "registered commands", "count", len(commands))
	return nil
}

func choices[T fmt.Stringer](values []T) []*discordgo.ApplicationCommandOptionChoice {
	return lo.Map(values, func(v T, _ int) *discordgo.ApplicationCommandOptionChoice {
		return &discordgo.ApplicationCommandOptionChoice{Name: v.String(), Value: v.String()}
	})
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "ipa",
		Description: "Transcribe Mapudungun text to IPA",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "Text in Mapudungun orthography",
				Required:    true,
				MaxLength:   maxInputRunes,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "simple",
				Description: "Use single-symbol IPA for this reply only",
			},
		},
	},
	{
		Name:        "ipa-prefs",
		Description: "Show or change your transcription variants",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "u",
				Description: "Sixth vowel (ü)",
				Choices:     choices(transliteration.UVariants()),
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "r",
				Description: "Realization of r",
				Choices:     choices(transliteration.RVariants()),
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "g",
				Description: "Realization of g",
				Choices:     choices(transliteration.GVariants()),
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "simple",
				Description: "Single-symbol IPA",
			},
		},
	},
	{
		Name:        "ipa-reset",
		Description: "Restore the default transcription variants",
	},
}

type handlerResult struct {
	Response  string
	Ephemeral bool
	Err       error
}

func (b *Bot) handleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type == discordgo.InteractionApplicationCommand {
		b.handleCommand(i)
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (b *Bot) handleCommand(i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()
	cmd := i.ApplicationCommandData().Name
	userID := interactionUserID(i)

	if !b.limiter.Allow(userID) {
		metrics.RateLimitHits.WithLabelValues("bot").Inc()
		wait := b.limiter.RetryAfter(userID).Round(time.Second)
		b.respond(ctx, i, handlerResult{
			Response:  fmt.Sprintf("You're sending commands too quickly. Try again in %s.", wait),
			Ephemeral: true,
		})
		return
	}

	var result handlerResult
	switch cmd {
	case "ipa":
		result = b.handleIPA(userID, i)
	case "ipa-prefs":
		result = b.handlePrefs(userID, i)
	case "ipa-reset":
		result = b.handleReset(userID)
	default:
		result = handlerResult{Response: "Unknown command.", Ephemeral: true, Err: fmt.Errorf("unknown command %q", cmd)}
	}

	b.respond(ctx, i, result)

	if result.Err == nil {
		return
	}

	var ue *userError
	if errors.As(result.Err, &ue) {
		b.log.WarnContext(ctx, "user error", "command", cmd, "error", result.Err, "user_id", userID)
	} else {
		b.log.ErrorContext(ctx, "command failed", "command", cmd, "error", result.Err, "user_id", userID)
	}
}

type userError struct {
	Err error
}

func (e *userError) Error() string {
	return e.Err.Error()
}

func (e *userError) Unwrap() error {
	return e.Err
}

func newUserError(err error) *userError {
	return &userError{Err: err}
}

func findOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	return lo.Find(options, func(opt *discordgo.ApplicationCommandInteractionDataOption) bool {
		return opt.Name == name
	})
}

func getOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := findOption(options, name); ok {
		return opt.StringValue()
	}
	return ""
}

func (b *Bot) handleIPA(userID string, i *discordgo.InteractionCreate) handlerResult {
	options := i.ApplicationCommandData().Options
	text := strings.TrimSpace(getOption(options, "text"))
	if text == "" {
		return handlerResult{Response: "Give me some text to transcribe.", Ephemeral: true, Err: newUserError(errors.New("empty text"))}
	}
	if n := utf8.RuneCountInString(text); n > maxInputRunes {
		return handlerResult{
			Response:  fmt.Sprintf("Text is too long (%d characters, max %d).", n, maxInputRunes),
			Ephemeral: true,
			Err:       newUserError(fmt.Errorf("text too long: %d runes", n)),
		}
	}

	cfg := b.sessions.Get(userID).Configuration()
	if opt, ok := findOption(options, "simple"); ok {
		cfg.Simple = opt.BoolValue()
	}

	normalized := transliteration.Normalize(text)
	ipa := transliteration.Transliterate(normalized, cfg)
	metrics.ObserveTransliteration("bot", cfg.Simple, utf8.RuneCountInString(normalized))

	return handlerResult{Response: formatIPA(text, ipa, cfg)}
}

func formatIPA(text, ipa string, cfg transliteration.Configuration) string {
	return fmt.Sprintf("**%s**\n/%s/\n-# %s", text, ipa, cfg)
}

func (b *Bot) handlePrefs(userID string, i *discordgo.InteractionCreate) handlerResult {
	options := i.ApplicationCommandData().Options
	store := b.sessions.Get(userID)

	if len(options) == 0 {
		return handlerResult{Response: "Your settings: " + store.Configuration().String(), Ephemeral: true}
	}

	var (
		u, uErr = parseIfSet(getOption(options, "u"), transliteration.ParseUVariant)
		r, rErr = parseIfSet(getOption(options, "r"), transliteration.ParseRVariant)
		g, gErr = parseIfSet(getOption(options, "g"), transliteration.ParseGVariant)
	)
	if err := errors.Join(uErr, rErr, gErr); err != nil {
		metrics.InvalidConfigurations.WithLabelValues("bot").Inc()
		return handlerResult{Response: "Unknown variant: " + err.Error(), Ephemeral: true, Err: newUserError(err)}
	}

	err := store.Update(func(cfg *transliteration.Configuration) {
		if u != nil {
			cfg.U = *u
		}
		if r != nil {
			cfg.R = *r
		}
		if g != nil {
			cfg.G = *g
		}
		if opt, ok := findOption(options, "simple"); ok {
			cfg.Simple = opt.BoolValue()
		}
	})
	if err != nil {
		metrics.InvalidConfigurations.WithLabelValues("bot").Inc()
		return handlerResult{Response: "Those settings are not valid.", Ephemeral: true, Err: newUserError(err)}
	}

	return handlerResult{Response: "Updated: " + store.Configuration().String(), Ephemeral: true}
}

// parseIfSet returns nil for an option the user left out.
func parseIfSet[T any](v string, parse func(string) (T, error)) (*T, error) {
	if v == "" {
		return nil, nil
	}
	parsed, err := parse(v)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (b *Bot) handleReset(userID string) handlerResult {
	b.sessions.Get(userID).Reset()
	return handlerResult{
		Response:  "Reset to defaults: " + transliteration.DefaultConfiguration().String(),
		Ephemeral: true,
	}
}

func (b *Bot) respond(ctx context.Context, i *discordgo.InteractionCreate, result handlerResult) {
	data := &discordgo.InteractionResponseData{Content: result.Response}
	if result.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.log.ErrorContext(ctx, "failed to respond to interaction", "error", err)
	}
}
