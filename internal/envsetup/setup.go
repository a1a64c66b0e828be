// envsetup provides a lightweight .env configuration wizard.
// It runs on first bot startup when no .env file exists, collecting the
// Discord credentials and storage settings.
package envsetup

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultDatabaseURL = "sqlite://./mapuipa.db"

type step int

const (
	stepWelcome step = iota
	stepDiscord
	stepGuild
	stepDatabase
	stepAPIKey
	stepConfirm
	stepDone
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type model struct {
	path         string
	step         step
	discordToken string
	guildID      string
	databaseURL  string
	apiKey       string
	input        string
	err          error
}

func newModel(path string) model {
	return model{path: path, step: stepWelcome}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEnter:
			return m.handleEnter()

		case tea.KeyBackspace:
			if r := []rune(m.input); len(r) > 0 {
				m.input = string(r[:len(r)-1])
			}

		case tea.KeyRunes:
			m.input += string(msg.Runes)

		case tea.KeySpace:
			m.input += " "
		}
	}

	return m, nil
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	m.err = nil
	value := strings.TrimSpace(m.input)

	switch m.step {
	case stepWelcome:
		m.step = stepDiscord

	case stepDiscord:
		if value == "" {
			m.err = fmt.Errorf("Discord token is required")
			return m, nil
		}
		m.discordToken = value
		m.step = stepGuild

	case stepGuild:
		m.guildID = value
		m.step = stepDatabase

	case stepDatabase:
		if value == "" {
			value = defaultDatabaseURL
		}
		if !strings.HasPrefix(value, "sqlite://") && !strings.HasPrefix(value, "postgres://") && !strings.HasPrefix(value, "postgresql://") {
			m.err = fmt.Errorf("Database URL must start with sqlite:// or postgres://")
			return m, nil
		}
		m.databaseURL = value
		m.step = stepAPIKey

	case stepAPIKey:
		m.apiKey = value
		m.step = stepConfirm

	case stepConfirm:
		choice := strings.ToLower(value)
		switch choice {
		case "y", "yes", "":
			if err := m.writeEnvFile(); err != nil {
				m.err = err
				return m, nil
			}
			m.step = stepDone
			return m, tea.Quit
		case "n", "no":
			return newModel(m.path), nil
		}
	}

	m.input = ""
	return m, nil
}

func (m model) envContent() string {
	return fmt.Sprintf(`DATABASE_URL=%s
DISCORD_TOKEN=%s
DISCORD_GUILD_ID=%s
API_KEY=%s
`, m.databaseURL, m.discordToken, m.guildID, m.apiKey)
}

func (m model) writeEnvFile() error {
	return os.WriteFile(m.path, []byte(m.envContent()), 0600)
}

func (m model) prompt(label string, masked bool) string {
	in := m.input
	if masked {
		in = maskToken(in)
	}
	s := labelStyle.Render(label) + "\n> " + inputStyle.Render(in)
	if m.err != nil {
		s += "\n" + errorStyle.Render(m.err.Error())
	}
	return s
}

func (m model) View() string {
	var s strings.Builder

	switch m.step {
	case stepWelcome:
		s.WriteString(titleStyle.Render("mapuipa - Env Setup"))
		s.WriteString("\n\n")
		s.WriteString("This wizard will help you configure the bot.\n")
		s.WriteString("You'll need:\n\n")
		s.WriteString("  - A Discord bot token\n")
		s.WriteString("  - Optionally, a test server ID and a database URL\n")
		s.WriteString("\n")
		s.WriteString(dimStyle.Render("Press Enter to continue, Ctrl+C to exit"))

	case stepDiscord:
		s.WriteString(titleStyle.Render("Step 1: Discord Bot Token"))
		s.WriteString("\n\n")
		s.WriteString("To get your Discord bot token:\n\n")
		s.WriteString("  1. Go to " + linkStyle.Render("https://discord.com/developers/applications") + "\n")
		s.WriteString("  2. Create a new application (or select existing)\n")
		s.WriteString("  3. Go to the Bot section\n")
		s.WriteString("  4. Click 'Reset Token' to get your bot token\n")
		s.WriteString("\n")
		s.WriteString(m.prompt("Paste your Discord token here:", true))

	case stepGuild:
		s.WriteString(titleStyle.Render("Step 2: Test Server (optional)"))
		s.WriteString("\n\n")
		s.WriteString("Commands registered to one server update instantly.\n")
		s.WriteString("Enable Developer Mode, right-click your server, Copy Server ID.\n")
		s.WriteString("\n")
		s.WriteString(m.prompt("Server ID (Enter to register globally):", false))

	case stepDatabase:
		s.WriteString(titleStyle.Render("Step 3: Database"))
		s.WriteString("\n\n")
		s.WriteString("Saved transcriptions go to SQLite or PostgreSQL.\n")
		s.WriteString("\n")
		s.WriteString(m.prompt(fmt.Sprintf("Database URL (Enter for %s):", defaultDatabaseURL), false))

	case stepAPIKey:
		s.WriteString(titleStyle.Render("Step 4: Admin API Key (optional)"))
		s.WriteString("\n\n")
		s.WriteString("Required to delete saved transcriptions over HTTP.\n")
		s.WriteString("\n")
		s.WriteString(m.prompt("API key (Enter to disable deletes):", true))

	case stepConfirm, stepDone:
		s.WriteString(titleStyle.Render("Configuration Complete"))
		s.WriteString("\n\n")
		s.WriteString("Your configuration:\n\n")
		s.WriteString("  Discord:  " + successStyle.Render(maskToken(m.discordToken)) + "\n")
		s.WriteString("  Server:   " + successStyle.Render(orNone(m.guildID)) + "\n")
		s.WriteString("  Database: " + successStyle.Render(m.databaseURL) + "\n")
		s.WriteString("  API key:  " + successStyle.Render(orNone(maskToken(m.apiKey))) + "\n")
		s.WriteString("\n")
		s.WriteString(m.prompt("Save this configuration? [Y/n]:", false))
	}

	s.WriteString("\n")
	return s.String()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// Run starts the setup wizard and returns true if the .env file was written
func Run(path string) (bool, error) {
	p := tea.NewProgram(newModel(path))
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m := finalModel.(model)
	return m.step == stepDone, nil
}

// NeedsSetup checks if the .env file exists
func NeedsSetup(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}
