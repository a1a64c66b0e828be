// Package tui is the interactive terminal front end: text typed on the left
// is transcribed live using the session's variant settings.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jusunglee/mapuipa/internal/chart"
	"github.com/jusunglee/mapuipa/internal/logger"
	"github.com/jusunglee/mapuipa/internal/preferences"
	"github.com/jusunglee/mapuipa/internal/textio"
	"github.com/jusunglee/mapuipa/internal/version"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	outputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Foreground(lipgloss.Color("229")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

const keyGuide = `Type Mapudungun text in the upper box; the IPA updates as you type.
  F2 F3 F4  cycle the ü, r and g variants
  F5        toggle simple IPA
  F6        reset to defaults
  F7        copy the IPA to the clipboard
  F8 F9     show the mapping table or IPA chart
  ctrl+s    save the IPA (--export path)
  --import  load a .txt file on start`

type Options struct {
	Store *preferences.Store
	// ImportPath is read into the editor on start.
	ImportPath string
	// ExportPath is where ctrl+s writes the output.
	ExportPath string
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
	Log       *slog.Logger
}

type Model struct {
	store      *preferences.Store
	input      textarea.Model
	output     string
	exportPath string
	copy       func(string) error
	log        *slog.Logger

	showHelp  bool
	showTable bool
	showChart bool
	notice    string
	noticeErr bool
	width     int
}

func New(opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Escribe en mapudungun..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(6)
	ta.Focus()

	m := Model{
		store:      opts.Store,
		input:      ta,
		exportPath: opts.ExportPath,
		copy:       opts.Clipboard,
		log:        opts.Log,
		width:      80,
	}
	if m.store == nil {
		m.store = preferences.NewStore()
	}
	if m.copy == nil {
		m.copy = clipboard.WriteAll
	}
	if m.exportPath == "" {
		m.exportPath = "mapuipa-output.txt"
	}
	if m.log == nil {
		m.log = logger.Discard()
	}

	if opts.ImportPath != "" {
		text, err := textio.ReadFile(opts.ImportPath)
		if err != nil {
			m.setError("import failed", err)
		} else {
			m.input.SetValue(text)
			m.setNotice(fmt.Sprintf("Imported %s", opts.ImportPath))
		}
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// SetInput replaces the editor contents and recomputes the output.
func (m *Model) SetInput(text string) {
	m.input.SetValue(text)
	m.refresh()
}

func (m Model) Input() string  { return m.input.Value() }
func (m Model) Output() string { return m.output }
func (m Model) Notice() string { return m.notice }

func (m *Model) refresh() {
	m.output = m.store.Convert(m.input.Value())
}

func (m *Model) setNotice(msg string) {
	m.notice = msg
	m.noticeErr = false
	m.log.Info(msg)
}

func (m *Model) setError(msg string, err error) {
	m.notice = fmt.Sprintf("%s: %v", msg, err)
	m.noticeErr = true
	m.log.Warn(msg, "error", err)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(20, msg.Width-4))
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyF1:
			m.showHelp = !m.showHelp
			return m, nil
		case tea.KeyF2:
			m.setNotice("ü → " + m.store.CycleUVariant().String())
		case tea.KeyF3:
			m.setNotice("r → " + m.store.CycleRVariant().String())
		case tea.KeyF4:
			m.setNotice("g → " + m.store.CycleGVariant().String())
		case tea.KeyF5:
			if m.store.ToggleSimple() {
				m.setNotice("Simple IPA on")
			} else {
				m.setNotice("Simple IPA off")
			}
		case tea.KeyF6:
			m.store.Reset()
			m.setNotice("Preferences reset")
		case tea.KeyF7:
			m.copyOutput()
			return m, nil
		case tea.KeyF8:
			m.showTable = !m.showTable
			return m, nil
		case tea.KeyF9:
			m.showChart = !m.showChart
			return m, nil
		case tea.KeyCtrlS:
			m.export()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.refresh()
			return m, cmd
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) copyOutput() {
	if m.output == "" {
		m.setError("copy failed", textio.ErrEmptyOutput)
		return
	}
	if err := m.copy(m.output); err != nil {
		m.setError("copy failed", err)
		return
	}
	m.setNotice("Copied output to clipboard")
}

func (m *Model) export() {
	path, err := textio.WriteFile(m.exportPath, m.output)
	if err != nil {
		if errors.Is(err, textio.ErrEmptyOutput) {
			m.setError("export failed", errors.New("there is no output to save"))
			return
		}
		m.setError("export failed", err)
		return
	}
	m.setNotice("Exported to " + path)
}

func (m Model) statusBar() string {
	stats := textio.Count(m.input.Value())
	return statusStyle.Render(fmt.Sprintf("%s | %s", stats, m.store.Configuration()))
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Mapudungun → IPA " + version.Version))
	s.WriteString("\n\n")
	s.WriteString(labelStyle.Render("Orthography"))
	s.WriteString("\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")
	s.WriteString(labelStyle.Render("IPA"))
	s.WriteString("\n")
	s.WriteString(outputStyle.Width(max(20, m.width-4)).Render(m.output))
	s.WriteString("\n")
	s.WriteString(m.statusBar())
	s.WriteString("\n")

	if m.notice != "" {
		if m.noticeErr {
			s.WriteString(errorStyle.Render(m.notice))
		} else {
			s.WriteString(noticeStyle.Render(m.notice))
		}
		s.WriteString("\n")
	}

	if m.showHelp {
		s.WriteString("\n")
		s.WriteString(outputStyle.Render(version.About() + "\n\n" + keyGuide + "\n\n" + version.Guide))
		s.WriteString("\n")
	}
	if m.showTable {
		s.WriteString("\n")
		s.WriteString(chart.MappingTable(m.store.Table()))
		s.WriteString("\n")
	}
	if m.showChart {
		s.WriteString("\n")
		s.WriteString(chart.IPAChart(m.store.Configuration()))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("F1 help • F2 ü • F3 r • F4 g • F5 simple • F6 reset • F7 copy • F8 table • F9 chart • ctrl+s save • esc quit"))
	return s.String()
}

// Run starts the program and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
