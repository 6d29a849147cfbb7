// Package tui implements the interactive chat interface following the
// Elm architecture. It renders a scrolling transcript, a question
// input, and typewriter-paced answers.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/ghostvault-labs/ghostvault/internal/adapters/driving/tui/styles"
	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driving"
	"github.com/ghostvault-labs/ghostvault/internal/core/services"
)

// DefaultStreamDelay paces the typewriter output when no delay is
// configured.
const DefaultStreamDelay = 10 * time.Millisecond

// Options configures the chat UI.
type Options struct {
	// StreamDelay is the pause between revealed characters. Zero or
	// negative disables the typewriter effect.
	StreamDelay time.Duration

	// Styles overrides the default look. Nil uses the default theme.
	Styles *styles.Styles
}

// Model is the chat UI model. It implements tea.Model.
type Model struct {
	ctx     context.Context
	session driving.ChatSession
	styles  *styles.Styles

	viewport viewport.Model
	input    textinput.Model

	// transcript holds the rendered conversation blocks.
	transcript []string

	// pending is a fully rendered answer being revealed; shown counts
	// the revealed runes.
	pending []rune
	shown   int
	limiter *rate.Limiter
	delay   time.Duration

	waiting bool
	ready   bool
	width   int
	height  int
}

// Ensure Model implements tea.Model.
var _ tea.Model = (*Model)(nil)

// NewModel creates a chat model over an established session.
func NewModel(ctx context.Context, session driving.ChatSession, opts Options) *Model {
	s := opts.Styles
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask a question, or /list, /stats, /delete <file>..."
	ti.Focus()
	ti.CharLimit = 512

	m := &Model{
		ctx:     ctx,
		session: session,
		styles:  s,
		input:   ti,
		delay:   opts.StreamDelay,
	}
	m.transcript = append(m.transcript, s.Banner.Render(session.Welcome(ctx)))
	return m
}

// Init starts the input cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages following the Elm architecture.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit()
		}

	case answerMsg:
		return m.handleAnswer(msg.answer)

	case answerErrMsg:
		return m.handleError(msg.err)

	case revealMsg:
		return m.handleReveal()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Input and status bar take the bottom rows.
	viewportHeight := msg.Height - 4
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = viewportHeight
	}
	m.input.Width = msg.Width - 6

	m.refreshViewport()
	return m, nil
}

func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.waiting || m.streaming() {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	switch strings.ToLower(text) {
	case "/exit", "/quit", "/bye":
		return m, tea.Quit
	}

	m.transcript = append(m.transcript,
		m.styles.UserLabel.Render("You: ")+m.styles.Normal.Render(text))
	m.input.SetValue("")
	m.waiting = true
	m.refreshViewport()

	return m, m.askCmd(text)
}

func (m *Model) askCmd(text string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.session.Ask(m.ctx, text)
		if err != nil {
			return answerErrMsg{err: err}
		}
		return answerMsg{answer: answer}
	}
}

func (m *Model) handleAnswer(answer *driving.Answer) (tea.Model, tea.Cmd) {
	m.waiting = false
	rendered := m.renderAnswer(answer)

	// Command output appears at once; answers are typed out.
	if answer.Command || m.delay <= 0 {
		m.transcript = append(m.transcript, rendered)
		m.refreshViewport()
		return m, nil
	}

	m.pending = []rune(rendered)
	m.shown = 0
	m.limiter = rate.NewLimiter(rate.Every(m.delay), 1)
	return m, m.revealCmd()
}

func (m *Model) handleError(err error) (tea.Model, tea.Cmd) {
	m.waiting = false

	text := fmt.Sprintf("Error: %v", err)
	if errors.Is(err, domain.ErrModelUnavailable) {
		text += "\nIs Ollama running? Try `ollama serve`."
	}
	m.transcript = append(m.transcript, m.styles.Error.Render(text))
	m.refreshViewport()
	return m, nil
}

func (m *Model) handleReveal() (tea.Model, tea.Cmd) {
	if !m.streaming() {
		return m, nil
	}

	m.shown++
	if m.shown >= len(m.pending) {
		m.transcript = append(m.transcript, string(m.pending))
		m.pending = nil
		m.shown = 0
		m.refreshViewport()
		return m, nil
	}

	m.refreshViewport()
	return m, m.revealCmd()
}

// revealCmd waits out the per-character budget, then advances the
// reveal. The limiter keeps pacing steady regardless of render cost.
func (m *Model) revealCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.limiter.Wait(m.ctx); err != nil {
			return nil
		}
		return revealMsg{}
	}
}

func (m *Model) streaming() bool {
	return len(m.pending) > 0
}

func (m *Model) renderAnswer(answer *driving.Answer) string {
	body := services.FormatAnswer(answer)
	if answer.Command {
		return m.styles.Muted.Render(body)
	}
	return m.styles.AssistantLabel.Render("GhostVault: ") + m.styles.Normal.Render(body)
}

// refreshViewport re-renders the transcript and follows the tail.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	content := strings.Join(m.transcript, "\n\n")
	if m.streaming() {
		content += "\n\n" + string(m.pending[:m.shown])
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// View renders the chat screen.
func (m *Model) View() string {
	if !m.ready {
		return "Starting GhostVault..."
	}

	status := fmt.Sprintf("Persona: %s", domain.PersonaDisplayName(m.session.Persona()))
	switch {
	case m.waiting:
		status += "  ·  thinking..."
	case m.streaming():
		status += "  ·  answering..."
	default:
		status += "  ·  Enter to send, Ctrl+C to quit"
	}

	return strings.Join([]string{
		m.viewport.View(),
		m.styles.InputField.Render(m.input.View()),
		m.styles.StatusBar.Render(status),
	}, "\n")
}
