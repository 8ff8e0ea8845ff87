// Package tui runs a match in the terminal with Bubble Tea. The Bubble Tea
// event loop is the control goroutine: it turns keys and round outcomes into
// state transitions and shows the frames, status and score the loop posts.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/gameloop"
	"github.com/vovakirdan/tui-pong/internal/logging"
	"github.com/vovakirdan/tui-pong/internal/notify"
)

// Lines around the board: one header line, a status line and a help line.
const (
	headerLines = 1
	footerLines = 2
)

// Messages fed back into the model by its commands.
type (
	frameMsg   struct{}
	statusMsg  notify.StatusUpdate
	scoreMsg   notify.ScoreUpdate
	outcomeMsg gameloop.State
	stoppedMsg struct{}
)

// Match is what the model drives: the loop plus the board's outcome feed and
// paddle input.
type Match struct {
	Loop     *gameloop.Loop
	Outcomes <-chan gameloop.State
	Nudge    func(dir int)
}

// Model is the Bubble Tea model of a running match.
type Model struct {
	ctx     context.Context
	match   Match
	surface *Surface
	bridge  *notify.Bridge
	logger  *log.Logger

	keys KeyMap
	help help.Model

	frame  string
	status notify.StatusUpdate
	score  notify.ScoreUpdate

	width    int
	height   int
	sized    bool
	quitting bool
}

// NewModel creates the control model. ctx bounds every loop goroutine the
// model starts, including rematches.
func NewModel(ctx context.Context, match Match, s *Surface, bridge *notify.Bridge, logger *log.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		ctx:     ctx,
		match:   match,
		surface: s,
		bridge:  bridge,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    h,
		score:   notify.ScoreUpdate{Player: "0", Opponent: "0"},
	}
}

// Init starts listening to the surface, the bridge and the board.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitFrame(m.surface),
		waitStatus(m.bridge.Status()),
		waitScore(m.bridge.Scores()),
		waitOutcome(m.match.Outcomes),
	)
}

func waitFrame(s *Surface) tea.Cmd {
	return func() tea.Msg {
		<-s.Posted()
		return frameMsg{}
	}
}

func waitStatus(ch <-chan notify.StatusUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return statusMsg(u)
	}
}

func waitScore(ch <-chan notify.ScoreUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return scoreMsg(u)
	}
}

func waitOutcome(ch <-chan gameloop.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return outcomeMsg(s)
	}
}

func waitStopped(l *gameloop.Loop) tea.Cmd {
	return func() tea.Msg {
		<-l.Done()
		return stoppedMsg{}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case frameMsg:
		m.frame = m.surface.Frame()
		return m, waitFrame(m.surface)

	case statusMsg:
		m.status = notify.StatusUpdate(msg)
		return m, waitStatus(m.bridge.Status())

	case scoreMsg:
		m.score = notify.ScoreUpdate(msg)
		return m, waitScore(m.bridge.Scores())

	case outcomeMsg:
		m.setState(gameloop.State(msg))
		m.keys.Rematch.SetEnabled(m.match.Loop.Finished())
		return m, waitOutcome(m.match.Outcomes)

	case stoppedMsg:
		return m.rematch()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.match.Loop.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		}

	case key.Matches(msg, m.keys.Up):
		m.match.Nudge(-1)

	case key.Matches(msg, m.keys.Down):
		m.match.Nudge(1)

	case key.Matches(msg, m.keys.Serve):
		if m.match.Loop.IsBetweenRounds() {
			m.setState(gameloop.StateRunning)
		}

	case key.Matches(msg, m.keys.Pause):
		switch m.match.Loop.State() {
		case gameloop.StateRunning:
			m.setState(gameloop.StatePaused)
		case gameloop.StatePaused:
			m.setState(gameloop.StateRunning)
		}

	case key.Matches(msg, m.keys.Rematch):
		if m.match.Loop.Finished() {
			m.keys.Rematch.SetEnabled(false)
			return m, waitStopped(m.match.Loop)
		}
	}

	return m, nil
}

// setState applies a transition. A finished match rejects transitions; that
// is expected after the last point and only logged.
func (m Model) setState(s gameloop.State) {
	err := m.match.Loop.SetState(s)
	switch {
	case err == nil:
	case errors.Is(err, gameloop.ErrMatchOver):
		m.logger.Debug("transition after match over", "state", s)
	default:
		m.logger.Error("transition failed", "state", s, "error", err)
	}
}

// rematch resets the finished match and starts a new loop goroutine once the
// previous one has exited.
func (m Model) rematch() (tea.Model, tea.Cmd) {
	m.match.Loop.Reset()
	if err := m.match.Loop.Start(m.ctx); err != nil {
		m.logger.Error("rematch failed", "error", err)
	}
	return m, nil
}

// handleResize gives the board everything but the header and footer lines.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.sized = true
	m.help.Width = msg.Width
	m.surface.Resize(msg.Width, max(msg.Height-headerLines-footerLines, 0))
	return m, nil
}

// saveScreenshot writes the last frame to ~/.arcade/screenshots.
func (m Model) saveScreenshot() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("pong_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.surface.Plain()), 0o600); err != nil {
		return err
	}
	m.logger.Info("screenshot saved", "path", path)
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the header, the last frame and the footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.sized {
		return "Waiting for terminal size..."
	}
	if !m.surface.Usable() {
		return "Terminal too small for the board. Resize or press q to quit."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("PONG   You %s : %s CPU", m.score.Player, m.score.Opponent)))
	b.WriteString("\n")
	b.WriteString(m.frame)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// statusLine shows the posted status, or a serve hint between rounds.
func (m Model) statusLine() string {
	text := ""
	switch {
	case m.status.Visibility == notify.Visible && m.match.Loop.Finished():
		text = m.status.Text + "  Press r for a rematch"
	case m.status.Visibility == notify.Visible:
		text = m.status.Text
	case m.match.Loop.IsBetweenRounds():
		text = "Press space to serve"
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, statusStyle.Render(text))
}
