package term

import (
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/logtext/buffer"
	"github.com/iw2rmb/logtext/logview"
)

// markPixmap is the gutter image id used for marked lines.
const markPixmap = 0

// Line is one line to append.
type Line struct {
	Text   string
	Style  buffer.StyleID
	Marked bool
}

// LinesMsg appends lines to the view.
type LinesMsg []Line

// ErrMsg reports a failure from a line source on the status line.
type ErrMsg struct{ Err error }

// StatusMsg replaces the status line message.
type StatusMsg string

// state is shared by copies of a Model.
type state struct {
	searching bool
	query     []rune
	lastQuery string
	message   string

	lastClick    time.Time
	lastClickPos image.Point
}

// Model is a Bubble Tea component showing a logview.View.
type Model struct {
	cfg  Config
	host *host
	view *logview.View
	st   *state

	width, height int
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	h := newHost(cfg.Renderer, cfg.Clipboard, cfg.View.Logger)
	v := logview.New(h, cfg.View)
	if cfg.MarkImage != nil {
		v.SetPixmap(markPixmap, cfg.MarkImage)
	}
	return Model{cfg: cfg, host: h, view: v, st: &state{}}
}

// LogView returns the hosted view. Call it only from Update.
func (m Model) LogView() *logview.View { return m.view }

func (m Model) Init() tea.Cmd { return m.host.takeCmds() }

// SetSize sizes the view to the terminal, minus the status line.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = max(width, 0), max(height, 0)
	rows := m.height
	if !m.cfg.HideStatus {
		rows--
	}
	m.view.Resize(image.Pt(m.width, max(rows, 0)))
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var quit bool
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
	case flushMsg:
		if msg.h == m.host {
			m.host.flush()
		}
	case timerMsg:
		if msg.h == m.host {
			m.host.fire(msg.id)
		}
	case LinesMsg:
		m.appendLines(msg)
	case ErrMsg:
		if msg.Err != nil {
			m.st.message = msg.Err.Error()
		}
	case StatusMsg:
		m.st.message = string(msg)
	case tea.FocusMsg:
		m.view.FocusIn()
	case tea.BlurMsg:
		m.view.FocusOut()
	case tea.KeyMsg:
		quit = m.updateKey(msg)
	case tea.MouseMsg:
		m.updateMouse(msg)
	}

	if quit {
		return m, tea.Quit
	}
	m.paint()
	return m, m.host.takeCmds()
}

func (m Model) appendLines(lines LinesMsg) {
	for _, l := range lines {
		line := m.view.Append(l.Text, l.Style)
		if l.Marked && m.cfg.MarkImage != nil {
			m.view.SetLinePixmap(line, markPixmap)
		}
	}
}

// paint redraws what the view invalidated since the last turn.
func (m Model) paint() {
	if m.host.dirty.Empty() {
		return
	}
	dirty := m.host.dirty
	m.host.dirty = image.Rectangle{}
	m.view.Paint(dirty)
}

func (m Model) View() string {
	frame := m.host.frame
	if m.cfg.HideStatus {
		return frame
	}
	if frame == "" {
		return m.statusLine()
	}
	return frame + "\n" + m.statusLine()
}
