package internal

import (
	"errors"
	"slices"

	"countdown/internal/config"
	"countdown/internal/font"
	"countdown/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// MsgFrame carries a render request from the control loop into the program.
type MsgFrame session.Frame

// MsgClear asks the program to wipe the screen before the next frame.
type MsgClear struct{}

// EventSink receives logical input events. session.Queue implements it.
type EventSink interface {
	Push(session.Event)
}

// Model is the terminal surface: it turns keys and resizes into session
// events and draws whatever frame the control loop sent last.
type Model struct {
	Width    int
	Height   int
	Frame    session.Frame
	HasFrame bool

	face   *font.Face
	keys   config.Keys
	styles styles
	sink   EventSink
}

func NewModel(face *font.Face, keys config.Keys, theme config.Theme, sink EventSink) *Model {
	return &Model{
		face:   face,
		keys:   keys,
		styles: newStyles(theme),
		sink:   sink,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgFrame:
		m.Frame = session.Frame(msg)
		m.HasFrame = true
		return m, nil
	case MsgClear:
		return m, tea.ClearScreen
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.sink.Push(session.EventResize)
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.HasFrame || m.Width == 0 || m.Height == 0 {
		return ""
	}
	if m.Frame.Paused {
		return m.pausedView()
	}
	return m.countdownView()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for _, key := range keyNames(msg) {
		switch {
		case slices.Contains(m.keys.Quit, key):
			m.sink.Push(session.EventQuit)
		case slices.Contains(m.keys.Pause, key):
			m.sink.Push(session.EventPauseToggle)
		}
	}
	return m, nil
}

// keyNames splits a message into individual key names. Runes typed faster
// than the terminal is read arrive as one KeyRunes message.
func keyNames(msg tea.KeyMsg) []string {
	if msg.Type != tea.KeyRunes || len(msg.Runes) < 2 {
		return []string{keyName(msg.String())}
	}
	prefix := ""
	if msg.Alt {
		prefix = "alt+"
	}
	names := make([]string, 0, len(msg.Runes))
	for _, r := range msg.Runes {
		names = append(names, prefix+keyName(string(r)))
	}
	return names
}

func keyName(s string) string {
	if s == " " {
		return "space"
	}
	return s
}

// ErrProgramExited is returned by Renderer once the terminal program is gone.
var ErrProgramExited = errors.New("terminal program exited")

// Renderer forwards frames to a running tea.Program.
type Renderer struct {
	p    *tea.Program
	done <-chan struct{}
}

// NewRenderer wraps p. done must be closed when p.Run returns.
func NewRenderer(p *tea.Program, done <-chan struct{}) *Renderer {
	return &Renderer{p: p, done: done}
}

func (r *Renderer) Render(f session.Frame) error {
	return r.send(MsgFrame(f))
}

func (r *Renderer) Clear() error {
	return r.send(MsgClear{})
}

func (r *Renderer) send(msg tea.Msg) error {
	select {
	case <-r.done:
		return ErrProgramExited
	default:
	}
	r.p.Send(msg)
	return nil
}
