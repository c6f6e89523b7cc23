package ui

import (
	"errors"
	"image"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/koki-develop/img2ascii/internal/errs"
	"github.com/koki-develop/img2ascii/internal/imgio"
	"github.com/koki-develop/img2ascii/internal/pipeline"
	"github.com/koki-develop/img2ascii/internal/resize"
	"github.com/koki-develop/img2ascii/internal/util"
	"github.com/mattn/go-runewidth"
)

const defaultFPS = 10

type Option struct {
	Source  pipeline.FrameSource
	Session *pipeline.Session
}

func Start(opt *Option) error {
	m := newModel(opt)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}

	if m.err != nil {
		return m.err
	}

	return nil
}

var _ tea.Model = &model{}

type model struct {
	err error

	source   pipeline.FrameSource
	session  *pipeline.Session
	progress progress.Model

	current int
	read    int

	state        modelState
	windowHeight int
	windowWidth  int

	tickDuration time.Duration
	frames       []*image.Gray
}

func newModel(opt *Option) *model {
	return &model{
		source:   opt.Source,
		session:  opt.Session,
		progress: progress.New(progress.WithDefaultGradient()),

		current:      0,
		tickDuration: frameDuration(opt.Source.FPS()),
	}
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Duration(float64(time.Second) / fps)
}

func (m *model) Init() tea.Cmd {
	m.state = modelStateLoading
	return m.load()
}

func (m *model) View() string {
	switch m.state {
	case modelStateLoading:
		return m.loadingView()
	case modelStatePlaying:
		return m.playingView()
	case modelStatePaused:
		return m.pausedView()
	}

	return ""
}

func (m *model) loadingView() string {
	total := m.source.FrameCount()
	if total <= 0 {
		return "loading..."
	}
	return "loading...\n" + m.progress.ViewAs(float64(m.read)/float64(total))
}

func (m *model) pausedView() string {
	return m.currentAsciiView() + "\n" + m.helpView()
}

func (m *model) playingView() string {
	return m.currentAsciiView() + "\n" + m.helpView()
}

// idealScale leaves room for the stretch applied after fitting.
func (m *model) idealScale() (int, int) {
	w := int(float64(m.windowWidth-2) / resize.DefaultStretch)
	return util.Max(1, w), util.Max(1, m.windowHeight-4)
}

func (m *model) currentAsciiView() string {
	if len(m.frames) == 0 {
		return "no frames"
	}

	m.session.SetIdealScale(m.idealScale())
	ascii, err := m.session.Glyphs(m.frames[m.current], m.current)
	if err != nil {
		return err.Error()
	}

	leftPad := strings.Repeat(" ", util.Max(0, (m.windowWidth-runewidth.StringWidth(ascii[0]))/2))
	b := new(strings.Builder)
	for _, line := range ascii {
		b.WriteString(leftPad)
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (m *model) helpView() string {
	b := new(strings.Builder)
	b.WriteString(strings.Repeat(" ", util.Max(0, (m.windowWidth-18)/2)))

	switch m.state {
	case modelStatePlaying:
		b.WriteString(color.New(color.BgRed, color.FgWhite).Sprintf(" ⏸︎ "))
	case modelStatePaused:
		b.WriteString(color.New(color.BgGreen, color.FgBlack).Sprintf(" ▶︎ "))
	}
	b.WriteString(" Space/Enter")

	return b.String()
}

type modelState string

const (
	modelStateLoading modelState = "loading"
	modelStatePlaying modelState = "playing"
	modelStatePaused  modelState = "paused"
)

type errMsg struct{ error }
type frameMsg struct{ frame *image.Gray }
type loadedMsg struct{}
type playMsg struct{}
type pauseMsg struct{}
type forwardMsg struct{}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.quit()
		case tea.KeySpace, tea.KeyEnter:
			switch m.state {
			case modelStatePlaying:
				return m, m.pause()
			case modelStatePaused:
				return m, m.play()
			}
		}

	case errMsg:
		m.err = msg.error
		return m, m.quit()

	case tea.WindowSizeMsg:
		m.windowHeight = msg.Height
		m.windowWidth = msg.Width
		m.progress.Width = util.Max(10, msg.Width-4)
		return m, nil

	case frameMsg:
		m.read++
		if msg.frame != nil {
			m.frames = append(m.frames, msg.frame)
		}
		return m, m.load()

	case loadedMsg:
		if len(m.frames) == 0 {
			m.err = errors.New("no playable frames")
			return m, m.quit()
		}
		m.state = modelStatePlaying
		return m, tea.Batch(m.pause(), tea.EnterAltScreen)

	case playMsg:
		m.state = modelStatePlaying
		if m.current == len(m.frames)-1 {
			m.current = 0
		}
		return m, m.forward()

	case forwardMsg:
		if m.current >= len(m.frames)-1 {
			return m, m.pause()
		}
		m.current++
		if m.current == len(m.frames)-1 {
			return m, m.pause()
		}
		return m, m.forward()

	case pauseMsg:
		m.state = modelStatePaused
		return m, nil
	}

	return m, nil
}

func (m *model) quit() tea.Cmd {
	return tea.Quit
}

// load reads one frame from the source; bad frames are skipped.
func (m *model) load() tea.Cmd {
	return func() tea.Msg {
		img, err := m.source.Next()
		if errors.Is(err, io.EOF) {
			return loadedMsg{}
		}
		if errors.Is(err, errs.ErrBadFrame) {
			return frameMsg{}
		}
		if err != nil {
			return errMsg{err}
		}
		return frameMsg{imgio.Grayscale(img)}
	}
}

func (m *model) play() tea.Cmd {
	return func() tea.Msg { return playMsg{} }
}

func (m *model) forward() tea.Cmd {
	return tea.Tick(m.tickDuration, func(t time.Time) tea.Msg {
		if m.state == modelStatePlaying {
			return forwardMsg{}
		}
		return nil
	})
}

func (m *model) pause() tea.Cmd {
	return func() tea.Msg { return pauseMsg{} }
}
