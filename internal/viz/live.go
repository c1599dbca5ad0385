package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/heatsim/internal/sim"
)

const (
	plotWidth       = 60
	plotHeight      = 14
	historyCapacity = 600
	maxStepsPerTick = 4096
	frameInterval   = time.Second / 30
)

type TickMsg time.Time

// Factory builds a fresh simulator; the live view calls it on start and on
// every restart.
type Factory func() (*sim.Simulator, error)

// Model is the Bubble Tea model of a live run.
type Model struct {
	ctx     context.Context
	factory Factory
	sim     *sim.Simulator
	title   string

	stepsPerTick int
	running      bool
	done         bool
	showHelp     bool

	result  *sim.Result
	err     error
	lo, hi  float64
	history []float64
}

// NewModel starts a simulator from factory. stepsPerTick is clamped to
// [1, 4096].
func NewModel(ctx context.Context, factory Factory, title string, stepsPerTick int) (Model, error) {
	m := Model{
		ctx:          ctx,
		factory:      factory,
		title:        title,
		stepsPerTick: min(max(stepsPerTick, 1), maxStepsPerTick),
		running:      true,
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input and advances the run on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerTick = max(m.stepsPerTick/2, 1)
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) reset() error {
	s, err := m.factory()
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}
	m.sim = s
	m.done = false
	m.result = nil
	m.err = nil
	m.history = m.history[:0]

	// Fix the plot range to the start profile and the boundaries so the
	// axis does not jump while the solution relaxes.
	p := s.Params()
	m.lo, m.hi = math.Min(p.BC0, p.BC1), math.Max(p.BC0, p.BC1)
	for _, v := range s.Grid().Prev {
		m.lo, m.hi = math.Min(m.lo, v), math.Max(m.hi, v)
	}
	if m.hi-m.lo < 1e-12 {
		m.hi = m.lo + 1
	}
	return nil
}

func (m *Model) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		reason, err := m.sim.Next(m.ctx)
		if err != nil {
			m.err = err
			m.done = true
			return
		}
		if reason != sim.StopRunning {
			m.result = m.sim.Finish()
			m.done = true
			return
		}

		m.history = append(m.history, math.Log10(m.sim.Change()))
		if len(m.history) > historyCapacity {
			m.history = m.history[len(m.history)-historyCapacity:]
		}
	}
}

// Done reports whether the run has ended.
func (m Model) Done() bool { return m.done }

// Result is the finished run, or nil while running or after an error.
func (m Model) Result() *sim.Result { return m.result }

func (m Model) Err() error { return m.err }

// View renders the profile plot and run statistics.
func (m Model) View() string {
	g := m.sim.Grid()
	p := m.sim.Params()

	plot := asciigraph.Plot(g.Curr,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.LowerBound(m.lo),
		asciigraph.UpperBound(m.hi),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(CurrentTheme.Series),
		asciigraph.Caption(fmt.Sprintf("u(x), %d points", p.N)))
	plotView := panelStyle.Render(plot)

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	steps := m.sim.Steps()
	s.WriteString(row("Algorithm", m.sim.Algorithm()))
	s.WriteString(row("Step", fmt.Sprintf("%d", steps)))
	s.WriteString(row("Time", fmt.Sprintf("%.4f", float64(steps)*p.Dt)))
	s.WriteString(row("r", fmt.Sprintf("%.4g", p.R())))
	s.WriteString(row("Change", fmt.Sprintf("%.3e", m.sim.Change())))
	s.WriteString(row("Speed", fmt.Sprintf("%d steps/frame", m.stepsPerTick)))

	if total := m.sim.Tracker().Estimate(); total > 0 {
		s.WriteString("\n" + ProgressBar(float64(steps)/float64(total), 24) + "\n")
	}
	s.WriteString("\nlog10 change\n" + Sparkline(m.history, 30) + "\n")

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	if m.showHelp {
		s.WriteString(helpStyle.Render("SP:Pause  +/-:Speed  R:Restart\nT:Theme   ?:Help     Q:Quit"))
	} else {
		s.WriteString(helpStyle.Render("?:Help Q:Quit"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, plotView, statsStyle.Render(s.String()))
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("FAILED")
	case m.done:
		return statusDone.Render("DONE (" + string(m.result.Stop) + ")")
	case !m.running:
		return statusPaused.Render("PAUSED")
	default:
		return statusRunning.Render("RUNNING")
	}
}
