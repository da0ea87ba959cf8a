package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ffeval/internal/experiment"
	"github.com/san-kum/ffeval/internal/sim"
	"github.com/san-kum/ffeval/internal/viz"
)

const barWidth = 40

type frameMsg struct {
	index int
	total float64
}

type doneMsg struct {
	result *sim.Result
	err    error
}

type model struct {
	system  string
	frames  int
	done    int
	last    float64
	totals  []float64
	started time.Time
	result  *sim.Result
	err     error
	cancel  context.CancelFunc
}

func newModel(system string, frames int, cancel context.CancelFunc) model {
	return model{
		system:  system,
		frames:  frames,
		totals:  make([]float64, 0, frames),
		started: time.Now(),
		cancel:  cancel,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil
	case frameMsg:
		m.done++
		m.last = msg.total
		m.totals = append(m.totals, msg.total)
		return m, nil
	case doneMsg:
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(viz.Title.Render("evaluating "+m.system) + "\n\n")
	sb.WriteString(viz.ProgressBar(m.done, m.frames, barWidth) + "\n")
	sb.WriteString(viz.MetricLabel.Render("last total ") + viz.MetricValue.Render(fmt.Sprintf("%.5f", m.last)) + "\n")
	sb.WriteString(viz.MetricLabel.Render("elapsed    ") + viz.MetricValue.Render(time.Since(m.started).Round(time.Millisecond).String()) + "\n")
	if len(m.totals) > 1 {
		sb.WriteString(viz.SparklineChart(m.totals, barWidth) + "\n")
	}
	sb.WriteString("\n" + viz.Subtle.Render("q to cancel") + "\n")
	return sb.String()
}

// Observer forwards completed frames to a running program.
type Observer struct {
	p *tea.Program
}

func (o Observer) OnFrame(fr sim.FrameResult) {
	o.p.Send(frameMsg{index: fr.Index, total: fr.Total()})
}

// Run evaluates an experiment that has been set up while showing progress.
// Cancelling from the keyboard stops the run between frames.
func Run(ctx context.Context, exp *experiment.Experiment) (*sim.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sys := exp.System()
	p := tea.NewProgram(newModel(sys.Name, len(sys.Frames), cancel))
	exp.GetEvaluator().AddObserver(Observer{p: p})

	go func() {
		result, err := exp.Run(ctx)
		p.Send(doneMsg{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(model)
	return m.result, m.err
}
