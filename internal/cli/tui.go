package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/symisland/pkg/core/anneal"
	"github.com/matzehuels/symisland/pkg/pipeline"
)

// annealDoneMsg carries the pipeline result (or error) into the TUI.
type annealDoneMsg struct {
	res *pipeline.Result
	err error
}

// annealModel is the bubbletea model showing annealing progress.
type annealModel struct {
	spin    spinner.Model
	design  string
	steps   int
	last    anneal.Update
	haveUpd bool
	done    bool
	aborted bool
}

func newAnnealModel(design string, steps int) annealModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleIconSpinner
	return annealModel{spin: s, design: design, steps: steps}
}

func (m annealModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m annealModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case anneal.Update:
		m.last = msg
		m.haveUpd = true
		return m, nil
	case annealDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m annealModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.spin.View())
	b.WriteString(styleTitle.Render(" annealing " + m.design))
	b.WriteString("\n")
	if m.haveUpd {
		b.WriteString(fmt.Sprintf("  step %s  temp %s  cost %s  best %s\n",
			styleNumber.Render(fmt.Sprintf("%d/%d", m.last.Step+1, m.steps)),
			styleDim.Render(fmt.Sprintf("%.2f", m.last.Temperature)),
			styleValue.Render(fmt.Sprintf("%.0f", m.last.Cost)),
			styleSuccess.Render(fmt.Sprintf("%.0f", m.last.BestCost))))
	}
	b.WriteString(styleDim.Render("  q to abort"))
	b.WriteString("\n")
	return b.String()
}

// runAnnealTUI executes the pipeline while displaying a live progress view.
// Updates are forwarded from the annealer's progress hook into the bubbletea
// program; every 16th step is enough for a readable display.
func runAnnealTUI(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	model := newAnnealModel(opts.DesignPath, opts.Steps)
	prog := tea.NewProgram(model, tea.WithContext(ctx))

	opts.AnnealProgress = func(u anneal.Update) {
		if u.Step%16 == 0 {
			prog.Send(u)
		}
	}

	done := make(chan annealDoneMsg, 1)
	go func() {
		res, err := runner.Execute(ctx, opts)
		msg := annealDoneMsg{res: res, err: err}
		done <- msg
		prog.Send(msg)
	}()

	final, err := prog.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(annealModel); ok && m.aborted {
		return nil, fmt.Errorf("annealing aborted")
	}

	msg := <-done
	return msg.res, msg.err
}
