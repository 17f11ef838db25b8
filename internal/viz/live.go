// Package viz renders booster descents in the terminal. Rendering is
// best-effort and never feeds back into the simulation.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/boosterenv/internal/env"
	"github.com/san-kum/boosterenv/internal/policy"
	"github.com/san-kum/boosterenv/internal/sim"
)

const historyLen = 400

type tickMsg time.Time

type liveModel struct {
	env    *env.Environment
	pol    policy.Policy
	fps    int
	obs    sim.Observation
	step   int
	reward float64
	done   bool
	final  string

	altitude []float64
	vspeed   []float64
}

// RunLive steps the environment with the given policy at the given frame
// rate inside a bubbletea program.
func RunLive(e *env.Environment, pol policy.Policy, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	m := &liveModel{env: e, pol: pol, fps: fps}
	m.obs = e.Reset()

	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

func (m *liveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *liveModel) Init() tea.Cmd {
	return m.tick()
}

func (m *liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		if m.done {
			return m, nil
		}
		a := m.pol.Act(m.obs, m.step)
		obs, r, terminated, truncated, info, err := m.env.Step(a)
		if err != nil {
			m.done = true
			m.final = crashStyle.Render(err.Error())
			return m, nil
		}
		m.obs = obs
		m.step = info.Step
		m.reward += r

		m.altitude = append(m.altitude, obs[policy.IxY])
		m.vspeed = append(m.vspeed, obs[policy.IxVY])
		if len(m.altitude) > historyLen {
			m.altitude = m.altitude[1:]
			m.vspeed = m.vspeed[1:]
		}

		if terminated || truncated {
			m.done = true
			if info.Outcome.Success() {
				m.final = valueStyle.Render(fmt.Sprintf("TOUCHDOWN: %s", info.Reason))
			} else if truncated {
				m.final = warnStyle.Render(fmt.Sprintf("TRUNCATED: %s", info.Reason))
			} else {
				m.final = crashStyle.Render(fmt.Sprintf("CRASH: %s", info.Reason))
			}
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *liveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("booster descent"))
	b.WriteString("\n\n")

	if len(m.altitude) > 1 {
		graph := asciigraph.Plot(m.altitude,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("altitude (m)"),
		)
		b.WriteString(panelStyle.Render(graph))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		labelStyle.Render("step"), valueStyle.Render(fmt.Sprintf("%d", m.step)),
		labelStyle.Render("alt"), valueStyle.Render(fmt.Sprintf("%.1f m", m.obs[policy.IxY])),
		labelStyle.Render("vy"), valueStyle.Render(fmt.Sprintf("%.1f m/s", m.obs[policy.IxVY])),
		labelStyle.Render("fuel"), valueStyle.Render(fmt.Sprintf("%.0f%%", m.obs[policy.IxFuel]*100)),
	)
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("reward"), valueStyle.Render(fmt.Sprintf("%.2f", m.reward))))

	if m.done {
		b.WriteString("\n")
		b.WriteString(m.final)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("q to quit"))
	b.WriteString("\n")
	return b.String()
}
