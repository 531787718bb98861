package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	swephruntime "github.com/astroveda/sweph-runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectBody modelState = iota
	stateInputDay
	stateShowResult
)

type interactiveModel struct {
	err      error
	adapter  swephruntime.Adapter
	backend  string
	wasmFile string
	libPath  string
	ephePath string
	version  string
	bodies   []string
	dayInput textinput.Model
	result   string
	selected int
	state    modelState
}

func newInteractiveModel(backend, wasmFile, libPath, ephePath string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "Julian day (blank = now)"
	ti.Prompt = "jd: "
	ti.Width = 40

	return &interactiveModel{
		backend:  backend,
		wasmFile: wasmFile,
		libPath:  libPath,
		ephePath: ephePath,
		bodies:   sortedBodyNames(),
		dayInput: ti,
		state:    stateSelectBody,
	}
}

type loadedMsg struct {
	err     error
	adapter swephruntime.Adapter
	version string
}

type resultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadBackend
}

func (m *interactiveModel) loadBackend() tea.Msg {
	adapter, err := openAdapter(m.backend, m.wasmFile, m.libPath, m.ephePath)
	if err != nil {
		return loadedMsg{err: err}
	}
	version, err := adapter.Version()
	if err != nil {
		adapter.Close(context.Background())
		return loadedMsg{err: err}
	}
	return loadedMsg{adapter: adapter, version: version}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateInputDay && msg.String() == "q" {
				break // let the input field take the keystroke
			}
			if m.adapter != nil {
				m.adapter.Close(context.Background())
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectBody && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectBody && m.selected < len(m.bodies)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectBody:
				m.state = stateInputDay
				m.dayInput.SetValue("")
				m.dayInput.Focus()
				return m, textinput.Blink

			case stateInputDay:
				m.dayInput.Blur()
				return m, m.compute

			case stateShowResult:
				m.state = stateSelectBody
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputDay:
				m.dayInput.Blur()
				m.state = stateSelectBody
			case stateShowResult:
				m.state = stateSelectBody
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.adapter = msg.adapter
		m.version = msg.version

	case resultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputDay {
		var cmd tea.Cmd
		m.dayInput, cmd = m.dayInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) compute() tea.Msg {
	if m.adapter == nil {
		return resultMsg{err: fmt.Errorf("backend not loaded")}
	}

	name := m.bodies[m.selected]
	body := bodyNames[name]

	var dayNumber float64
	if raw := strings.TrimSpace(m.dayInput.Value()); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return resultMsg{err: fmt.Errorf("cannot parse julian day %q: %w", raw, err)}
		}
		dayNumber = v
	} else {
		v, err := resolveDayNumber(m.adapter, 0, "")
		if err != nil {
			return resultMsg{err: err}
		}
		dayNumber = v
	}

	res, err := m.adapter.CalcPosition(dayNumber, body, swephruntime.FlagSwissEph|swephruntime.FlagSpeed)
	if err != nil {
		return resultMsg{err: err}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at JD %.6f UT\n\n", name, dayNumber)
	fmt.Fprintf(&b, "longitude: %12.6f°  %+.6f°/day\n", res.Longitude, res.LongitudeSpeed)
	fmt.Fprintf(&b, "latitude:  %12.6f°  %+.6f°/day\n", res.Latitude, res.LatitudeSpeed)
	fmt.Fprintf(&b, "distance:  %12.6f AU %+.6f AU/day", res.Distance, res.DistanceSpeed)
	return resultMsg{result: b.String()}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.adapter == nil {
		return "Resolving " + m.backend + " backend..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("sweph " + m.version))
	b.WriteString(" ")
	b.WriteString(helpStyle.Render(m.backend + " backend"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectBody:
		b.WriteString("Select a body:\n\n")
		for i, name := range m.bodies {
			line := fmt.Sprintf("%3d  %s", int(bodyNames[name]), name)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter compute • q quit"))

	case stateInputDay:
		b.WriteString(fmt.Sprintf("Position of %s\n\n", bodyStyle.Render(m.bodies[m.selected])))
		b.WriteString(m.dayInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter compute • esc back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(valueStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(backend, wasmFile, libPath, ephePath string) error {
	p := tea.NewProgram(newInteractiveModel(backend, wasmFile, libPath, ephePath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
