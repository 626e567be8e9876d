package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/seadrift/internal/drift"
	"github.com/san-kum/seadrift/internal/field"
	"github.com/san-kum/seadrift/internal/geo"
	"github.com/san-kum/seadrift/internal/metrics"
)

const (
	canvasWidth  = 72
	canvasHeight = 22
	stepsPerTick = 1
	historyLimit = 600
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model animates a drift run a step per frame on a map of the domain.
type Model struct {
	fld       field.Model
	provider  *field.Provider
	req       drift.Request
	stepper   *drift.Stepper
	canvas    *Canvas
	modelName string

	spread        *metrics.Spread
	speed         *metrics.DriftSpeed
	spreadHistory []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int

	running bool
}

// NewModel builds the live view and releases the ensemble.
func NewModel(fld field.Model, provider *field.Provider, req drift.Request, modelName string) (Model, error) {
	st, err := drift.NewStepper(provider, req)
	if err != nil {
		return Model{}, err
	}

	params := make(map[string]float64)
	if t, ok := fld.(field.Tunable); ok {
		for k, v := range t.GetParams() {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	initial := make(map[string]float64, len(params))
	for k, v := range params {
		keys = append(keys, k)
		initial[k] = v
	}
	sort.Strings(keys)

	return Model{
		fld:           fld,
		provider:      provider,
		req:           req,
		stepper:       st,
		canvas:        NewCanvas(canvasWidth, canvasHeight, provider.Domain()),
		modelName:     modelName,
		spread:        metrics.NewSpread(),
		speed:         metrics.NewDriftSpeed(),
		spreadHistory: make([]float64, 0, historyLimit),
		params:        params,
		initialParams: initial,
		paramKeys:     keys,
		running:       true,
	}, nil
}

func (m Model) Init() tea.Cmd { return tick() }

// Update handles input events and advances the run.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		}
	case TickMsg:
		if m.running && !m.stepper.Done() {
			for i := 0; i < stepsPerTick && !m.stepper.Done(); i++ {
				m.stepper.Step()
			}
			m.observe()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) observe() {
	ens := m.stepper.Ensemble()
	t := m.stepper.Elapsed()
	m.spread.Observe(ens.Lat, ens.Lon, t)
	m.speed.Observe(ens.Lat, ens.Lon, t)
	m.spreadHistory = append(m.spreadHistory, m.spread.Value())
	if len(m.spreadHistory) > historyLimit {
		m.spreadHistory = m.spreadHistory[1:]
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key] * factor
	m.params[key] = val
	if t, ok := m.fld.(field.Tunable); ok {
		t.SetParam(key, val)
	}
}

// reset restarts the run with the original request and parameters. The
// seed is kept, so an untouched field replays the same trajectory.
func (m *Model) reset() {
	st, err := drift.NewStepper(m.provider, m.req)
	if err != nil {
		return
	}
	m.stepper = st
	m.spread.Reset()
	m.speed.Reset()
	m.spreadHistory = m.spreadHistory[:0]
	for k, v := range m.initialParams {
		m.params[k] = v
		if t, ok := m.fld.(field.Tunable); ok {
			t.SetParam(k, v)
		}
	}
	m.running = true
}

func (m *Model) draw() {
	m.canvas.Clear()
	ens := m.stepper.Ensemble()
	for i := 0; i < ens.Len(); i++ {
		m.canvas.Plot(geo.Point{Lat: ens.Lat[i], Lon: ens.Lon[i]})
	}
	m.canvas.PlotTrack(m.stepper.Track())
	m.canvas.Cross(geo.Point{Lat: m.req.Lat0, Lon: m.req.Lon0})
}

// View renders the map beside the stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	status := activeStyle.Render("RUNNING")
	if m.stepper.Done() {
		status = warnStyle.Render("DONE")
	} else if !m.running {
		status = warnStyle.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)+" DRIFT") + "\n")
	s.WriteString(status + "\n\n")

	frac := 0.0
	if m.stepper.TotalSteps() > 0 {
		frac = float64(m.stepper.StepsDone()) / float64(m.stepper.TotalSteps())
	}
	s.WriteString(ProgressBar(frac, 30) + "\n")
	s.WriteString(labelStyle.Render("Step") +
		valueStyle.Render(fmt.Sprintf("%d/%d", m.stepper.StepsDone(), m.stepper.TotalSteps())) + "\n\n")

	if len(m.spreadHistory) > 1 {
		chart := asciigraph.Plot(m.spreadHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Spread (km)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	c := m.stepper.Ensemble().Centroid()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%+.1f h", m.stepper.Elapsed()/3600)) + "\n")
	s.WriteString(labelStyle.Render("Centroid") + valueStyle.Render(fmt.Sprintf("%.3f, %.3f", c.Lat, c.Lon)) + "\n")
	s.WriteString(labelStyle.Render("Spread") + valueStyle.Render(fmt.Sprintf("%.2f km", m.spread.Value())) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.2f m/s", m.speed.Value())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", m.req.Particles)) + "\n")
	s.WriteString(labelStyle.Render("Direction") + valueStyle.Render(m.req.Direction.String()) + "\n")
	s.WriteString(labelStyle.Render("Seed") + valueStyle.Render(fmt.Sprintf("%d", m.stepper.Seed())) + "\n")

	s.WriteString("\nFIELD PARAMETERS\n")
	if len(m.paramKeys) > 0 {
		for i, k := range m.paramKeys {
			val, initial := m.params[k], m.initialParams[k]
			denom := 2.0 * initial
			if denom == 0 {
				denom = 1
			}
			barWidth, ratio := 10, val/denom
			if ratio > 1 {
				ratio = 1
			} else if ratio < 0 {
				ratio = 0
			}
			filled := int(ratio * float64(barWidth))
			bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
			line := fmt.Sprintf("%-10s %s %.2f", k, bar, val)
			if i == m.selected {
				s.WriteString(activeStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nTab:Param ↑↓:Tune T:Theme"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// RunLive starts the live drift view in the alternate screen.
func RunLive(fld field.Model, provider *field.Provider, req drift.Request, modelName string) error {
	m, err := NewModel(fld, provider, req, modelName)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
