package viz

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/seadrift/internal/config"
	"github.com/san-kum/seadrift/internal/field"
)

var presetInfo = map[string]string{
	"gyre/spill":      "surface spill, moderate mixing",
	"gyre/backtrack":  "trace a sighting to its source",
	"gyre/storm":      "strong wind forcing",
	"uniform/transit": "steady current crossing",
	"calm/diffusion":  "pure spreading, no advection",
	"custom":          "edit everything yourself",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var requestFields = []string{"lat", "lon", "hours", "particles", "windage", "diffusivity", "seed"}

var fieldStep = map[string]float64{
	"lat":         0.1,
	"lon":         0.1,
	"hours":       6,
	"particles":   500,
	"windage":     0.005,
	"diffusivity": 0.1,
	"seed":        1,
}

// App is the interactive entry point: pick a preset, adjust the
// release, then watch the run.
type App struct {
	state, cursor int
	entries       []string
	selected      string
	cfg           *config.Config
	fieldCursor   int
	editing       bool
	editBuf       string
	errMsg        string
	liveModel     Model
}

func NewApp() *App {
	entries := make([]string, 0, len(presetInfo))
	for _, model := range []string{"gyre", "uniform", "calm"} {
		for _, name := range config.ListPresets(model) {
			entries = append(entries, model+"/"+name)
		}
	}
	entries = append(entries, "custom")
	return &App{state: stateMenu, entries: entries}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	default:
		if a.state == stateSim {
			newLive, cmd := a.liveModel.Update(msg)
			a.liveModel = newLive.(Model)
			return a, cmd
		}
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.state {
	case stateMenu:
		return a.menuKey(msg)
	case stateConfig:
		return a.configKey(msg)
	case stateSim:
		newLive, cmd := a.liveModel.Update(msg)
		a.liveModel = newLive.(Model)
		return a, cmd
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.entries)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.selected = a.entries[a.cursor]
		a.cfg = presetConfig(a.selected)
		a.state, a.fieldCursor, a.errMsg = stateConfig, 0, ""
	}
	return a, nil
}

func presetConfig(entry string) *config.Config {
	if model, name, ok := strings.Cut(entry, "/"); ok {
		if cfg := config.GetPreset(model, name); cfg != nil {
			return cfg
		}
	}
	return config.DefaultConfig()
}

func (a App) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(a.editBuf, "%f", &val)
			a.setField(requestFields[a.fieldCursor], val)
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					a.editBuf += string(c)
				}
			}
		}
		return a, nil
	}
	switch msg.String() {
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.fieldCursor > 0 {
			a.fieldCursor--
		}
	case "down", "j":
		if a.fieldCursor < len(requestFields)-1 {
			a.fieldCursor++
		}
	case "enter":
		name := requestFields[a.fieldCursor]
		a.editing, a.editBuf = true, fmt.Sprintf("%.3f", a.fieldVal(name))
	case "left", "h":
		name := requestFields[a.fieldCursor]
		a.setField(name, a.fieldVal(name)-fieldStep[name])
	case "right", "l":
		name := requestFields[a.fieldCursor]
		a.setField(name, a.fieldVal(name)+fieldStep[name])
	case "d":
		if a.cfg.Direction == "backward" {
			a.cfg.Direction = "forward"
		} else {
			a.cfg.Direction = "backward"
		}
	case "s":
		return a.start()
	}
	return a, nil
}

func (a *App) fieldVal(name string) float64 {
	switch name {
	case "lat":
		return a.cfg.Lat
	case "lon":
		return a.cfg.Lon
	case "hours":
		return a.cfg.Hours
	case "particles":
		return float64(a.cfg.Particles)
	case "windage":
		return a.cfg.Windage
	case "diffusivity":
		return a.cfg.Diffusivity
	case "seed":
		return float64(a.cfg.Seed)
	}
	return 0
}

func (a *App) setField(name string, v float64) {
	switch name {
	case "lat":
		a.cfg.Lat = v
	case "lon":
		a.cfg.Lon = v
	case "hours":
		a.cfg.Hours = v
	case "particles":
		a.cfg.Particles = int(v)
	case "windage":
		a.cfg.Windage = v
	case "diffusivity":
		a.cfg.Diffusivity = v
	case "seed":
		a.cfg.Seed = int64(v)
	}
}

func (a App) start() (tea.Model, tea.Cmd) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	dom := a.cfg.DomainBox()

	fld, err := field.NewModel(a.cfg.Model, dom)
	if err != nil {
		a.errMsg = err.Error()
		return a, nil
	}
	if t, ok := fld.(field.Tunable); ok {
		for k, v := range a.cfg.Params {
			if err := t.SetParam(k, v); err != nil {
				a.errMsg = err.Error()
				return a, nil
			}
		}
	}

	provider := field.NewProvider(dom, fld, quiet)
	if a.cfg.Data.CurrentFile != "" {
		_ = provider.LoadCurrent(a.cfg.Data.CurrentFile)
	}
	if a.cfg.Data.WindFile != "" {
		_ = provider.LoadWind(a.cfg.Data.WindFile)
	}

	req, err := a.cfg.Request()
	if err != nil {
		a.errMsg = err.Error()
		return a, nil
	}

	live, err := NewModel(fld, provider, req, a.cfg.Model)
	if err != nil {
		a.errMsg = err.Error()
		return a, nil
	}
	a.liveModel = live
	a.state = stateSim
	return a, a.liveModel.Init()
}

func (a App) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateConfig:
		return a.viewConfig()
	case stateSim:
		return a.liveModel.View()
	}
	return ""
}

func (a App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + headerStyle.Render("SEADRIFT") + "\n")
	b.WriteString("    " + helpStyle.Render("sea surface drift simulator") + "\n")
	b.WriteString("    " + helpStyle.Render("───────────────────────────") + "\n\n")
	for i, entry := range a.entries {
		desc := presetInfo[entry]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				activeStyle.Render("▸"),
				valueStyle.Render(fmt.Sprintf("%-16s", entry)),
				activeStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n",
				labelStyle.Render(fmt.Sprintf("%-16s", entry)),
				helpStyle.Render(desc)))
		}
	}
	b.WriteString("\n    " + helpStyle.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func (a App) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + headerStyle.Render(strings.ToUpper(a.selected)) + "\n")
	b.WriteString("    " + helpStyle.Render(presetInfo[a.selected]) + "\n")
	b.WriteString("    " + helpStyle.Render("───────────────────────────") + "\n\n")
	b.WriteString("    " + labelStyle.Render("model") + valueStyle.Render(a.cfg.Model) + "\n")
	b.WriteString("    " + labelStyle.Render("direction") + valueStyle.Render(a.cfg.Direction) + "\n\n")
	for i, name := range requestFields {
		valStr := fmt.Sprintf("%10.3f", a.fieldVal(name))
		if a.editing && i == a.fieldCursor {
			valStr = fmt.Sprintf("%10s", a.editBuf+"_")
		}
		if i == a.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n",
				activeStyle.Render("▸"),
				valueStyle.Render(fmt.Sprintf("%-12s", name)),
				activeStyle.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n",
				labelStyle.Render(fmt.Sprintf("%-12s", name)),
				helpStyle.Render(valStr)))
		}
	}
	if a.errMsg != "" {
		b.WriteString("\n    " + warnStyle.Render(a.errMsg) + "\n")
	}
	b.WriteString("\n    " + helpStyle.Render("j/k select  h/l adjust  enter edit  d direction  s start  esc back") + "\n")
	return b.String()
}

// RunInteractive starts the preset picker in the alternate screen.
func RunInteractive() error {
	_, err := tea.NewProgram(NewApp(), tea.WithAltScreen()).Run()
	return err
}
