// Package tui is the interactive three-panel terminal view: every circuit
// side by side, keyboard "sliders" for the parameters, per-panel playback
// and the live rate readout.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/flowlab/flowlab/internal/engine"
)

const (
	panelCols = 42
	panelRows = 13
	paramStep = 5.0
)

type TickMsg time.Time

type panel struct {
	eng       *engine.Engine
	visible   bool
	paramKeys []string
	selParam  int
}

func newPanel(eng *engine.Engine) *panel {
	keys := make([]string, 0, 2)
	for k := range eng.Circuit().GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &panel{eng: eng, visible: true, paramKeys: keys}
}

// Model multiplexes the three circuit engines onto one frame loop. Panels
// can be hidden, reordered and tuned; a hidden or paused panel receives no
// entity updates.
type Model struct {
	panels   []*panel
	selected int
	fps      int
	showHelp bool
}

func NewModel(engines []*engine.Engine, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	panels := make([]*panel, len(engines))
	for i, e := range engines {
		panels[i] = newPanel(e)
	}
	return Model{panels: panels, fps: fps}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.selected = (m.selected + 1) % len(m.panels)
		case "shift+tab":
			m.selected = (m.selected + len(m.panels) - 1) % len(m.panels)
		case " ":
			m.current().eng.TogglePlay()
		case "a":
			m.toggleAll()
		case "r":
			m.current().eng.Reset()
		case "m":
			p := m.current()
			p.eng.SetMeasuring(!p.eng.Measuring())
		case "p":
			p := m.current()
			if len(p.paramKeys) > 0 {
				p.selParam = (p.selParam + 1) % len(p.paramKeys)
			}
		case "up", "k":
			m.adjustParam(paramStep)
		case "down", "j":
			m.adjustParam(-paramStep)
		case "[":
			m.movePanel(-1)
		case "]":
			m.movePanel(1)
		case "1", "2", "3":
			idx := int(msg.String()[0] - '1')
			if idx < len(m.panels) {
				m.panels[idx].visible = !m.panels[idx].visible
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		for _, p := range m.panels {
			if p.visible {
				p.eng.Step()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) current() *panel { return m.panels[m.selected] }

func (m *Model) toggleAll() {
	anyPlaying := false
	for _, p := range m.panels {
		if p.eng.Playing() {
			anyPlaying = true
			break
		}
	}
	for _, p := range m.panels {
		p.eng.SetPlaying(!anyPlaying)
	}
}

// adjustParam nudges the selected slider, clamped to its declared bounds so
// the value can never leave [min, max].
func (m *Model) adjustParam(delta float64) {
	p := m.current()
	if len(p.paramKeys) == 0 {
		return
	}
	key := p.paramKeys[p.selParam]
	c := p.eng.Circuit()
	b, ok := c.ParamBounds(key)
	if !ok {
		return
	}
	val := b.Clamp(c.GetParams()[key] + delta)
	_ = c.SetParam(key, val)
}

// movePanel reorders the selected panel, the keyboard stand-in for dragging
// a card around the page.
func (m *Model) movePanel(dir int) {
	j := m.selected + dir
	if j < 0 || j >= len(m.panels) {
		return
	}
	m.panels[m.selected], m.panels[j] = m.panels[j], m.panels[m.selected]
	m.selected = j
}

func (m Model) View() string {
	blocks := make([]string, 0, len(m.panels))
	for i, p := range m.panels {
		if !p.visible {
			continue
		}
		blocks = append(blocks, m.renderPanel(i, p))
	}
	var body string
	if len(blocks) == 0 {
		body = statusStyle.Render("all panels hidden (1/2/3 to show)")
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	}

	help := helpStyle.Render("tab:select  sp:play/pause  a:all  r:reset  m:measure  p:param  ↑↓:adjust  [ ]:reorder  1-3:show/hide  ?:help  q:quit")
	if m.showHelp {
		help = helpStyle.Render(helpText)
	}
	return body + "\n" + help
}

const helpText = `  tab / shift+tab   select panel
  space             play or pause the selected panel
  a                 play or pause every panel
  r                 reset the selected panel (stops, reseeds, restores sliders)
  m                 toggle the flow-rate readout
  p                 cycle the active slider
  up/k, down/j      adjust the active slider (clamped to its range)
  [ , ]             move the selected panel left or right
  1, 2, 3           show or hide the panel at that position
  q                 quit`

func (m Model) renderPanel(i int, p *panel) string {
	c := p.eng.Circuit()
	frame := p.eng.Frame()

	canvas := NewCanvas(panelCols, panelRows)
	subW, subH := float64(panelCols*2), float64(panelRows*4)
	vw, vh := c.ViewBox()
	scale := subW / vw
	if s := subH / vh; s < scale {
		scale = s
	}

	outline := c.Outline(10)
	for j := 1; j < len(outline); j++ {
		canvas.Line(
			int(outline[j-1].X*scale), int(outline[j-1].Y*scale),
			int(outline[j].X*scale), int(outline[j].Y*scale),
		)
	}
	for _, pt := range frame.Points {
		canvas.Blob(int(pt.X*scale), int(pt.Y*scale), 1)
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(strings.ToUpper(c.Name())))
	status := "PAUSED"
	if p.eng.Playing() {
		status = "RUNNING"
	}
	sb.WriteString("  " + statusStyle.Render(status) + "\n")
	sb.WriteString(canvas.String() + "\n")

	if p.eng.Measuring() {
		sb.WriteString(labelStyle.Render("flow rate") + rateStyle.Render(p.eng.FormatRate()) + "\n")
	} else {
		sb.WriteString(labelStyle.Render("flow rate") + statusStyle.Render("off (m)") + "\n")
	}

	for j, key := range p.paramKeys {
		val := c.GetParams()[key]
		b, _ := c.ParamBounds(key)
		line := fmt.Sprintf("%-16s %s %3.0f", key, paramBar(val, b.Min, b.Max), val)
		if i == m.selected && j == p.selParam {
			sb.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			sb.WriteString(valueStyle.Render("  "+line) + "\n")
		}
	}

	if hist := p.eng.History(); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(3), asciigraph.Width(panelCols-8))
		sb.WriteString(graphStyle.Render(chart) + "\n")
	}

	if i == m.selected {
		return selectedPanelStyle.Render(sb.String())
	}
	return panelStyle.Render(sb.String())
}

func paramBar(val, min, max float64) string {
	const width = 10
	ratio := 0.0
	if max > min {
		ratio = (val - min) / (max - min)
	}
	filled := int(ratio * width)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
