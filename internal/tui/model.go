// Package tui is the terminal shell of the widget
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yegors/wxwidget/internal/view"
	"github.com/yegors/wxwidget/internal/widget"
	"github.com/yegors/wxwidget/pkg/logger"
)

// Config configures a terminal widget
type Config struct {
	DefaultCity  string
	FetchOnStart bool
	// Clipboard writes text to the system clipboard; defaults to atotto/clipboard
	Clipboard func(text string) error
}

// actionMsg carries a widget action back into the update loop
type actionMsg struct {
	action widget.Action
}

// Model is the bubbletea model. The update loop is the single owner of the widget state.
type Model struct {
	state        widget.State
	coord        *widget.Coordinator
	ctx          context.Context
	clipboard    func(string) error
	fetchOnStart bool
	focused      bool
	width        int
	logger       *logger.Logger
}

// NewModel creates a terminal widget. recorder may be nil.
func NewModel(ctx context.Context, config Config, fetcher widget.Fetcher, recorder widget.Recorder, log *logger.Logger) Model {
	write := config.Clipboard
	if write == nil {
		write = clipboard.WriteAll
	}

	return Model{
		state:        widget.NewState(config.DefaultCity),
		coord:        widget.NewCoordinator(fetcher, recorder, log),
		ctx:          ctx,
		clipboard:    write,
		fetchOnStart: config.FetchOnStart,
		focused:      true,
		logger:       log.Named("tui"),
	}
}

// State returns the current widget state
func (m Model) State() widget.State {
	return m.state
}

// Init starts the first search when configured to
func (m Model) Init() tea.Cmd {
	if !m.fetchOnStart {
		return nil
	}
	return func() tea.Msg { return actionMsg{action: widget.Submit{}} }
}

// Update handles key presses, window size changes and fetch completions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionMsg:
		return m.dispatch(msg.action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.coord.Stop()
		return m, tea.Quit
	case tea.KeyEsc:
		m.focused = !m.focused
		return m, nil
	case tea.KeyEnter:
		return m.dispatch(widget.Submit{})
	case tea.KeyTab:
		return m.dispatch(widget.SelectTab{Tab: shiftTab(m.state.Tab, 1)})
	case tea.KeyShiftTab:
		return m.dispatch(widget.SelectTab{Tab: shiftTab(m.state.Tab, -1)})
	}

	if m.focused {
		city := []rune(m.state.City)
		switch msg.Type {
		case tea.KeyBackspace:
			if len(city) == 0 {
				return m, nil
			}
			return m.dispatch(widget.SetCity{City: string(city[:len(city)-1])})
		case tea.KeyCtrlU:
			return m.dispatch(widget.SetCity{City: ""})
		case tea.KeySpace:
			return m.dispatch(widget.SetCity{City: m.state.City + " "})
		case tea.KeyRunes:
			return m.dispatch(widget.SetCity{City: m.state.City + string(msg.Runes)})
		}
		return m, nil
	}

	switch msg.String() {
	case "1", "2", "3":
		return m.dispatch(widget.SelectTab{Tab: widget.Tabs[msg.String()[0]-'1']})
	case "c":
		return m.dispatch(widget.CopyLocation{})
	case "q":
		m.coord.Stop()
		return m, tea.Quit
	}

	return m, nil
}

// dispatch applies an action and turns the resulting effect into a command
func (m Model) dispatch(a widget.Action) (tea.Model, tea.Cmd) {
	next, eff := widget.Reduce(m.state, a)
	m.state = next

	switch e := eff.(type) {
	case widget.StartFetch:
		m.logger.Debug("Starting fetch",
			logger.Uint64("seq", e.Seq),
			logger.String("city", e.City))
		run := m.coord.Command(m.ctx, e)
		return m, func() tea.Msg { return actionMsg{action: run()} }

	case widget.WriteClipboard:
		write := m.clipboard
		log := m.logger
		return m, func() tea.Msg {
			err := write(e.Text)
			if err != nil {
				log.Warn("Clipboard write failed", logger.Error(err))
			}
			return actionMsg{action: widget.ClipboardWritten{Err: err}}
		}
	}

	return m, nil
}

func shiftTab(current widget.Tab, step int) widget.Tab {
	n := len(widget.Tabs)
	for i, t := range widget.Tabs {
		if t == current {
			return widget.Tabs[((i+step)%n+n)%n]
		}
	}
	return widget.TabCurrent
}

// View renders the widget
func (m Model) View() string {
	model := view.Build(m.state)
	styles := stylesFor(model.Theme)

	var b strings.Builder

	header := "Weather Widget"
	if model.UpdatedAt != "" {
		header += "  ·  Updated: " + model.UpdatedAt
	}
	b.WriteString(styles.header.Render(header))
	b.WriteString("\n")

	input := styles.inputBlur
	cursor := ""
	if m.focused {
		input = styles.input
		cursor = "█"
	}
	search := "Search"
	if model.Loading {
		search = "Loading…"
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		input.Width(28).Render(model.City+cursor),
		" ",
		labelStyle.Render("[enter] "+search)))
	b.WriteString("\n\n")

	switch model.Panel {
	case view.PanelError:
		b.WriteString(errorStyle.Render(model.Message))
	case view.PanelLoading:
		b.WriteString(mutedStyle.Render(model.Message))
	case view.PanelEmpty:
		b.WriteString(mutedStyle.Render(model.Message))
	case view.PanelData:
		b.WriteString(renderTabs(model, styles))
		b.WriteString("\n\n")
		switch model.Tab {
		case widget.TabForecast:
			b.WriteString(renderForecast(model.Forecast))
		case widget.TabDetails:
			b.WriteString(renderDetails(model.Details))
		default:
			b.WriteString(renderCurrent(model.Current))
		}
	}
	b.WriteString("\n")

	if model.Notice != "" {
		b.WriteString("\n" + noticeStyle.Render(model.Notice) + "\n")
	}

	help := "enter search · tab switch · esc focus · ctrl+c quit"
	if !m.focused {
		help = "1/2/3 tabs · c copy location · esc edit city · q quit"
	}
	b.WriteString("\n" + helpStyle.Render(help))

	frame := styles.frame
	if m.width > 4 {
		frame = frame.Width(min(m.width-2, 72))
	}
	return frame.Render(b.String()) + "\n"
}

func renderTabs(model view.Model, styles themeStyles) string {
	tabs := make([]string, 0, len(model.Tabs))
	for i, t := range model.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Label)
		if t.Active {
			tabs = append(tabs, styles.activeTab.Render(label))
		} else {
			tabs = append(tabs, styles.tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderCurrent(c *view.CurrentView) string {
	if c == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", valueStyle.Render(c.Location), labelStyle.Render("[c] copy"))
	fmt.Fprintf(&b, "%s  %s  %s\n", c.Icon.Glyph, tempStyle.Render(c.Temp), c.Conditions)
	fmt.Fprintf(&b, "%s\n\n", labelStyle.Render("Feels like "+c.FeelsLike))

	rows := [][2]string{
		{"High/Low", c.High + "/" + c.Low},
		{"Humidity", c.Humidity},
		{"Wind", c.Wind},
		{"Precipitation", c.Precip},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Width(15).Render(r[0]), valueStyle.Render(r[1]))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderForecast(days []view.DayView) string {
	if len(days) == 0 {
		return mutedStyle.Render("No forecast available")
	}

	cols := make([]string, 0, len(days))
	for _, d := range days {
		cols = append(cols, lipgloss.NewStyle().Width(10).Align(lipgloss.Center).Render(
			lipgloss.JoinVertical(lipgloss.Center,
				valueStyle.Render(d.Weekday),
				d.Icon.Glyph,
				d.High,
				labelStyle.Render(d.Low),
			)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func renderDetails(d *view.DetailsView) string {
	if d == nil {
		return ""
	}

	rows := [][2]string{
		{"Sunrise", d.Sunrise},
		{"Sunset", d.Sunset},
		{"Visibility", d.Visibility},
		{"Pressure", d.Pressure},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, labelStyle.Width(15).Render(r[0])+" "+valueStyle.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}
