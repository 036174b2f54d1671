// Package ui renders compile progress in the terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tokiwen/internal/buildpipeline"
)

// fileRow is one line of the file list.
type fileRow struct {
	path    string
	stage   buildpipeline.Stage
	status  buildpipeline.Status
	started time.Time
	took    time.Duration
}

func (r fileRow) finished() bool {
	switch r.status {
	case buildpipeline.StatusDone, buildpipeline.StatusCached, buildpipeline.StatusError:
		return true
	}
	return false
}

// label is what the status column shows.
func (r fileRow) label() string {
	if r.status == buildpipeline.StatusWorking {
		switch r.stage {
		case buildpipeline.StageParse:
			return "parsing"
		case buildpipeline.StageCompile:
			return "compiling"
		case buildpipeline.StageEmit:
			return "writing"
		}
	}
	return string(r.status)
}

// weight is the share of the file's work already done.
func (r fileRow) weight() float64 {
	if r.finished() {
		return 1
	}
	if r.status != buildpipeline.StatusWorking {
		return 0
	}
	switch r.stage {
	case buildpipeline.StageParse:
		return 0.3
	case buildpipeline.StageCompile:
		return 0.7
	case buildpipeline.StageEmit:
		return 0.9
	}
	return 0
}

type counts struct {
	compiled, cached, failed int
}

type progressModel struct {
	title   string
	events  <-chan buildpipeline.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	phase   string // pipeline-wide stage, from events without a file
	width   int
	done    bool
	now     func() time.Time
}

type eventMsg buildpipeline.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file compile
// progress until events is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 60

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
		now:     time.Now,
	}
	for i, file := range files {
		m.rows[i] = fileRow{path: file, status: buildpipeline.StatusQueued}
		m.byPath[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(buildpipeline.Event(msg)), m.next())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		// the compile keeps running; only the view goes away
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case progress.FrameMsg:
		model, cmd := m.bar.Update(msg)
		m.bar = model.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for the following pipeline event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev buildpipeline.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == buildpipeline.StatusWorking {
			m.phase = fileRow{stage: ev.Stage, status: ev.Status}.label()
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	if ev.Status == buildpipeline.StatusWorking && row.started.IsZero() {
		row.started = m.now()
	}
	row.stage, row.status = ev.Stage, ev.Status
	if row.finished() {
		row.took = ev.Elapsed
		if row.took == 0 && !row.started.IsZero() {
			row.took = m.now().Sub(row.started)
		}
	}
	return m.bar.SetPercent(m.fraction())
}

// fraction is the overall completion between 0 and 1.
func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += r.weight()
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) counts() counts {
	var c counts
	for _, r := range m.rows {
		switch r.status {
		case buildpipeline.StatusDone:
			c.compiled++
		case buildpipeline.StatusCached:
			c.compiled++
			c.cached++
		case buildpipeline.StatusError:
			c.failed++
		}
	}
	return c
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder

	header := m.title
	if m.phase != "" && !m.done {
		header += " · " + m.phase
	}
	if m.done {
		header = "✓ " + header
	} else {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-24, 20)
	for _, r := range m.rows {
		took := ""
		if r.finished() && r.took > 0 {
			took = fmt.Sprintf("%.1fms", float64(r.took)/float64(time.Millisecond))
		}
		fmt.Fprintf(&b, "  %s %8s  %s\n",
			statusStyle(r.status).Render(fmt.Sprintf("%-10s", r.label())),
			took,
			truncate(r.path, nameWidth))
	}

	b.WriteString("\n")
	b.WriteString(m.summary())
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// summary is the line under the file list.
func (m *progressModel) summary() string {
	c := m.counts()
	line := fmt.Sprintf("  %d/%d compiled", c.compiled, len(m.rows))
	if c.cached > 0 {
		line += fmt.Sprintf(", %d from cache", c.cached)
	}
	if c.failed > 0 {
		line += statusStyle(buildpipeline.StatusError).Render(fmt.Sprintf(", %d failed", c.failed))
	}
	return line
}

var statusColors = map[buildpipeline.Status]lipgloss.Color{
	buildpipeline.StatusQueued:  "8",
	buildpipeline.StatusWorking: "6",
	buildpipeline.StatusCached:  "4",
	buildpipeline.StatusDone:    "2",
	buildpipeline.StatusError:   "1",
}

func statusStyle(s buildpipeline.Status) lipgloss.Style {
	c, ok := statusColors[s]
	if !ok {
		c = "7"
	}
	return lipgloss.NewStyle().Foreground(c)
}

// truncate shortens value to width terminal cells, keeping its start.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
