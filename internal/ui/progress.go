package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"w3cv/internal/driver"
)

type progressModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	index    map[string][]int
	finished int
	problems int
	width    int
	done     bool
}

type fileItem struct {
	path  string
	state itemState
	stage driver.Stage
	count int
}

type itemState uint8

const (
	itemQueued itemState = iota
	itemWorking
	itemOK
	itemProblems
	itemFailed
)

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders validation
// progress for files. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string][]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file})
		// один путь может быть передан несколько раз
		index[file] = append(index[file], i)
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
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
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished, len(m.items))
	if m.problems > 0 {
		header = fmt.Sprintf("%s, %d problems", header, m.problems)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-4, 20)

	for _, item := range m.items {
		label := item.label()
		status := styleState(item.state).Render(fmt.Sprintf("%*s", statusWidth, label))
		b.WriteString("  ")
		b.WriteString(status)
		b.WriteString(" ")
		b.WriteString(truncate(item.path, nameWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent updates the first matching item that is not yet finished.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		return nil
	}
	var item *fileItem
	for _, idx := range m.index[ev.File] {
		candidate := &m.items[idx]
		if candidate.finishedState() {
			continue
		}
		if ev.Status == driver.StatusQueued && candidate.state != itemQueued {
			continue
		}
		item = candidate
		break
	}
	if item == nil {
		return nil
	}

	switch ev.Status {
	case driver.StatusQueued:
		item.state = itemQueued
	case driver.StatusWorking:
		item.state = itemWorking
		item.stage = ev.Stage
	case driver.StatusDone:
		item.count = ev.Count
		item.state = itemOK
		if ev.Count > 0 {
			item.state = itemProblems
		}
	case driver.StatusError:
		item.state = itemFailed
		item.count = 1
	}
	if item.finishedState() {
		m.finished++
		m.problems += item.count
	}

	total := 0.0
	for i := range m.items {
		total += m.items[i].progress()
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func (it *fileItem) finishedState() bool {
	return it.state == itemOK || it.state == itemProblems || it.state == itemFailed
}

func (it *fileItem) progress() float64 {
	switch {
	case it.finishedState():
		return 1.0
	case it.state == itemWorking && it.stage == driver.StageCheck:
		return 0.3
	case it.state == itemWorking:
		return 0.1
	default:
		return 0.0
	}
}

func (it *fileItem) label() string {
	switch it.state {
	case itemWorking:
		if it.stage == driver.StageCheck {
			return "checking"
		}
		return "loading"
	case itemOK:
		return "ok"
	case itemProblems:
		if it.count == 1 {
			return "1 problem"
		}
		return fmt.Sprintf("%d problems", it.count)
	case itemFailed:
		return "failed"
	default:
		return "queued"
	}
}

func styleState(state itemState) lipgloss.Style {
	switch state {
	case itemOK:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case itemProblems:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case itemFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case itemWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
