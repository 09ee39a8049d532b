// Package ui implements the interactive terminal front end.
//
// The UI binds an input form (title, due date, priority) and a
// single-selection task list to one in-memory todo.List. It is the only
// caller of the list's mutation operations and guards every index it
// passes: selection is always derived from the current list state, and
// "nothing selected" surfaces a warning instead of reaching the list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"taskdesk/internal/config"
	"taskdesk/internal/todo"
)

// Run starts the terminal UI bound to the given task list. It blocks
// until the user quits or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, list *todo.List, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("interactive mode requires a TTY")
	}

	model := newModel(cfg, list, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// field identifies one input in the task form.
type field int

const (
	fieldTitle field = iota
	fieldDueDate
	fieldPriority
	fieldCount
)

func (f field) label() string {
	switch f {
	case fieldTitle:
		return "Title"
	case fieldDueDate:
		return "Due date"
	case fieldPriority:
		return "Priority"
	default:
		return ""
	}
}

type model struct {
	cfg    *config.Config
	list   *todo.List
	logger *log.Logger

	// Form state
	formOpen  bool
	inputs    [fieldCount]string
	active    field
	editing   bool // form applies to the task at editIndex instead of adding
	editIndex int

	// List state
	cursor int

	warning  string
	showHelp bool
	styles   styles
}

type styles struct {
	title   lipgloss.Style
	accent  lipgloss.Style
	dim     lipgloss.Style
	warning lipgloss.Style
	faint   lipgloss.Style
}

func newStyles(cfg *config.Config) styles {
	accent := lipgloss.Color(cfg.AccentColor)
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		accent:  lipgloss.NewStyle().Foreground(accent),
		dim:     lipgloss.NewStyle().Faint(true),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		faint:   lipgloss.NewStyle().Faint(true),
	}
}

func newModel(cfg *config.Config, list *todo.List, logger *log.Logger) *model {
	return &model{
		cfg:    cfg,
		list:   list,
		logger: logger,
		styles: newStyles(cfg),
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		switch keyMsg.String() {
		case "q":
			return m, tea.Quit
		default:
			m.showHelp = false
		}
		return m, nil
	}

	if m.formOpen {
		m.updateForm(keyMsg)
		return m, nil
	}
	return m.updateList(keyMsg)
}

// updateForm handles keys while the input form has focus.
func (m *model) updateForm(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeForm()
	case tea.KeyEnter:
		m.submitForm()
	case tea.KeyTab, tea.KeyDown:
		m.active = (m.active + 1) % fieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		m.active = (m.active + fieldCount - 1) % fieldCount
	case tea.KeyBackspace:
		if s := m.inputs[m.active]; s != "" {
			runes := []rune(s)
			m.inputs[m.active] = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.inputs[m.active] += " "
	case tea.KeyRunes:
		m.inputs[m.active] += string(msg.Runes)
	}
}

// updateList handles keys while the task list has focus.
func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "h", "?":
		m.showHelp = true
	case "a", "n":
		m.openAddForm()
	case "e":
		m.openEditForm()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}
	case "c":
		m.markSelected(true)
	case "u":
		m.markSelected(false)
	case "d", "x", "delete":
		m.removeSelected()
	}
	return m, nil
}

// selected returns the index of the task under the cursor, or false when
// the list is empty.
func (m *model) selected() (int, bool) {
	if m.list.Len() == 0 {
		return 0, false
	}
	return m.cursor, true
}

func (m *model) openAddForm() {
	m.formOpen = true
	m.editing = false
	m.active = fieldTitle
	m.warning = ""
	m.inputs[fieldTitle] = ""
	m.inputs[fieldDueDate] = m.cfg.DefaultDueDate
	m.inputs[fieldPriority] = m.cfg.DefaultPriority
}

func (m *model) openEditForm() {
	index, ok := m.selected()
	if !ok {
		m.warn("Select a task to edit")
		return
	}
	task, ok := m.list.Get(index)
	if !ok {
		return
	}
	m.formOpen = true
	m.editing = true
	m.editIndex = index
	m.active = fieldTitle
	m.warning = ""
	m.inputs[fieldTitle] = task.Title
	m.inputs[fieldDueDate] = task.DueDate
	m.inputs[fieldPriority] = task.Priority
}

func (m *model) closeForm() {
	m.formOpen = false
	m.editing = false
	m.warning = ""
}

func (m *model) submitForm() {
	if m.editing {
		m.applyEdit()
		return
	}

	title := m.inputs[fieldTitle]
	dueDate := m.inputs[fieldDueDate]
	priority := m.inputs[fieldPriority]
	if title == "" || dueDate == "" || priority == "" {
		// Keep the form open with the input retained.
		m.warn("All fields are required")
		return
	}

	m.list.Add(title, dueDate, priority)
	m.cursor = m.list.Len() - 1
	m.logger.Info("task added", "position", m.cursor, "title", title)
	m.closeForm()
}

func (m *model) applyEdit() {
	if err := m.list.Edit(m.editIndex, m.inputs[fieldTitle], m.inputs[fieldDueDate], m.inputs[fieldPriority]); err != nil {
		m.logger.Error("edit failed", "position", m.editIndex, "err", err)
		m.warn("Could not edit that task")
		return
	}
	m.logger.Info("task edited", "position", m.editIndex)
	m.closeForm()
	m.cursor = m.editIndex
}

func (m *model) markSelected(completed bool) {
	index, ok := m.selected()
	if !ok {
		m.warn("Select a task first")
		return
	}

	var err error
	if completed {
		err = m.list.MarkCompleted(index)
	} else {
		err = m.list.MarkIncomplete(index)
	}
	if err != nil {
		m.logger.Error("mark failed", "position", index, "err", err)
		return
	}
	m.warning = ""
	m.logger.Info("task marked", "position", index, "completed", completed)
}

func (m *model) removeSelected() {
	index, ok := m.selected()
	if !ok {
		m.warn("Select a task to delete")
		return
	}

	m.list.Remove(index)
	if m.cursor >= m.list.Len() {
		m.cursor = m.list.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.warning = ""
	m.logger.Info("task removed", "position", index)
}

func (m *model) warn(message string) {
	m.warning = message
	m.logger.Warn(message)
}

func (m *model) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.showHelp {
		m.writeHelp(&b)
		return b.String()
	}

	m.writeForm(&b)
	m.writeTasks(&b)

	if m.warning != "" {
		b.WriteString(m.styles.warning.Render(m.warning) + "\n\n")
	}

	m.writeFooter(&b)
	return b.String()
}

func (m *model) writeTitle(b *strings.Builder) {
	title := "Taskdesk"
	b.WriteString(m.styles.title.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func (m *model) writeForm(b *strings.Builder) {
	if !m.formOpen {
		return
	}

	if m.editing {
		b.WriteString(m.styles.accent.Render(fmt.Sprintf("Edit Task %d", m.editIndex)) + "\n")
		b.WriteString(m.styles.faint.Render("Empty fields keep their current value") + "\n\n")
	} else {
		b.WriteString(m.styles.accent.Render("New Task") + "\n\n")
	}

	for f := fieldTitle; f < fieldCount; f++ {
		label := fmt.Sprintf("%-9s", f.label()+":")
		value := m.inputs[f]
		if f == m.active {
			b.WriteString(m.styles.accent.Render("> "+label) + " " + value + "█\n")
		} else {
			b.WriteString("  " + label + " " + value + "\n")
		}
	}
	b.WriteString("\n")
}

func (m *model) writeTasks(b *strings.Builder) {
	b.WriteString("Tasks\n\n")
	if m.list.Len() == 0 {
		b.WriteString(m.styles.faint.Render("  No tasks yet. Press a to add one.") + "\n\n")
		return
	}

	for i, task := range m.list.All() {
		line := task.DisplayString()
		if task.Completed && m.cfg.CompletedDim {
			line = m.styles.dim.Render(line)
		}
		if i == m.cursor && !m.formOpen {
			b.WriteString(m.styles.accent.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n")
}

func (m *model) writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  a, n         Add a task\n")
	b.WriteString("  e            Edit the selected task\n")
	b.WriteString("  c            Mark the selected task completed\n")
	b.WriteString("  u            Mark the selected task not completed\n")
	b.WriteString("  d, x         Delete the selected task\n")
	b.WriteString("  up/k down/j  Move the selection\n")
	b.WriteString("  enter        Save the form\n")
	b.WriteString("  esc          Cancel the form\n")
	b.WriteString("  tab          Next form field\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  q, ctrl+c    Quit\n\n")
	b.WriteString(m.styles.faint.Render("Press any key to go back") + "\n")
}

func (m *model) writeFooter(b *strings.Builder) {
	var hint string
	if m.formOpen {
		hint = "enter save | esc cancel | tab next field"
	} else {
		hint = "a add | e edit | c done | u undone | d delete | h help | q quit"
	}
	b.WriteString(m.styles.faint.Render(hint) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
