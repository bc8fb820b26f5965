// Package ui provides the interactive checklist panel.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/tickdown/tickdown/internal/config"
	"github.com/tickdown/tickdown/internal/document"
	"github.com/tickdown/tickdown/internal/hooks"
	"github.com/tickdown/tickdown/internal/logging"
	"github.com/tickdown/tickdown/internal/tasks"
	"github.com/tickdown/tickdown/internal/watch"
)

// RunTUI starts the checklist panel over the configured document and
// blocks until the user quits or ctx ends.
func RunTUI(ctx context.Context, cfg *config.Config) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	store := document.NewStore(cfg.File)

	var logger *logging.SessionLogger
	if !cfg.Quiet {
		l, err := logging.NewSessionLogger(cfg.LogDir, cfg.File)
		if err != nil {
			return fmt.Errorf("open session log: %w", err)
		}
		logger = l
		defer func() { _ = logger.Close() }()
		logger.Start(cfg.File)
	}

	session := watch.NewSession(store, watch.Options{
		Parser:   tasks.Parser{NoHeadingLabel: cfg.NoHeadingLabel},
		Poll:     cfg.PollInterval(),
		Debounce: cfg.DebounceWindow(),
		Logger:   logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	statusCh := make(chan watch.Status, 16)
	go func() {
		_ = session.RunWithStatus(ctx, statusCh)
	}()

	m := newModel(cfg, store, session, logger, statusCh)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type model struct {
	cfg      *config.Config
	store    *document.Store
	session  *watch.Session
	logger   *logging.SessionLogger
	statusCh <-chan watch.Status

	keys   KeyMap
	styles Styles
	help   help.Model
	vp     viewport.Model
	input  textinput.Model

	res           tasks.Result
	rows          []row
	cursor        int
	selectedLine  int
	showCompleted bool

	filtering bool
	filter    string
	preview   bool

	width  int
	height int
	ready  bool

	loaded  bool
	lastErr error
	notice  string
}

type statusMsg struct {
	status watch.Status
}

type sessionDoneMsg struct{}

type toggledMsg struct {
	line      int
	completed bool
	err       error
}

func newModel(cfg *config.Config, store *document.Store, session *watch.Session, logger *logging.SessionLogger, statusCh <-chan watch.Status) *model {
	input := textinput.New()
	input.Placeholder = "filter tasks..."
	input.CharLimit = 120
	input.Prompt = "/"

	return &model{
		cfg:           cfg,
		store:         store,
		session:       session,
		logger:        logger,
		statusCh:      statusCh,
		keys:          DefaultKeyMap(),
		styles:        NewStyles(cfg.Accent()),
		help:          help.New(),
		input:         input,
		selectedLine:  -1,
		showCompleted: cfg.ShowCompleted,
	}
}

func (m *model) Init() tea.Cmd {
	return waitForStatus(m.statusCh)
}

func waitForStatus(ch <-chan watch.Status) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-ch
		if !ok {
			return sessionDoneMsg{}
		}
		return statusMsg{status: status}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 4
		m.ready = true
		m.layout()
		return m, nil

	case statusMsg:
		st := msg.status
		if st.Err != nil {
			// Keep showing the last good parse.
			m.lastErr = st.Err
		} else {
			m.lastErr = nil
			m.loaded = true
			m.res = st.Result
			m.rebuildRows()
			if m.preview {
				m.renderPreview()
			} else {
				m.refreshList()
			}
		}
		return m, waitForStatus(m.statusCh)

	case sessionDoneMsg:
		return m, tea.Quit

	case toggledMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("toggle failed: %v", msg.err)
			return m, nil
		}
		m.notice = fmt.Sprintf("line %d marked %s", msg.line+1, hooks.StateWord(msg.completed))
		m.session.Refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filter = ""
			m.input.SetValue("")
			m.input.Blur()
			m.rebuildRows()
			m.layout()
			return m, nil
		case "enter":
			m.filtering = false
			m.input.Blur()
			m.layout()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.filter = m.input.Value()
			m.rebuildRows()
			m.refreshList()
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.preview:
			m.preview = false
			m.refreshList()
		case m.filter != "":
			m.filter = ""
			m.input.SetValue("")
			m.rebuildRows()
			m.layout()
		}
		return m, nil

	case key.Matches(msg, m.keys.Preview):
		m.preview = !m.preview
		if m.preview {
			m.renderPreview()
		} else {
			m.refreshList()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.session.Refresh()
		m.notice = "refreshing"
		return m, nil
	}

	if m.preview {
		// Remaining keys scroll the rendered document.
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.jumpCursor(0, 1)
	case key.Matches(msg, m.keys.Bottom):
		m.jumpCursor(len(m.rows)-1, -1)
	case key.Matches(msg, m.keys.Toggle):
		if t := m.selectedTask(); t != nil {
			return m, m.toggleCmd(t)
		}
	case key.Matches(msg, m.keys.Completed):
		m.showCompleted = !m.showCompleted
		m.rebuildRows()
		m.refreshList()
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.layout()
		return m, m.input.Focus()
	}

	return m, nil
}

// toggleCmd flips the checkbox on the task's line and fires the
// configured hook. Hook failures are logged but never undo the toggle.
func (m *model) toggleCmd(t *tasks.Task) tea.Cmd {
	line := t.Line
	wasCompleted := t.Completed
	completed := !t.Completed
	store := m.store
	logger := m.logger
	cfg := m.cfg

	return func() tea.Msg {
		if err := store.Toggle(line, wasCompleted); err != nil {
			logger.Error("toggle", err)
			return toggledMsg{line: line, err: err}
		}
		logger.Toggle(store.Path(), line, completed)

		if cfg.HookCommand != "" {
			_, err := hooks.Invoke(context.Background(), hooks.Options{
				Command:   cfg.HookCommand,
				File:      store.Path(),
				Line:      line,
				Completed: completed,
				WorkDir:   cfg.ProjectRoot,
			})
			if err != nil {
				logger.Error("hook", err)
			}
		}
		return toggledMsg{line: line, completed: completed}
	}
}

func (m *model) rebuildRows() {
	m.rows = buildRows(m.res, m.showCompleted, m.filter)

	if m.selectedLine >= 0 {
		for i, r := range m.rows {
			if r.kind == rowTask && r.task.Line == m.selectedLine {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = 0
	m.jumpCursor(0, 1)
}

func (m *model) moveCursor(delta int) {
	for i := m.cursor + delta; i >= 0 && i < len(m.rows); i += delta {
		if m.rows[i].kind == rowTask {
			m.cursor = i
			m.selectedLine = m.rows[i].task.Line
			m.refreshList()
			return
		}
	}
}

// jumpCursor lands on the first task row at or after start, scanning in
// the given direction.
func (m *model) jumpCursor(start, dir int) {
	for i := start; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].kind == rowTask {
			m.cursor = i
			m.selectedLine = m.rows[i].task.Line
			m.refreshList()
			return
		}
	}
	m.selectedLine = -1
}

func (m *model) selectedTask() *tasks.Task {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	r := m.rows[m.cursor]
	if r.kind != rowTask {
		return nil
	}
	return r.task
}

// layout recomputes the viewport size from the surrounding chrome.
func (m *model) layout() {
	if !m.ready {
		return
	}
	chrome := 2 + strings.Count(m.helpView(), "\n") + 1 // title + status + help
	if m.filterVisible() {
		chrome++
	}
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	m.vp.Width = m.width
	m.vp.Height = h
	if m.preview {
		m.renderPreview()
	} else {
		m.refreshList()
	}
}

func (m *model) filterVisible() bool {
	return m.filtering || m.filter != ""
}

func (m *model) refreshList() {
	if !m.ready {
		return
	}
	m.vp.SetContent(m.renderRows())
	m.ensureCursorVisible()
}

func (m *model) ensureCursorVisible() {
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	} else if m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m *model) renderPreview() {
	if !m.ready {
		return
	}
	snap, err := m.store.Read()
	if err != nil {
		m.lastErr = err
		return
	}
	m.vp.SetContent(renderMarkdown(snap.Content, m.vp.Width))
	m.vp.GotoTop()
}

// renderMarkdown renders source through glamour, falling back to the
// raw text when the renderer cannot be built.
func renderMarkdown(source string, width int) string {
	if width < 0 {
		width = 0
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return source
	}
	out, err := r.Render(source)
	if err != nil {
		return source
	}
	return out
}

func (m *model) renderRows() string {
	if len(m.rows) == 0 {
		if !m.loaded {
			return "Loading..."
		}
		if m.filter != "" {
			return "No tasks match the filter."
		}
		return "No tasks found. Add some \"- [ ]\" items to " + m.store.Path() + "."
	}

	lines := make([]string, 0, len(m.rows))
	for i, r := range m.rows {
		lines = append(lines, m.renderRow(r, i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderRow(r row, selected bool) string {
	if r.kind == rowHeading {
		counts := fmt.Sprintf(" (%d open, %d done)", r.open, r.done)
		line := m.styles.Heading.Render(r.heading) + m.styles.Counts.Render(counts)
		return fitWidth(line, m.width)
	}

	marker := "[ ]"
	if r.task.Completed {
		marker = "[x]"
	}
	indent := strings.Repeat("  ", r.depth)
	text := r.task.Text

	cursor := "  "
	if selected {
		cursor = m.styles.Cursor.Render("❯ ")
	}

	body := fmt.Sprintf("%s%s %s", indent, marker, text)
	switch {
	case r.task.Completed:
		body = m.styles.Done.Render(body)
	case selected:
		body = m.styles.Selected.Render(body)
	}
	return fitWidth("  "+cursor+body, m.width)
}

func (m *model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.titleView())
	b.WriteString("\n")
	if m.filterVisible() {
		b.WriteString(m.filterView())
		b.WriteString("\n")
	}
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m *model) titleView() string {
	title := m.styles.Title.Render("tickdown") + " " + m.styles.Path.Render(m.store.Path())
	if m.preview {
		title += m.styles.Counts.Render("  (preview)")
	}
	return fitWidth(title, m.width)
}

func (m *model) filterView() string {
	if m.filtering {
		return fitWidth(m.input.View(), m.width)
	}
	return fitWidth(m.styles.Filter.Render("/"+m.filter)+m.styles.Counts.Render("  (esc to clear)"), m.width)
}

func (m *model) statusView() string {
	if m.lastErr != nil {
		return fitWidth(m.styles.Error.Render("error: "+m.lastErr.Error()), m.width)
	}
	line := fmt.Sprintf("%d open · %d done", m.res.TotalOpen, m.res.TotalCompleted)
	if m.notice != "" {
		line += " · " + m.notice
	}
	return fitWidth(m.styles.Status.Render(line), m.width)
}

func (m *model) helpView() string {
	return m.help.View(m.keys)
}

func fitWidth(line string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(line, width, "…")
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
