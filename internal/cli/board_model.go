package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mresler/dayboard/internal/board"
	"github.com/mresler/dayboard/internal/domain"
	"github.com/mresler/dayboard/internal/realtime"
)

// feedAppliedMsg signals that one realtime change has been folded in.
type feedAppliedMsg struct {
	conflict bool
}

// feedClosedMsg signals that the realtime feed terminated.
type feedClosedMsg struct {
	err error
}

// commitDoneMsg carries the result of an adjustment commit.
type commitDoneMsg struct {
	failed []string
	err    error
}

// refreshedMsg carries the result of a manual refetch.
type refreshedMsg struct {
	err error
}

// flashClearMsg clears the status flash after a pause. Stale sequence numbers
// are ignored so a newer flash is not wiped early.
type flashClearMsg struct {
	seq int
}

type boardKeyMap struct {
	PrevTeacher key.Binding
	NextTeacher key.Binding
	Up          key.Binding
	Down        key.Binding
	Adjust      key.Binding
	Earlier     key.Binding
	Later       key.Binding
	Commit      key.Binding
	Cancel      key.Binding
	Refresh     key.Binding
	Quit        key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		PrevTeacher: key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "prev teacher")),
		NextTeacher: key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "next teacher")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Adjust:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "adjust")),
		Earlier:     key.NewBinding(key.WithKeys("H", "<"), key.WithHelp("H", "earlier")),
		Later:       key.NewBinding(key.WithKeys("L", ">"), key.WithHelp("L", "later")),
		Commit:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "commit")),
		Cancel:      key.NewBinding(key.WithKeys("x", "esc"), key.WithHelp("x", "cancel")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardModel is the interactive day view: one teacher lane at a time, with
// the realtime feed folding changes in while the admin works.
type boardModel struct {
	ctx  context.Context
	c    *board.Coordinator
	feed realtime.Feed
	keys boardKeyMap

	teachers []domain.Teacher
	sel      int
	rows     []board.MergedEvent
	table    table.Model

	flash      string
	flashSeq   int
	committing bool
	width      int
	quitting   bool
}

func newBoardModel(ctx context.Context, session *BoardSession) *boardModel {
	columns := []table.Column{
		{Title: "Time", Width: 13},
		{Title: "Booking", Width: 18},
		{Title: "St", Width: 3},
		{Title: "Location", Width: 14},
		{Title: "Status", Width: 11},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(colorHeader).Bold(true)
	styles.Selected = styles.Selected.Foreground(colorFg).Background(colorHeader)
	tbl.SetStyles(styles)

	m := &boardModel{
		ctx:   ctx,
		c:     session.Coordinator,
		feed:  session.Feed,
		keys:  defaultBoardKeyMap(),
		table: tbl,
	}
	m.reload()
	return m
}

func (m *boardModel) Init() tea.Cmd {
	return m.listenFeed()
}

// listenFeed waits for the next realtime change, applies it, and reports back.
func (m *boardModel) listenFeed() tea.Cmd {
	return func() tea.Msg {
		change, ok := <-m.feed.Changes()
		if !ok {
			return feedClosedMsg{err: m.feed.Err()}
		}
		err := m.c.OnRealtimeEvent(m.ctx, change)
		return feedAppliedMsg{conflict: errors.Is(err, board.ErrAdjustmentConflict)}
	}
}

// reload pulls the current roster and the selected teacher's merged lane.
func (m *boardModel) reload() {
	m.teachers = m.c.Teachers()
	if m.sel >= len(m.teachers) {
		m.sel = 0
	}
	m.rows = nil
	if len(m.teachers) > 0 {
		m.rows = m.c.MergedEvents(m.teachers[m.sel].ID)
	}

	rows := make([]table.Row, 0, len(m.rows))
	for _, ev := range m.rows {
		marker := " "
		if ev.Pending {
			marker = "~"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%s%s-%s", marker, ev.Node.Start().Format("15:04"), ev.Node.End().Format("15:04")),
			ev.Node.BookingLeaderName,
			fmt.Sprintf("%d", ev.Node.CapacityStudents),
			ev.Node.Data.Location,
			string(ev.Node.Data.Status),
		})
	}
	m.table.SetRows(rows)
	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *boardModel) selectedEvent() (board.MergedEvent, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.rows) {
		return board.MergedEvent{}, false
	}
	return m.rows[cursor], true
}

func (m *boardModel) setFlash(text string) tea.Cmd {
	m.flash = text
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return flashClearMsg{seq: seq}
	})
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(max(4, msg.Height-8))
		return m, nil

	case feedAppliedMsg:
		m.reload()
		if msg.conflict {
			return m, tea.Batch(m.listenFeed(), m.setFlash("adjustment discarded: another admin changed this teacher"))
		}
		return m, m.listenFeed()

	case feedClosedMsg:
		if msg.err != nil {
			return m, m.setFlash("realtime feed lost: " + msg.err.Error())
		}
		return m, m.setFlash("realtime feed closed")

	case refreshedMsg:
		m.reload()
		if msg.err != nil {
			return m, m.setFlash("refresh failed: " + msg.err.Error())
		}
		return m, nil

	case commitDoneMsg:
		m.committing = false
		m.reload()
		if msg.err != nil {
			return m, m.setFlash(fmt.Sprintf("commit failed for %d event(s), session kept open", len(msg.failed)))
		}
		return m, m.setFlash("adjustments committed")

	case flashClearMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTeacher):
		if len(m.teachers) > 0 {
			m.sel = (m.sel + 1) % len(m.teachers)
			m.reload()
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevTeacher):
		if len(m.teachers) > 0 {
			m.sel = (m.sel - 1 + len(m.teachers)) % len(m.teachers)
			m.reload()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, func() tea.Msg {
			return refreshedMsg{err: m.c.Refresh(m.ctx)}
		}

	case key.Matches(msg, m.keys.Adjust):
		if len(m.teachers) == 0 {
			return m, nil
		}
		err := m.c.EnterAdjustmentMode([]string{m.teachers[m.sel].ID})
		if errors.Is(err, board.ErrAlreadyAdjusting) {
			return m, m.setFlash("an adjustment session is already open")
		}
		if err != nil {
			return m, m.setFlash(err.Error())
		}
		m.reload()
		return m, m.setFlash("adjusting " + m.teachers[m.sel].Username)

	case key.Matches(msg, m.keys.Earlier):
		return m, m.shiftSelected(-m.c.Settings().StepMin)

	case key.Matches(msg, m.keys.Later):
		return m, m.shiftSelected(m.c.Settings().StepMin)

	case key.Matches(msg, m.keys.Commit):
		if m.c.SessionState() == board.SessionClosed || m.committing {
			return m, nil
		}
		m.committing = true
		return m, func() tea.Msg {
			failed, err := m.c.CommitAdjustment(m.ctx)
			return commitDoneMsg{failed: failed, err: err}
		}

	case key.Matches(msg, m.keys.Cancel):
		if m.c.SessionState() != board.SessionClosed {
			m.c.CancelAdjustment()
			m.reload()
			return m, m.setFlash("adjustments discarded")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// shiftSelected proposes moving the selected event by the given minutes.
func (m *boardModel) shiftSelected(minutes int) tea.Cmd {
	if m.c.SessionState() == board.SessionClosed {
		return m.setFlash("press a to start adjusting first")
	}
	ev, ok := m.selectedEvent()
	if !ok {
		return nil
	}
	if ev.Pending {
		return m.setFlash("pending events cannot be adjusted yet")
	}
	start := ev.Node.Start().Add(time.Duration(minutes) * time.Minute)
	err := m.c.ProposeAdjustment(board.Delta{EventID: ev.Node.ID, Start: &start})
	if errors.Is(err, board.ErrSlotConflict) {
		return m.setFlash("that move would overlap another event")
	}
	if err != nil {
		return m.setFlash(err.Error())
	}
	m.reload()
	return nil
}

func (m *boardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Dayboard " + m.c.Day().Format(dayLayout)))
	b.WriteString("\n\n")

	if len(m.teachers) == 0 {
		b.WriteString(dimStyle.Render("No active teachers today."))
		b.WriteString("\n")
		return b.String()
	}

	tabs := make([]string, 0, len(m.teachers))
	for i, t := range m.teachers {
		style := tabStyle
		if i == m.sel {
			style = tabActiveStyle
		}
		tabs = append(tabs, style.Render(t.Username))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render("←/→ teacher · a adjust · H/L move · c commit · x cancel · r refresh · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *boardModel) statusLine() string {
	parts := []string{}
	switch m.c.SessionState() {
	case board.SessionOpen:
		parts = append(parts, okStyle.Render("adjusting"))
	case board.SessionOpenDirty:
		parts = append(parts, pendingStyle.Render("adjusting (unsaved)"))
	}
	if n := m.c.PendingCount(); n > 0 {
		parts = append(parts, pendingStyle.Render(fmt.Sprintf("%d pending", n)))
	}
	if n := len(m.c.SkippedLessons()); n > 0 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("%d not placed", n)))
	}
	if m.committing {
		parts = append(parts, dimStyle.Render("saving..."))
	}
	if m.flash != "" {
		parts = append(parts, alertStyle.Render(m.flash))
	}
	if len(parts) == 0 {
		return dimStyle.Render("live")
	}
	return strings.Join(parts, dimStyle.Render("  ·  "))
}
