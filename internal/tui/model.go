package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lento/internal/engine"
	"lento/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	daily  *engine.DailyResult
	weekly *engine.WeeklyResult
	xp     int

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	daily  *engine.DailyResult
	weekly *engine.WeeklyResult
	xp     int
	err    error
}

type rerolledMsg struct {
	questID string
	ok      bool
	err     error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		daily, err := m.svc.DailyQuests(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		weekly, err := m.svc.WeeklyQuests(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		xp, err := m.svc.AllTimeXP(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{daily: daily, weekly: weekly, xp: xp}
	}
}

func (m boardModel) rerollCmd(questID string) tea.Cmd {
	return func() tea.Msg {
		ok, err := m.svc.Reroll(m.ctx, questID)
		return rerolledMsg{questID: questID, ok: ok, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.daily = msg.daily
		m.weekly = msg.weekly
		m.xp = msg.xp
		if m.selected >= len(m.daily.Quests) {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case rerolledMsg:
		if msg.err != nil {
			m.lastLog = "Reroll failed: " + msg.err.Error()
			return m, nil
		}
		if !msg.ok {
			m.lastLog = "Reroll not available for " + msg.questID + "."
			return m, nil
		}
		m.lastLog = "Rerolled " + msg.questID + "."
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "g":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.daily != nil && m.selected < len(m.daily.Quests)-1 {
				m.selected++
			}
			return m, nil
		case "r":
			if m.daily == nil || m.selected >= len(m.daily.Quests) {
				return m, nil
			}
			if !m.daily.RerollAvailable {
				m.lastLog = "Reroll already used today."
				return m, nil
			}
			return m, m.rerollCmd(m.daily.Quests[m.selected].ID)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	var b strings.Builder

	b.WriteString(ui.Heading(ui.IconQuest, "Today's Quests") + "\n")
	if m.loading {
		b.WriteString(ui.Muted.Render("Loading…") + "\n")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(ui.Bad.Render("Error: "+m.err.Error()) + "\n")
		return b.String()
	}

	if m.daily != nil {
		for i, q := range m.daily.Quests {
			line := fmt.Sprintf("%s %s  %s  %s",
				ui.CategoryIcon(string(q.Category)),
				q.Title,
				ui.ProgressText(q.Progress.Current, q.Progress.Target, q.Completed),
				ui.Muted.Render(fmt.Sprintf("+%d XP", q.XP)),
			)
			if q.Completed {
				line = ui.IconDone + " " + line
			} else {
				line = "  " + line
			}
			if i == m.selected {
				line = ui.SelectedRow.Render(line)
			}
			b.WriteString(line + "\n")
		}
		status := ui.IconReroll + " reroll available"
		if !m.daily.RerollAvailable {
			status = ui.IconLock + " reroll used"
		}
		b.WriteString(ui.Muted.Render(status) + "\n")
	}

	b.WriteString("\n" + ui.H2.Render(ui.IconWeek+" This Week") + "\n")
	if m.weekly != nil {
		for _, q := range m.weekly.Quests {
			mark := "  "
			if q.Completed {
				mark = ui.IconDone + " "
			}
			b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
				mark, q.Title,
				ui.ProgressText(q.Progress.Current, q.Progress.Target, q.Completed),
				ui.Muted.Render(fmt.Sprintf("+%d XP", q.XP)),
			))
		}
	}

	b.WriteString("\n" + ui.LabelValue("All-time XP", m.xp) + "\n")
	b.WriteString(ui.Muted.Render("j/k move · r reroll · g refresh · q quit") + "\n")
	b.WriteString(ui.Muted.Render(m.lastLog) + "\n")
	return b.String()
}
