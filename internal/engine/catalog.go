package engine

import "fmt"

type QuestCategory string

const (
	CategoryJournal QuestCategory = "journal"
	CategoryHabit   QuestCategory = "habit"
	CategoryFocus   QuestCategory = "focus"
	CategoryBooks   QuestCategory = "books"
)

// Progress is a quest's live state, clamped so Current never exceeds Target.
type Progress struct {
	Current int
	Target  int
}

func (p Progress) Done() bool { return p.Current >= p.Target }

func clamp(current, target int) Progress {
	if current > target {
		current = target
	}
	if current < 0 {
		current = 0
	}
	return Progress{Current: current, Target: target}
}

// QuestDef is one static daily quest definition. Eligible and GetProgress
// read only the snapshot, never storage; Params (when set) draws randomized
// targets from its own RNG stream at assignment time.
type QuestDef struct {
	ID        string
	Category  QuestCategory
	XP        int
	Mandatory bool

	Eligible    func(s StatsSnapshot) bool
	Title       func(params map[string]int) string
	GetProgress func(s StatsSnapshot, params map[string]int) Progress
	Params      func(rng *RNG) map[string]int
}

// FocusTargetChoices are the focus-quest minute targets the RNG picks from.
var FocusTargetChoices = []int{15, 25, 45}

// QuestJournal is the anchor quest id: always offered first when eligible
// and never a valid reroll target.
const QuestJournal = "journal_entry"

// habitTarget keeps the habit quest achievable while scaling with how many
// habits the user actually runs.
func habitTarget(s StatsSnapshot) int {
	t := s.ActiveHabits
	if t > 3 {
		t = 3
	}
	if t < 1 {
		t = 1
	}
	return t
}

// DailyCatalog returns the static daily quest definitions. Keep ids stable:
// assignments persist them.
func DailyCatalog() []QuestDef {
	return []QuestDef{
		{
			ID:        QuestJournal,
			Category:  CategoryJournal,
			XP:        20,
			Mandatory: true,
			Eligible:  func(StatsSnapshot) bool { return true },
			Title:     func(map[string]int) string { return "Write a journal entry" },
			GetProgress: func(s StatsSnapshot, _ map[string]int) Progress {
				cur := 0
				if s.JournalToday {
					cur = 1
				}
				return clamp(cur, 1)
			},
		},
		{
			ID:       "habit_complete",
			Category: CategoryHabit,
			XP:       25,
			Eligible: func(s StatsSnapshot) bool { return s.ActiveHabits > 0 },
			Title:    func(map[string]int) string { return "Check off your habits" },
			GetProgress: func(s StatsSnapshot, _ map[string]int) Progress {
				return clamp(s.HabitsDoneToday, habitTarget(s))
			},
		},
		{
			ID:       "perfect_day",
			Category: CategoryHabit,
			XP:       40,
			Eligible: func(s StatsSnapshot) bool { return s.ActiveHabits >= 2 },
			Title:    func(map[string]int) string { return "Complete every habit today" },
			GetProgress: func(s StatsSnapshot, _ map[string]int) Progress {
				target := s.ActiveHabits
				if target < 1 {
					target = 1
				}
				return clamp(s.HabitsDoneToday, target)
			},
		},
		{
			ID:       "focus_minutes",
			Category: CategoryFocus,
			XP:       30,
			Eligible: func(s StatsSnapshot) bool { return s.UsedFocusBefore },
			Title: func(params map[string]int) string {
				return fmt.Sprintf("Focus for %d minutes", params["minutes"])
			},
			GetProgress: func(s StatsSnapshot, params map[string]int) Progress {
				target := params["minutes"]
				if target <= 0 {
					target = FocusTargetChoices[0]
				}
				return clamp(s.FocusMinutesToday, target)
			},
			Params: func(rng *RNG) map[string]int {
				return map[string]int{"minutes": rng.PickInt(FocusTargetChoices)}
			},
		},
		{
			ID:       "focus_sessions",
			Category: CategoryFocus,
			XP:       25,
			Eligible: func(s StatsSnapshot) bool { return s.UsedFocusBefore },
			Title: func(params map[string]int) string {
				return fmt.Sprintf("Finish %d focus sessions", params["sessions"])
			},
			GetProgress: func(s StatsSnapshot, params map[string]int) Progress {
				target := params["sessions"]
				if target <= 0 {
					target = 2
				}
				return clamp(s.FocusSessionsToday, target)
			},
			Params: func(rng *RNG) map[string]int {
				return map[string]int{"sessions": rng.PickInt([]int{2, 3})}
			},
		},
		{
			ID:       "book_reading",
			Category: CategoryBooks,
			XP:       20,
			Eligible: func(s StatsSnapshot) bool { return s.HasBook },
			Title:    func(map[string]int) string { return "Log some reading" },
			GetProgress: func(s StatsSnapshot, _ map[string]int) Progress {
				cur := 0
				if s.BookTouchedToday {
					cur = 1
				}
				return clamp(cur, 1)
			},
		},
	}
}

// questByID resolves a catalog id; stale persisted ids from removed entries
// resolve to nil and get filtered out of views.
func questByID(id string) *QuestDef {
	defs := DailyCatalog()
	for i := range defs {
		if defs[i].ID == id {
			return &defs[i]
		}
	}
	return nil
}

// WeeklyQuestDef is one static weekly quest definition.
type WeeklyQuestDef struct {
	ID       string
	Category QuestCategory
	Title    string
	XP       int

	GetProgress func(s StatsSnapshot) Progress
}

// WeeklyCatalog returns the 3 weekly quest definitions; each new week two of
// them are assigned.
func WeeklyCatalog() []WeeklyQuestDef {
	return []WeeklyQuestDef{
		{
			ID:       "weekly_habit",
			Category: CategoryHabit,
			Title:    "Check in on habits 7 days in a row",
			XP:       100,
			GetProgress: func(s StatsSnapshot) Progress {
				return clamp(s.HabitDaysThisWeek, 7)
			},
		},
		{
			ID:       "weekly_focus",
			Category: CategoryFocus,
			Title:    "Focus 120 minutes this week",
			XP:       80,
			GetProgress: func(s StatsSnapshot) Progress {
				return clamp(s.FocusMinutesWeek, 120)
			},
		},
		{
			ID:       "weekly_journal",
			Category: CategoryJournal,
			Title:    "Write 3 journal entries this week",
			XP:       60,
			GetProgress: func(s StatsSnapshot) Progress {
				return clamp(s.JournalThisWeek, 3)
			},
		},
	}
}

func weeklyQuestByID(id string) *WeeklyQuestDef {
	defs := WeeklyCatalog()
	for i := range defs {
		if defs[i].ID == id {
			return &defs[i]
		}
	}
	return nil
}
