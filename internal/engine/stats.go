package engine

import (
	"sort"
	"time"

	"lento/internal/activity"
)

const dayKeyLayout = "2006-01-02"

// StatsSnapshot is the flat, side-effect-free view of user activity the
// catalog predicates and progress functions read. It is recomputed on every
// read and is stable for identical inputs and reference instant.
type StatsSnapshot struct {
	DayKey  string
	WeekKey string

	// Today / this week.
	ActiveHabits       int
	HabitsDoneToday    int
	JournalToday       bool
	BookTouchedToday   bool
	FocusMinutesToday  int
	FocusSessionsToday int
	FocusMinutesWeek   int
	HabitDaysThisWeek  int
	JournalThisWeek    int

	// Usage history, for gating quests on features the user actually uses.
	HasBook           bool
	UsedFocusBefore   bool
	UsedJournalBefore bool
	UsedBooksBefore   bool

	// Lifetime totals.
	AllTimeXP          int
	JournalCount       int
	FocusMinutesTotal  int
	BooksFinished      int
	LongestHabitStreak int
}

// DayKey formats t as a local-calendar day key.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// WeekKey returns the day key of the Monday starting t's local week.
func WeekKey(t time.Time) string {
	return DayKey(weekStart(t))
}

// weekStart returns Monday 00:00:00 local of t's week.
func weekStart(t time.Time) time.Time {
	back := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -back)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// parseDayKey normalizes a stored date field to a local day key. Accepts a
// bare day key or an RFC 3339 timestamp. Returns "" when unparseable; the
// caller skips such records.
func parseDayKey(raw string, loc *time.Location) string {
	if raw == "" {
		return ""
	}
	if t, err := time.ParseInLocation(dayKeyLayout, raw, loc); err == nil {
		return DayKey(t)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return DayKey(t.In(loc))
	}
	return ""
}

// BuildSnapshot aggregates raw activity collections into a StatsSnapshot as
// of now. Records with missing or unparseable dates are excluded from every
// aggregate rather than failing the build.
func BuildSnapshot(data activity.Data, now time.Time, allTimeXP int) StatsSnapshot {
	loc := now.Location()
	today := DayKey(now)
	ws := weekStart(now)
	week := DayKey(ws)
	weekDays := make(map[string]bool, 7)
	for i := 0; i < 7; i++ {
		weekDays[DayKey(ws.AddDate(0, 0, i))] = true
	}

	s := StatsSnapshot{
		DayKey:    today,
		WeekKey:   week,
		AllTimeXP: allTimeXP,
	}

	habitWeekDays := map[string]bool{}
	for _, h := range data.Habits {
		if h.Archived {
			continue
		}
		s.ActiveHabits++
		if h.Completions[today] {
			s.HabitsDoneToday++
		}
		for day, done := range h.Completions {
			if done && weekDays[day] {
				habitWeekDays[day] = true
			}
		}
		if streak := longestStreak(h.Completions, loc); streak > s.LongestHabitStreak {
			s.LongestHabitStreak = streak
		}
	}
	s.HabitDaysThisWeek = len(habitWeekDays)

	for _, e := range data.Journal {
		day := parseDayKey(e.CreatedAt, loc)
		if day == "" {
			continue
		}
		s.JournalCount++
		s.UsedJournalBefore = true
		if day == today {
			s.JournalToday = true
		}
		if weekDays[day] {
			s.JournalThisWeek++
		}
	}

	for _, f := range data.Focus {
		day := parseDayKey(f.Date, loc)
		if day == "" || f.Minutes < 0 {
			continue
		}
		s.UsedFocusBefore = true
		s.FocusMinutesTotal += f.Minutes
		if day == today {
			s.FocusMinutesToday += f.Minutes
			s.FocusSessionsToday++
		}
		if weekDays[day] {
			s.FocusMinutesWeek += f.Minutes
		}
	}

	for _, b := range data.Books {
		s.HasBook = true
		s.UsedBooksBefore = true
		if b.Status == activity.BookFinished {
			s.BooksFinished++
		}
		if parseDayKey(b.UpdatedAt, loc) == today {
			s.BookTouchedToday = true
		}
	}

	return s
}

// longestStreak finds the longest run of consecutive completed days in a
// habit's completion map.
func longestStreak(completions map[string]bool, loc *time.Location) int {
	days := make([]time.Time, 0, len(completions))
	for raw, done := range completions {
		if !done {
			continue
		}
		t, err := time.ParseInLocation(dayKeyLayout, raw, loc)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 0, 0
	var prev time.Time
	for i, d := range days {
		if i > 0 && prev.AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		prev = d
	}
	return best
}
