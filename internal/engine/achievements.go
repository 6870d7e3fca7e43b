package engine

import (
	"context"
	"slices"
	"time"
)

// AchievementDef is one static achievement with its unlock condition over
// the stats snapshot's lifetime totals.
type AchievementDef struct {
	ID          string
	Name        string
	Description string
	Icon        string

	Condition func(s StatsSnapshot) bool
}

// Achievement is an achievement with its unlocked status for display.
type Achievement struct {
	AchievementDef
	Unlocked bool
}

// AchievementCatalog returns the static achievement definitions. Ids are
// persisted in the unlocked set, so keep them stable.
func AchievementCatalog() []AchievementDef {
	return []AchievementDef{
		{
			ID: "xp_100", Name: "Warming Up", Description: "Earn 100 XP", Icon: "⚡",
			Condition: func(s StatsSnapshot) bool { return s.AllTimeXP >= 100 },
		},
		{
			ID: "xp_500", Name: "Momentum", Description: "Earn 500 XP", Icon: "🔥",
			Condition: func(s StatsSnapshot) bool { return s.AllTimeXP >= 500 },
		},
		{
			ID: "xp_2000", Name: "Unstoppable", Description: "Earn 2000 XP", Icon: "🌟",
			Condition: func(s StatsSnapshot) bool { return s.AllTimeXP >= 2000 },
		},
		{
			ID: "journal_first", Name: "Dear Diary", Description: "Write your first journal entry", Icon: "📓",
			Condition: func(s StatsSnapshot) bool { return s.JournalCount >= 1 },
		},
		{
			ID: "journal_10", Name: "Storyteller", Description: "Write 10 journal entries", Icon: "✍️",
			Condition: func(s StatsSnapshot) bool { return s.JournalCount >= 10 },
		},
		{
			ID: "journal_50", Name: "Chronicler", Description: "Write 50 journal entries", Icon: "📚",
			Condition: func(s StatsSnapshot) bool { return s.JournalCount >= 50 },
		},
		{
			ID: "focus_hour", Name: "Deep Breath", Description: "Focus for a total hour", Icon: "🧘",
			Condition: func(s StatsSnapshot) bool { return s.FocusMinutesTotal >= 60 },
		},
		{
			ID: "focus_600", Name: "Deep Worker", Description: "Focus for 10 total hours", Icon: "🎯",
			Condition: func(s StatsSnapshot) bool { return s.FocusMinutesTotal >= 600 },
		},
		{
			ID: "book_first", Name: "Page One", Description: "Finish a book", Icon: "📖",
			Condition: func(s StatsSnapshot) bool { return s.BooksFinished >= 1 },
		},
		{
			ID: "book_5", Name: "Bookworm", Description: "Finish 5 books", Icon: "🐛",
			Condition: func(s StatsSnapshot) bool { return s.BooksFinished >= 5 },
		},
		{
			ID: "streak_7", Name: "One Week Strong", Description: "Hold a 7-day habit streak", Icon: "📅",
			Condition: func(s StatsSnapshot) bool { return s.LongestHabitStreak >= 7 },
		},
		{
			ID: "streak_30", Name: "Iron Will", Description: "Hold a 30-day habit streak", Icon: "🏆",
			Condition: func(s StatsSnapshot) bool { return s.LongestHabitStreak >= 30 },
		},
	}
}

// CheckAchievements evaluates every locked achievement against the current
// snapshot, persists any newly crossed ones and returns them. Idempotent: a
// second call with the same totals returns nothing new.
func (s *Service) CheckAchievements(ctx context.Context) ([]AchievementDef, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.achievements.Load(ctx)
	if err != nil {
		s.log.Warn("achievement state unreadable", "err", err)
	}

	var newly []AchievementDef
	for _, def := range AchievementCatalog() {
		if slices.Contains(st.Unlocked, def.ID) {
			continue
		}
		if def.Condition(snap) {
			st.Unlocked = append(st.Unlocked, def.ID)
			newly = append(newly, def)
		}
	}

	st.LastCheck = s.clock.Now().Format(time.RFC3339)
	if err := s.achievements.Save(ctx, st); err != nil {
		s.log.Warn("achievement state not persisted", "err", err)
	}
	return newly, nil
}

// Achievements returns the whole catalog with unlocked flags for display.
func (s *Service) Achievements(ctx context.Context) ([]Achievement, error) {
	st, err := s.achievements.Load(ctx)
	if err != nil {
		return nil, err
	}

	defs := AchievementCatalog()
	out := make([]Achievement, 0, len(defs))
	for _, def := range defs {
		out = append(out, Achievement{
			AchievementDef: def,
			Unlocked:       slices.Contains(st.Unlocked, def.ID),
		})
	}
	return out, nil
}
