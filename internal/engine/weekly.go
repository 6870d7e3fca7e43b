package engine

import (
	"context"
	"math/rand"
	"slices"

	"lento/internal/storage"
)

// WeeklyResult is one read of the week's quests.
type WeeklyResult struct {
	WeekKey string
	Quests  []QuestView
	XP      int
}

// randomPick is the default weekly selector: k of n, uniform, deliberately
// unseeded. A fresh roll each new week is the intended behavior.
func randomPick(n, k int) []int {
	idx := rand.Perm(n)
	if k > n {
		k = n
	}
	return idx[:k]
}

// WeeklyQuests returns the current week's assignment, replacing the stored
// one wholesale when the week has rolled over. Quests whose progress reaches
// target are appended to the completed set exactly once.
func (s *Service) WeeklyQuests(ctx context.Context) (*WeeklyResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	w, err := s.weekly.Load(ctx)
	if err != nil {
		s.log.Warn("weekly assignment unreadable", "err", err)
	}
	if w == nil || w.WeekKey != snap.WeekKey {
		w = s.assignWeek(ctx, snap.WeekKey)
	}

	res := &WeeklyResult{WeekKey: w.WeekKey}
	dirty := false
	for _, id := range w.Assigned {
		def := weeklyQuestByID(id)
		if def == nil {
			continue
		}
		p := def.GetProgress(snap)
		done := p.Done()
		if done && !slices.Contains(w.Completed, id) {
			w.Completed = append(w.Completed, id)
			dirty = true
		}
		res.Quests = append(res.Quests, QuestView{
			ID:        def.ID,
			Category:  def.Category,
			Title:     def.Title,
			XP:        def.XP,
			Progress:  p,
			Completed: done,
		})
	}
	if dirty {
		if err := s.weekly.Save(ctx, *w); err != nil {
			s.log.Warn("weekly completion not persisted", "week", w.WeekKey, "err", err)
		}
	}

	res.XP = weeklyXP(*w, snap.WeekKey)
	return res, nil
}

// assignWeek picks 2 of the 3 weekly quests for a fresh week and persists
// the assignment, replacing whatever previous week was stored.
func (s *Service) assignWeek(ctx context.Context, weekKey string) *storage.WeeklyAssignment {
	defs := WeeklyCatalog()
	picked := s.weeklyPick(len(defs), weeklyAssignedCount)

	w := &storage.WeeklyAssignment{WeekKey: weekKey}
	for _, i := range picked {
		if i < 0 || i >= len(defs) {
			continue
		}
		w.Assigned = append(w.Assigned, defs[i].ID)
	}

	if err := s.weekly.Save(ctx, *w); err != nil {
		s.log.Warn("weekly assignment not persisted", "week", weekKey, "err", err)
	} else {
		s.log.Debug("assigned weekly quests", "week", weekKey, "quests", w.Assigned)
	}
	return w
}

// WeeklyXP sums XP for this week's completed quests. Stale completions from
// a previous stored week count for nothing.
func (s *Service) WeeklyXP(ctx context.Context) (int, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	w, err := s.weekly.Load(ctx)
	if err != nil || w == nil {
		return 0, err
	}
	return weeklyXP(*w, snap.WeekKey), nil
}

func weeklyXP(w storage.WeeklyAssignment, currentWeek string) int {
	if w.WeekKey != currentWeek {
		return 0
	}
	total := 0
	for _, id := range w.Completed {
		if def := weeklyQuestByID(id); def != nil {
			total += def.XP
		}
	}
	return total
}
