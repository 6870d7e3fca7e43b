package engine

import (
	"context"

	"lento/internal/storage"
)

// QuestView is the materialized quest the UI renders. It is never persisted;
// progress and completion are recomputed live against the frozen params.
type QuestView struct {
	ID        string
	Category  QuestCategory
	Title     string
	XP        int
	Params    map[string]int
	Progress  Progress
	Completed bool
}

// DailyResult is one read of the day: the materialized quest set plus the
// reroll state.
type DailyResult struct {
	DayKey          string
	Quests          []QuestView
	RerollAvailable bool
	EarnedXP        int
	CompletedCount  int
}

// DailyQuests returns today's quest set, assigning it on first read of the
// day. The assignment is frozen after that; only progress moves. Each read
// also records the day's earned XP into the ledger (monotonic, so calling on
// every render is safe).
func (s *Service) DailyQuests(ctx context.Context) (*DailyResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	installID, err := s.InstallID(ctx)
	if err != nil {
		return nil, err
	}

	assignment, created, err := s.daily.GetOrCreate(ctx, snap.DayKey, func() storage.DailyAssignment {
		return s.generateAssignment(snap, installID)
	})
	if err != nil {
		// Persist failures degrade to an unsaved assignment for this read.
		s.log.Warn("daily assignment not persisted", "day", snap.DayKey, "err", err)
	}
	if created {
		s.log.Debug("assigned daily quests", "day", snap.DayKey, "count", len(assignment.Chosen))
	}

	res := &DailyResult{
		DayKey:          snap.DayKey,
		Quests:          materializeDaily(snap, assignment.Chosen),
		RerollAvailable: !assignment.Rerolled,
	}
	for _, q := range res.Quests {
		if q.Completed {
			res.EarnedXP += q.XP
			res.CompletedCount++
		}
	}

	if err := s.xp.Record(ctx, snap.DayKey, res.EarnedXP, res.CompletedCount); err != nil {
		s.log.Warn("xp ledger write failed", "day", snap.DayKey, "err", err)
	}

	return res, nil
}

// generateAssignment runs the deterministic selection for a fresh day: seed
// from (day key, install id), anchor quest first when eligible, then unique
// draws from the eligible pool until max quests are chosen or the pool runs
// out.
func (s *Service) generateAssignment(snap StatsSnapshot, installID string) storage.DailyAssignment {
	seed := DeriveSeed(snap.DayKey, installID)
	rng := NewRNG(seed)

	var chosen []storage.ChosenQuest
	var pool []QuestDef
	for _, def := range DailyCatalog() {
		if !def.Eligible(snap) {
			continue
		}
		if def.Mandatory {
			chosen = append(chosen, s.freezeQuest(def, snap.DayKey, installID))
			continue
		}
		pool = append(pool, def)
	}

	for len(chosen) < s.maxDaily && len(pool) > 0 {
		i := rng.IntN(len(pool))
		def := pool[i]
		pool = append(pool[:i], pool[i+1:]...)
		chosen = append(chosen, s.freezeQuest(def, snap.DayKey, installID))
	}

	return storage.DailyAssignment{Seed: seed, Chosen: chosen}
}

// freezeQuest fills a quest's randomized params from its own derived RNG
// stream so parameter draws stay uncorrelated with the set selection.
func (s *Service) freezeQuest(def QuestDef, dayKey, installID string) storage.ChosenQuest {
	q := storage.ChosenQuest{ID: def.ID}
	if def.Params != nil {
		q.Params = def.Params(NewRNG(paramsSeed(dayKey, installID, def.ID)))
	}
	return q
}

// materializeDaily builds view models for the stored quest set. Ids no
// longer present in the catalog are dropped silently.
func materializeDaily(snap StatsSnapshot, chosen []storage.ChosenQuest) []QuestView {
	views := make([]QuestView, 0, len(chosen))
	for _, c := range chosen {
		def := questByID(c.ID)
		if def == nil {
			continue
		}
		p := def.GetProgress(snap, c.Params)
		views = append(views, QuestView{
			ID:        def.ID,
			Category:  def.Category,
			Title:     def.Title(c.Params),
			XP:        def.XP,
			Params:    c.Params,
			Progress:  p,
			Completed: p.Done(),
		})
	}
	return views
}

// Reroll replaces one non-mandatory, zero-progress quest in today's
// assignment with a deterministically chosen eligible substitute. It returns
// false (never an error) when any guard fails: reroll already used, target
// is the anchor quest, target not assigned, target has progress, or no
// eligible replacement exists. State is only mutated when the persist
// succeeds.
func (s *Service) Reroll(ctx context.Context, questID string) (bool, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	installID, err := s.InstallID(ctx)
	if err != nil {
		return false, err
	}

	assignment, err := s.daily.Get(ctx, snap.DayKey)
	if err != nil {
		return false, err
	}
	if assignment == nil || assignment.Rerolled {
		return false, nil
	}

	def := questByID(questID)
	if def == nil || def.Mandatory {
		return false, nil
	}

	slot := -1
	assigned := make(map[string]bool, len(assignment.Chosen))
	for i, c := range assignment.Chosen {
		assigned[c.ID] = true
		if c.ID == questID {
			slot = i
		}
	}
	if slot == -1 {
		return false, nil
	}
	if def.GetProgress(snap, assignment.Chosen[slot].Params).Current != 0 {
		return false, nil
	}

	// Replacement pool: eligible, not mandatory, not already on the board.
	var pool []QuestDef
	for _, cand := range DailyCatalog() {
		if cand.Mandatory || assigned[cand.ID] || !cand.Eligible(snap) {
			continue
		}
		pool = append(pool, cand)
	}
	if len(pool) == 0 {
		return false, nil
	}

	rng := NewRNG(rerollSeed(snap.DayKey, installID, assignment.Seed))
	repl := pool[rng.IntN(len(pool))]

	next := *assignment
	next.Chosen = make([]storage.ChosenQuest, len(assignment.Chosen))
	copy(next.Chosen, assignment.Chosen)
	replacement := storage.ChosenQuest{ID: repl.ID}
	if repl.Params != nil {
		replacement.Params = repl.Params(rng)
	}
	next.Chosen[slot] = replacement
	next.Rerolled = true

	if err := s.daily.Update(ctx, snap.DayKey, next); err != nil {
		s.log.Warn("reroll not persisted", "day", snap.DayKey, "quest", questID, "err", err)
		return false, nil
	}
	return true, nil
}
