package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// DailyQuestRepo persists the per-day quest assignments blob.
//
// Corrupt JSON is healed by starting from an empty structure; a store read
// failure also yields the empty structure alongside the error so callers can
// log and keep going.
type DailyQuestRepo struct {
	store     Store
	retention int
}

func NewDailyQuestRepo(store Store, retentionDays int) *DailyQuestRepo {
	return &DailyQuestRepo{store: store, retention: retentionDays}
}

func (r *DailyQuestRepo) Load(ctx context.Context) (DailyAssignments, error) {
	empty := DailyAssignments{ByDate: map[string]DailyAssignment{}}

	raw, ok, err := r.store.Get(ctx, KeyDailyAssignments)
	if err != nil {
		return empty, fmt.Errorf("load daily assignments: %w", err)
	}
	if !ok {
		return empty, nil
	}

	var all DailyAssignments
	if err := json.Unmarshal(raw, &all); err != nil {
		// Corrupt blob: self-heal by starting fresh.
		return empty, nil
	}
	if all.ByDate == nil {
		all.ByDate = map[string]DailyAssignment{}
	}
	return all, nil
}

// Get returns the stored assignment for the day key, if any.
func (r *DailyQuestRepo) Get(ctx context.Context, dayKey string) (*DailyAssignment, error) {
	all, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	a, ok := all.ByDate[dayKey]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// GetOrCreate returns the assignment for dayKey, generating and persisting
// one via gen on first access. The bool reports whether a new assignment was
// created.
func (r *DailyQuestRepo) GetOrCreate(ctx context.Context, dayKey string, gen func() DailyAssignment) (DailyAssignment, bool, error) {
	// An unreadable store degrades to the empty structure: the day still
	// gets an assignment, and the write below reports the real failure.
	all, _ := r.Load(ctx)
	if a, ok := all.ByDate[dayKey]; ok {
		return a, false, nil
	}

	a := gen()
	all.ByDate[dayKey] = a
	if err := r.save(ctx, all); err != nil {
		return a, false, err
	}
	return a, true, nil
}

// Update overwrites the assignment for an existing day key (the reroll
// commit). It fails if the day has no assignment yet.
func (r *DailyQuestRepo) Update(ctx context.Context, dayKey string, a DailyAssignment) error {
	all, err := r.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := all.ByDate[dayKey]; !ok {
		return fmt.Errorf("no assignment stored for %s", dayKey)
	}
	all.ByDate[dayKey] = a
	return r.save(ctx, all)
}

func (r *DailyQuestRepo) save(ctx context.Context, all DailyAssignments) error {
	pruneByDate(all.ByDate, r.retention)

	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshal daily assignments: %w", err)
	}
	if err := r.store.Set(ctx, KeyDailyAssignments, raw); err != nil {
		return fmt.Errorf("save daily assignments: %w", err)
	}
	return nil
}

// pruneByDate drops the oldest day keys until at most retention remain.
// Day keys are YYYY-MM-DD, so lexicographic order is chronological order.
func pruneByDate[V any](byDate map[string]V, retention int) {
	if retention <= 0 || len(byDate) <= retention {
		return
	}
	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys[:len(keys)-retention] {
		delete(byDate, k)
	}
}
