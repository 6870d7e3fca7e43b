package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// WeeklyQuestRepo persists the single current-week assignment blob.
type WeeklyQuestRepo struct {
	store Store
}

func NewWeeklyQuestRepo(store Store) *WeeklyQuestRepo {
	return &WeeklyQuestRepo{store: store}
}

// Load returns the stored weekly assignment, or nil when none (or a corrupt
// blob) is stored.
func (r *WeeklyQuestRepo) Load(ctx context.Context) (*WeeklyAssignment, error) {
	raw, ok, err := r.store.Get(ctx, KeyWeeklyAssignment)
	if err != nil {
		return nil, fmt.Errorf("load weekly assignment: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var w WeeklyAssignment
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, nil
	}
	return &w, nil
}

// Save replaces the weekly assignment wholesale.
func (r *WeeklyQuestRepo) Save(ctx context.Context, w WeeklyAssignment) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal weekly assignment: %w", err)
	}
	if err := r.store.Set(ctx, KeyWeeklyAssignment, raw); err != nil {
		return fmt.Errorf("save weekly assignment: %w", err)
	}
	return nil
}
