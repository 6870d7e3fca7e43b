package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// AchievementRepo persists the grow-only unlocked achievement set.
type AchievementRepo struct {
	store Store
}

func NewAchievementRepo(store Store) *AchievementRepo {
	return &AchievementRepo{store: store}
}

func (r *AchievementRepo) Load(ctx context.Context) (AchievementState, error) {
	raw, ok, err := r.store.Get(ctx, KeyAchievements)
	if err != nil {
		return AchievementState{}, fmt.Errorf("load achievements: %w", err)
	}
	if !ok {
		return AchievementState{}, nil
	}

	var st AchievementState
	if err := json.Unmarshal(raw, &st); err != nil {
		return AchievementState{}, nil
	}
	return st, nil
}

func (r *AchievementRepo) Save(ctx context.Context, st AchievementState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal achievements: %w", err)
	}
	if err := r.store.Set(ctx, KeyAchievements, raw); err != nil {
		return fmt.Errorf("save achievements: %w", err)
	}
	return nil
}
