package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// XPLedgerRepo persists the per-day XP ledger blob.
type XPLedgerRepo struct {
	store     Store
	retention int
}

func NewXPLedgerRepo(store Store, retentionDays int) *XPLedgerRepo {
	return &XPLedgerRepo{store: store, retention: retentionDays}
}

func (r *XPLedgerRepo) Load(ctx context.Context) (XPLedger, error) {
	empty := XPLedger{ByDate: map[string]XPLedgerEntry{}}

	raw, ok, err := r.store.Get(ctx, KeyXPLedger)
	if err != nil {
		return empty, fmt.Errorf("load xp ledger: %w", err)
	}
	if !ok {
		return empty, nil
	}

	var l XPLedger
	if err := json.Unmarshal(raw, &l); err != nil {
		return empty, nil
	}
	if l.ByDate == nil {
		l.ByDate = map[string]XPLedgerEntry{}
	}
	return l, nil
}

// Record applies a monotonic max for the day: stored values never decrease
// even when a transient computation under-counts.
func (r *XPLedgerRepo) Record(ctx context.Context, dayKey string, earned, quests int) error {
	l, err := r.Load(ctx)
	if err != nil {
		return err
	}

	cur, exists := l.ByDate[dayKey]
	next := XPLedgerEntry{Earned: max(cur.Earned, earned), Quests: max(cur.Quests, quests)}
	if exists && next == cur {
		return nil
	}
	l.ByDate[dayKey] = next

	pruneByDate(l.ByDate, r.retention)

	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal xp ledger: %w", err)
	}
	if err := r.store.Set(ctx, KeyXPLedger, raw); err != nil {
		return fmt.Errorf("save xp ledger: %w", err)
	}
	return nil
}

// AllTimeXP sums earned XP across every retained day.
func (r *XPLedgerRepo) AllTimeXP(ctx context.Context) (int, error) {
	l, err := r.Load(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range l.ByDate {
		total += e.Earned
	}
	return total, nil
}
