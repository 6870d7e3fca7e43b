package engine

import (
	"context"

	"lento/internal/storage"
)

// RecordDailyXP records what today earned. Writes are a monotonic max per
// field, so transient under-counts (e.g. a render before all data loaded)
// can never shrink a recorded day.
func (s *Service) RecordDailyXP(ctx context.Context, dayKey string, earnedXP, questCount int) error {
	return s.xp.Record(ctx, dayKey, earnedXP, questCount)
}

// AllTimeXP sums earned XP across every retained ledger day.
func (s *Service) AllTimeXP(ctx context.Context) (int, error) {
	return s.xp.AllTimeXP(ctx)
}

// XPForDay returns the recorded ledger entry for a day key (zeros when the
// day has no entry).
func (s *Service) XPForDay(ctx context.Context, dayKey string) (storage.XPLedgerEntry, error) {
	l, err := s.xp.Load(ctx)
	if err != nil {
		return storage.XPLedgerEntry{}, err
	}
	return l.ByDate[dayKey], nil
}
