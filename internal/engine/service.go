package engine

import (
	"context"
	"log/slog"

	"lento/internal/activity"
	"lento/internal/storage"
)

const (
	DefaultMaxDailyQuests = 4
	DefaultAssignmentDays = 14
	DefaultXPLedgerDays   = 30
	weeklyAssignedCount   = 2
)

// Options tunes the engine. Zero values fall back to defaults.
type Options struct {
	MaxDailyQuests          int
	AssignmentRetentionDays int
	XPRetentionDays         int

	Clock  Clock
	Logger *slog.Logger

	// WeeklyPick selects k of n indexes for the weekly assignment. The
	// default rolls fresh randomness each new week; only the daily draw
	// is seeded. Tests inject a fixed pick.
	WeeklyPick func(n, k int) []int
}

// Service orchestrates quest assignment, reroll, XP recording and
// achievement checks over an injected Store and activity Source.
type Service struct {
	store  storage.Store
	source activity.Source

	daily        *storage.DailyQuestRepo
	weekly       *storage.WeeklyQuestRepo
	xp           *storage.XPLedgerRepo
	achievements *storage.AchievementRepo

	maxDaily   int
	clock      Clock
	log        *slog.Logger
	weeklyPick func(n, k int) []int
}

func NewService(store storage.Store, source activity.Source, opts Options) *Service {
	if opts.MaxDailyQuests <= 0 {
		opts.MaxDailyQuests = DefaultMaxDailyQuests
	}
	if opts.AssignmentRetentionDays <= 0 {
		opts.AssignmentRetentionDays = DefaultAssignmentDays
	}
	if opts.XPRetentionDays <= 0 {
		opts.XPRetentionDays = DefaultXPLedgerDays
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.WeeklyPick == nil {
		opts.WeeklyPick = randomPick
	}

	return &Service{
		store:        store,
		source:       source,
		daily:        storage.NewDailyQuestRepo(store, opts.AssignmentRetentionDays),
		weekly:       storage.NewWeeklyQuestRepo(store),
		xp:           storage.NewXPLedgerRepo(store, opts.XPRetentionDays),
		achievements: storage.NewAchievementRepo(store),
		maxDaily:     opts.MaxDailyQuests,
		clock:        opts.Clock,
		log:          opts.Logger,
		weeklyPick:   opts.WeeklyPick,
	}
}

// Snapshot aggregates the current activity data as of the service clock.
func (s *Service) Snapshot(ctx context.Context) (StatsSnapshot, error) {
	data, err := s.source.Load(ctx)
	if err != nil {
		return StatsSnapshot{}, err
	}
	allTime, err := s.xp.AllTimeXP(ctx)
	if err != nil {
		s.log.Warn("xp ledger unreadable, assuming zero", "err", err)
		allTime = 0
	}
	return BuildSnapshot(data, s.clock.Now(), allTime), nil
}

// InstallID exposes the stable install id backing seed derivation.
func (s *Service) InstallID(ctx context.Context) (string, error) {
	return storage.InstallID(ctx, s.store)
}

// StoreKeys lists the keys currently persisted in the state store.
func (s *Service) StoreKeys(ctx context.Context) ([]string, error) {
	return s.store.Keys(ctx)
}
