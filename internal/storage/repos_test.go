package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyRepoGetOrCreateIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewDailyQuestRepo(NewMemStore(), 14)

	gen := func() DailyAssignment {
		return DailyAssignment{Seed: 42, Chosen: []ChosenQuest{{ID: "journal_entry"}}}
	}

	a, created, err := repo.GetOrCreate(ctx, "2025-06-10", gen)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint32(42), a.Seed)

	calls := 0
	b, created, err := repo.GetOrCreate(ctx, "2025-06-10", func() DailyAssignment {
		calls++
		return DailyAssignment{Seed: 99}
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Zero(t, calls, "generator must not run for an existing day")
	assert.Equal(t, a, b)
}

func TestDailyRepoCorruptBlobSelfHeals(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	require.NoError(t, store.Set(ctx, KeyDailyAssignments, []byte("{not json")))

	repo := NewDailyQuestRepo(store, 14)
	all, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, all.ByDate)

	_, created, err := repo.GetOrCreate(ctx, "2025-06-10", func() DailyAssignment {
		return DailyAssignment{Seed: 7}
	})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestDailyRepoUpdateRequiresExisting(t *testing.T) {
	ctx := context.Background()
	repo := NewDailyQuestRepo(NewMemStore(), 14)

	err := repo.Update(ctx, "2025-06-10", DailyAssignment{Rerolled: true})
	assert.Error(t, err)
}

func TestDailyRepoPrunesOldest(t *testing.T) {
	ctx := context.Background()
	repo := NewDailyQuestRepo(NewMemStore(), 3)

	for i := 1; i <= 5; i++ {
		day := fmt.Sprintf("2025-06-%02d", i)
		_, _, err := repo.GetOrCreate(ctx, day, func() DailyAssignment {
			return DailyAssignment{Seed: uint32(i)}
		})
		require.NoError(t, err)
	}

	all, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, all.ByDate, 3)
	assert.Contains(t, all.ByDate, "2025-06-05")
	assert.Contains(t, all.ByDate, "2025-06-04")
	assert.Contains(t, all.ByDate, "2025-06-03")
	assert.NotContains(t, all.ByDate, "2025-06-02")
}

func TestXPRepoMonotonicMax(t *testing.T) {
	ctx := context.Background()
	repo := NewXPLedgerRepo(NewMemStore(), 30)

	require.NoError(t, repo.Record(ctx, "2025-06-10", 10, 2))
	require.NoError(t, repo.Record(ctx, "2025-06-10", 5, 1))

	l, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, XPLedgerEntry{Earned: 10, Quests: 2}, l.ByDate["2025-06-10"])

	// Mixed direction: each field maxes independently.
	require.NoError(t, repo.Record(ctx, "2025-06-10", 8, 4))
	l, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, XPLedgerEntry{Earned: 10, Quests: 4}, l.ByDate["2025-06-10"])
}

func TestXPRepoAllTime(t *testing.T) {
	ctx := context.Background()
	repo := NewXPLedgerRepo(NewMemStore(), 30)

	require.NoError(t, repo.Record(ctx, "2025-06-09", 20, 1))
	require.NoError(t, repo.Record(ctx, "2025-06-10", 30, 2))

	total, err := repo.AllTimeXP(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}

func TestWeeklyRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewWeeklyQuestRepo(NewMemStore())

	w, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, w)

	in := WeeklyAssignment{
		WeekKey:   "2025-06-09",
		Assigned:  []string{"weekly_habit", "weekly_focus"},
		Completed: []string{"weekly_habit"},
	}
	require.NoError(t, repo.Save(ctx, in))

	w, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, in, *w)
}

func TestAchievementRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	repo := NewAchievementRepo(store)

	st, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.Unlocked)

	st.Unlocked = []string{"journal_first"}
	st.LastCheck = "2025-06-10T12:00:00Z"
	require.NoError(t, repo.Save(ctx, st))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, st, got)

	// Corrupt state heals to empty.
	require.NoError(t, store.Set(ctx, KeyAchievements, []byte("??")))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Unlocked)
}
