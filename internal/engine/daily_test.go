package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lento/internal/activity"
	"lento/internal/storage"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

type testFixture struct {
	svc   *Service
	store *storage.MemStore
	clock *testClock
	data  *activity.Data
}

type mutableSource struct {
	data *activity.Data
}

func (s mutableSource) Load(ctx context.Context) (activity.Data, error) {
	return *s.data, nil
}

func newTestFixture(t *testing.T, data activity.Data) *testFixture {
	t.Helper()
	store := storage.NewMemStore()
	clock := &testClock{now: testNow}
	d := data
	svc := NewService(store, mutableSource{data: &d}, Options{
		Clock:      clock,
		WeeklyPick: func(n, k int) []int { return []int{0, 1} },
	})
	return &testFixture{svc: svc, store: store, clock: clock, data: &d}
}

// twoHabitsData matches the scenario: 2 active habits, no focus, journal or
// book history.
func twoHabitsData() activity.Data {
	return activity.Data{
		Habits: []activity.Habit{
			{ID: "h1", Name: "Stretch", Completions: map[string]bool{}},
			{ID: "h2", Name: "Water", Completions: map[string]bool{}},
		},
	}
}

// fullData makes every catalog quest eligible with zero progress today.
func fullData() activity.Data {
	d := twoHabitsData()
	d.Journal = []activity.JournalEntry{{CreatedAt: "2025-06-01"}}
	d.Focus = []activity.FocusSession{{Date: "2025-06-01", Minutes: 25}}
	d.Books = []activity.Book{{Title: "Book", Status: activity.BookReading}}
	return d
}

func questIDs(quests []QuestView) []string {
	ids := make([]string, 0, len(quests))
	for _, q := range quests {
		ids = append(ids, q.ID)
	}
	return ids
}

func findQuest(quests []QuestView, id string) *QuestView {
	for i := range quests {
		if quests[i].ID == id {
			return &quests[i]
		}
	}
	return nil
}

func TestDailyAssignmentStable(t *testing.T) {
	f := newTestFixture(t, fullData())
	ctx := context.Background()

	first, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	second, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests (second): %v", err)
	}

	a, b := questIDs(first.Quests), questIDs(second.Quests)
	if len(a) != len(b) {
		t.Fatalf("quest count changed between reads: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("chosen set changed between reads: %v vs %v", a, b)
		}
	}
}

func TestDailyAssignmentScenario(t *testing.T) {
	f := newTestFixture(t, twoHabitsData())
	ctx := context.Background()

	res, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}

	if res.Quests[0].ID != QuestJournal {
		t.Fatalf("anchor quest not first: %v", questIDs(res.Quests))
	}

	hq := findQuest(res.Quests, "habit_complete")
	if hq == nil {
		t.Fatalf("habit quest missing from %v", questIDs(res.Quests))
	}
	if hq.Progress.Target != 2 {
		t.Fatalf("habit target=%d, want min(3,2)=2", hq.Progress.Target)
	}

	for _, id := range []string{"focus_minutes", "focus_sessions", "book_reading"} {
		if findQuest(res.Quests, id) != nil {
			t.Fatalf("ineligible quest %s assigned: %v", id, questIDs(res.Quests))
		}
	}
}

func TestDailyAssignmentNoDuplicates(t *testing.T) {
	f := newTestFixture(t, fullData())
	ctx := context.Background()

	res, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	if len(res.Quests) != DefaultMaxDailyQuests {
		t.Fatalf("chose %d quests, want %d (pool is large enough)", len(res.Quests), DefaultMaxDailyQuests)
	}
	seen := map[string]bool{}
	for _, q := range res.Quests {
		if seen[q.ID] {
			t.Fatalf("duplicate quest id %s in %v", q.ID, questIDs(res.Quests))
		}
		seen[q.ID] = true
	}
}

func TestDailyAssignmentDeterministicAcrossServices(t *testing.T) {
	f := newTestFixture(t, fullData())
	ctx := context.Background()

	first, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}

	// A second service over the same store shares install id and stored
	// assignment.
	svc2 := NewService(f.store, mutableSource{data: f.data}, Options{Clock: FixedClock{Instant: testNow}})
	second, err := svc2.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests (svc2): %v", err)
	}
	a, b := questIDs(first.Quests), questIDs(second.Quests)
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Fatalf("assignment differs across services: %v vs %v", a, b)
	}
}

func TestDailySeedDerivation(t *testing.T) {
	f := newTestFixture(t, fullData())
	ctx := context.Background()

	if _, err := f.svc.DailyQuests(ctx); err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	installID, err := f.svc.InstallID(ctx)
	if err != nil {
		t.Fatalf("InstallID: %v", err)
	}

	stored, err := storage.NewDailyQuestRepo(f.store, DefaultAssignmentDays).Get(ctx, "2025-06-10")
	if err != nil || stored == nil {
		t.Fatalf("stored assignment missing: %v", err)
	}
	if want := DeriveSeed("2025-06-10", installID); stored.Seed != want {
		t.Fatalf("seed=%d, want DeriveSeed(day, install)=%d", stored.Seed, want)
	}
}

func TestFocusTargetFromChoices(t *testing.T) {
	f := newTestFixture(t, fullData())
	ctx := context.Background()

	res, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	fq := findQuest(res.Quests, "focus_minutes")
	if fq == nil {
		t.Skip("focus quest not drawn for this install id")
	}
	got := fq.Params["minutes"]
	if got != 15 && got != 25 && got != 45 {
		t.Fatalf("focus target=%d, not in {15,25,45}", got)
	}
	if fq.Progress.Target != got {
		t.Fatalf("progress target=%d, want frozen param %d", fq.Progress.Target, got)
	}
}

func TestRerollOnceThenNever(t *testing.T) {
	f := newTestFixture(t, fullData())
	ctx := context.Background()

	res, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	if !res.RerollAvailable {
		t.Fatalf("fresh assignment should have reroll available")
	}

	// Every non-anchor quest has zero progress in fullData.
	target := res.Quests[1].ID
	ok, err := f.svc.Reroll(ctx, target)
	if err != nil {
		t.Fatalf("Reroll: %v", err)
	}
	if !ok {
		t.Fatalf("first reroll of zero-progress quest failed")
	}

	after, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests after reroll: %v", err)
	}
	if after.RerollAvailable {
		t.Fatalf("reroll still available after use")
	}
	if findQuest(after.Quests, target) != nil {
		t.Fatalf("rerolled quest %s still assigned: %v", target, questIDs(after.Quests))
	}
	seen := map[string]bool{}
	for _, q := range after.Quests {
		if seen[q.ID] {
			t.Fatalf("reroll introduced duplicate %s: %v", q.ID, questIDs(after.Quests))
		}
		seen[q.ID] = true
	}

	ok, err = f.svc.Reroll(ctx, after.Quests[1].ID)
	if err != nil {
		t.Fatalf("second Reroll: %v", err)
	}
	if ok {
		t.Fatalf("second reroll succeeded, want guard failure")
	}
	final, _ := f.svc.DailyQuests(ctx)
	if fmt.Sprint(questIDs(final.Quests)) != fmt.Sprint(questIDs(after.Quests)) {
		t.Fatalf("failed reroll mutated assignment")
	}
}

func TestRerollMandatoryAlwaysFails(t *testing.T) {
	f := newTestFixture(t, fullData())
	ctx := context.Background()

	if _, err := f.svc.DailyQuests(ctx); err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	ok, err := f.svc.Reroll(ctx, QuestJournal)
	if err != nil {
		t.Fatalf("Reroll: %v", err)
	}
	if ok {
		t.Fatalf("reroll of the anchor quest succeeded")
	}
}

func TestRerollWithProgressFails(t *testing.T) {
	data := twoHabitsData()
	data.Habits[0].Completions["2025-06-10"] = true // habit quest has progress
	f := newTestFixture(t, data)
	ctx := context.Background()

	if _, err := f.svc.DailyQuests(ctx); err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	ok, err := f.svc.Reroll(ctx, "habit_complete")
	if err != nil {
		t.Fatalf("Reroll: %v", err)
	}
	if ok {
		t.Fatalf("reroll of in-progress quest succeeded")
	}
}

func TestRerollNoEligibleReplacement(t *testing.T) {
	// With only habit quests eligible, everything eligible is already
	// assigned; the pool for replacements is empty.
	f := newTestFixture(t, twoHabitsData())
	ctx := context.Background()

	if _, err := f.svc.DailyQuests(ctx); err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	ok, err := f.svc.Reroll(ctx, "habit_complete")
	if err != nil {
		t.Fatalf("Reroll: %v", err)
	}
	if ok {
		t.Fatalf("reroll succeeded with no eligible replacement")
	}
}

func TestRerollUnassignedQuestFails(t *testing.T) {
	f := newTestFixture(t, twoHabitsData())
	ctx := context.Background()

	if _, err := f.svc.DailyQuests(ctx); err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	ok, err := f.svc.Reroll(ctx, "focus_minutes")
	if err != nil {
		t.Fatalf("Reroll: %v", err)
	}
	if ok {
		t.Fatalf("reroll of unassigned quest succeeded")
	}
}

func TestRerollPersistFailureLeavesStateUnchanged(t *testing.T) {
	f := newTestFixture(t, fullData())
	ctx := context.Background()

	before, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}

	f.store.FailWrites = errors.New("quota exceeded")
	ok, err := f.svc.Reroll(ctx, before.Quests[1].ID)
	if err != nil {
		t.Fatalf("Reroll: %v", err)
	}
	if ok {
		t.Fatalf("reroll reported success despite failed persist")
	}
	f.store.FailWrites = nil

	after, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	if fmt.Sprint(questIDs(before.Quests)) != fmt.Sprint(questIDs(after.Quests)) {
		t.Fatalf("failed persist mutated stored assignment")
	}
	if !after.RerollAvailable {
		t.Fatalf("failed persist burned the reroll")
	}
}

func TestAssignmentPruning(t *testing.T) {
	f := newTestFixture(t, fullData())
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		f.clock.now = testNow.AddDate(0, 0, i)
		if _, err := f.svc.DailyQuests(ctx); err != nil {
			t.Fatalf("DailyQuests day %d: %v", i, err)
		}
	}

	all, err := storage.NewDailyQuestRepo(f.store, DefaultAssignmentDays).Load(ctx)
	if err != nil {
		t.Fatalf("load assignments: %v", err)
	}
	if len(all.ByDate) != DefaultAssignmentDays {
		t.Fatalf("retained %d day keys, want %d", len(all.ByDate), DefaultAssignmentDays)
	}
	// The oldest surviving key is day 6 of the run (20 - 14).
	if _, ok := all.ByDate[DayKey(testNow.AddDate(0, 0, 5))]; ok {
		t.Fatalf("day 6 should have been pruned")
	}
	if _, ok := all.ByDate[DayKey(testNow.AddDate(0, 0, 19))]; !ok {
		t.Fatalf("most recent day missing after prune")
	}
}

func TestStaleQuestIDFilteredFromView(t *testing.T) {
	f := newTestFixture(t, fullData())
	ctx := context.Background()

	// Simulate an assignment persisted by an older catalog.
	repo := storage.NewDailyQuestRepo(f.store, DefaultAssignmentDays)
	_, _, err := repo.GetOrCreate(ctx, "2025-06-10", func() storage.DailyAssignment {
		return storage.DailyAssignment{
			Seed: 1,
			Chosen: []storage.ChosenQuest{
				{ID: QuestJournal},
				{ID: "retired_quest"},
				{ID: "habit_complete"},
			},
		}
	})
	if err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	res, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	if findQuest(res.Quests, "retired_quest") != nil {
		t.Fatalf("stale id survived materialization: %v", questIDs(res.Quests))
	}
	if len(res.Quests) != 2 {
		t.Fatalf("got %d quests, want 2 after filtering", len(res.Quests))
	}
}

func TestDailyRecordsXP(t *testing.T) {
	data := fullData()
	data.Journal = append(data.Journal, activity.JournalEntry{CreatedAt: "2025-06-10"})
	f := newTestFixture(t, data)
	ctx := context.Background()

	res, err := f.svc.DailyQuests(ctx)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	jq := findQuest(res.Quests, QuestJournal)
	if jq == nil || !jq.Completed {
		t.Fatalf("journal quest should be completed: %+v", jq)
	}
	if res.EarnedXP < jq.XP {
		t.Fatalf("EarnedXP=%d, want at least %d", res.EarnedXP, jq.XP)
	}

	entry, err := f.svc.XPForDay(ctx, "2025-06-10")
	if err != nil {
		t.Fatalf("XPForDay: %v", err)
	}
	if entry.Earned != res.EarnedXP || entry.Quests != res.CompletedCount {
		t.Fatalf("ledger=%+v, want {%d %d}", entry, res.EarnedXP, res.CompletedCount)
	}
}
