package storage

// Persistence keys. Every structure below is stored as one JSON blob under
// its key; shapes are internal and may be migrated freely.
const (
	KeyDailyAssignments = "quests.daily.assignments"
	KeyWeeklyAssignment = "quests.weekly.assignment"
	KeyXPLedger         = "quests.xp.ledger"
	KeyAchievements     = "quests.achievements.unlocked"
	KeyInstallID        = "install.id"
)

// ChosenQuest is one slot of a daily assignment: a catalog id plus the
// randomized params frozen at assignment time.
type ChosenQuest struct {
	ID     string         `json:"id"`
	Params map[string]int `json:"params,omitempty"`
}

// DailyAssignment is the frozen quest set for one day key.
type DailyAssignment struct {
	Seed     uint32        `json:"seed"`
	Chosen   []ChosenQuest `json:"chosen"`
	Rerolled bool          `json:"rerolled"`
}

// DailyAssignments is the whole persisted daily blob, keyed by day key.
type DailyAssignments struct {
	ByDate map[string]DailyAssignment `json:"byDate"`
}

// WeeklyAssignment is the 2-of-3 weekly pick plus completion marks.
type WeeklyAssignment struct {
	WeekKey   string   `json:"weekKey"`
	Assigned  []string `json:"assigned"`
	Completed []string `json:"completed"`
}

// XPLedgerEntry records what a day earned. Values only ever grow.
type XPLedgerEntry struct {
	Earned int `json:"earned"`
	Quests int `json:"quests"`
}

// XPLedger is the whole persisted ledger blob, keyed by day key.
type XPLedger struct {
	ByDate map[string]XPLedgerEntry `json:"byDate"`
}

// AchievementState is the grow-only unlocked set.
type AchievementState struct {
	Unlocked  []string `json:"unlocked"`
	LastCheck string   `json:"lastCheck,omitempty"`
}
