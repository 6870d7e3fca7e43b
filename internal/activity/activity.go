// Package activity defines the read-only collaborator inputs the quest
// engine consumes. The surrounding app owns habits, journal, focus sessions
// and books; the engine only ever sees these flattened collections.
package activity

import "context"

// Habit is an active (or archived) habit with its per-day completion map,
// keyed by YYYY-MM-DD day keys.
type Habit struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Archived    bool            `json:"archived,omitempty"`
	Completions map[string]bool `json:"completions,omitempty"`
}

// JournalEntry carries only its creation timestamp (RFC 3339 or a bare
// YYYY-MM-DD); the entry body never reaches the engine.
type JournalEntry struct {
	CreatedAt string `json:"createdAt"`
}

// FocusSession is one finished focus block.
type FocusSession struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

type BookStatus string

const (
	BookReading  BookStatus = "reading"
	BookFinished BookStatus = "finished"
	BookWishlist BookStatus = "wishlist"
)

type Book struct {
	Title  string     `json:"title"`
	Status BookStatus `json:"status"`
	// UpdatedAt is set when the user logs reading progress.
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Data is one snapshot of everything the engine reads.
type Data struct {
	Habits  []Habit        `json:"habits"`
	Journal []JournalEntry `json:"journal"`
	Focus   []FocusSession `json:"focus"`
	Books   []Book         `json:"books"`
}

// Source supplies activity snapshots. Implementations must not mutate
// returned data between calls.
type Source interface {
	Load(ctx context.Context) (Data, error)
}

// StaticSource returns a fixed snapshot; used in tests and for one-shot CLI
// invocations that already hold the data.
type StaticSource struct {
	Data Data
}

func (s StaticSource) Load(ctx context.Context) (Data, error) {
	return s.Data, nil
}
