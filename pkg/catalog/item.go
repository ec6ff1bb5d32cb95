package catalog

import "time"

// Item is one normalized card. It only holds plain data, so encoding/json
// can always marshal it.
type Item struct {
	ID         string     `json:"id"`
	LocalID    string     `json:"localId"`
	Name       string     `json:"name"`
	ImageURL   string     `json:"imageUrl,omitempty"` // fully resolved, never a template
	Group      GroupRef   `json:"group"`
	Attributes Attributes `json:"attributes"`
}

// GroupRef identifies the set an item belongs to.
type GroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Attributes are the card fields deck building filters on. Every field is
// optional: a zero string or nil pointer means the source did not send it.
// Types is never nil.
type Attributes struct {
	Category    string   `json:"category,omitempty"`
	HP          *int     `json:"hp,omitempty"`
	Types       []string `json:"types"`
	Rarity      string   `json:"rarity,omitempty"`
	Stage       string   `json:"stage,omitempty"`
	Level       *int     `json:"level,omitempty"`
	Description string   `json:"description,omitempty"`
	Retreat     *int     `json:"retreat,omitempty"`
	Effect      string   `json:"effect,omitempty"`
	EvolveFrom  string   `json:"evolveFrom,omitempty"`
}

// Snapshot is one complete catalog as produced by a refresh. Snapshots are
// never modified after they are published; a refresh swaps in a new one.
// The zero Snapshot is the empty catalog.
type Snapshot struct {
	Items     []Item    `json:"items"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Empty reports whether the snapshot has never been filled.
func (s *Snapshot) Empty() bool {
	return s == nil || s.FetchedAt.IsZero()
}

// State describes the cache lifecycle.
type State string

const (
	StateEmpty     State = "empty"
	StatePopulated State = "populated"
	StateStale     State = "stale"
)

// Status is a point-in-time report of the catalog cache.
type Status struct {
	State     State     `json:"state"`
	Items     int       `json:"items"`
	Groups    int       `json:"groups"`
	FetchedAt time.Time `json:"fetchedAt,omitzero"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}
