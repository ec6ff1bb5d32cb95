package catalog

import (
	"bytes"
	"context"
	"encoding/json"
)

// Source is the upstream card database. Implementations must be safe for
// concurrent use; [Fetcher] calls GetItem from several goroutines.
type Source interface {
	// ListGroups returns the sets of the collection in upstream order.
	ListGroups(ctx context.Context) ([]GroupSummary, error)

	// GetGroup returns one set with its brief item records.
	GetGroup(ctx context.Context, id string) (*RawGroup, error)

	// GetItem returns the full record for one card. refresh bypasses any
	// response cache the implementation keeps.
	GetItem(ctx context.Context, id string, refresh bool) (*RawItem, error)
}

// GroupSummary is a set as listed in the collection metadata.
type GroupSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

// RawGroup is a set with its items, as sent by the source.
type RawGroup struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Items []RawItem `json:"cards"`
}

// Ref returns the group reference items of this group carry.
func (g *RawGroup) Ref() GroupRef {
	return GroupRef{ID: g.ID, Name: g.Name}
}

// RawItem is a source-shaped card record. Only the identity fields are
// typed; everything else is kept as raw JSON because upstream values vary
// in shape and are only interpreted by [Normalize].
//
// Attacks, Weaknesses, Resistances and Abilities are captured so that they
// can be dropped explicitly. They never reach an [Item].
type RawItem struct {
	ID      string `json:"id"`
	LocalID string `json:"localId"`
	Name    string `json:"name"`

	Image       json.RawMessage `json:"image,omitempty"`
	Category    json.RawMessage `json:"category,omitempty"`
	HP          json.RawMessage `json:"hp,omitempty"`
	Types       json.RawMessage `json:"types,omitempty"`
	Rarity      json.RawMessage `json:"rarity,omitempty"`
	Stage       json.RawMessage `json:"stage,omitempty"`
	Level       json.RawMessage `json:"level,omitempty"`
	Description json.RawMessage `json:"description,omitempty"`
	Retreat     json.RawMessage `json:"retreat,omitempty"`
	Effect      json.RawMessage `json:"effect,omitempty"`
	EvolveFrom  json.RawMessage `json:"evolveFrom,omitempty"`

	Attacks     json.RawMessage `json:"attacks,omitempty"`
	Weaknesses  json.RawMessage `json:"weaknesses,omitempty"`
	Resistances json.RawMessage `json:"resistances,omitempty"`
	Abilities   json.RawMessage `json:"abilities,omitempty"`
}

// RawEntry is a fetched item together with the group it was listed under.
type RawEntry struct {
	Group GroupRef
	Item  RawItem
}

// merge overlays detail onto the brief record r: every field the detail
// record sends wins, fields it omits keep the brief value.
func (r RawItem) merge(detail RawItem) RawItem {
	out := r
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	raw := func(dst *json.RawMessage, v json.RawMessage) {
		if present(v) {
			*dst = v
		}
	}
	str(&out.ID, detail.ID)
	str(&out.LocalID, detail.LocalID)
	str(&out.Name, detail.Name)
	raw(&out.Image, detail.Image)
	raw(&out.Category, detail.Category)
	raw(&out.HP, detail.HP)
	raw(&out.Types, detail.Types)
	raw(&out.Rarity, detail.Rarity)
	raw(&out.Stage, detail.Stage)
	raw(&out.Level, detail.Level)
	raw(&out.Description, detail.Description)
	raw(&out.Retreat, detail.Retreat)
	raw(&out.Effect, detail.Effect)
	raw(&out.EvolveFrom, detail.EvolveFrom)
	raw(&out.Attacks, detail.Attacks)
	raw(&out.Weaknesses, detail.Weaknesses)
	raw(&out.Resistances, detail.Resistances)
	raw(&out.Abilities, detail.Abilities)
	return out
}

var jsonNull = []byte("null")

// present reports whether a raw field carries a non-null value.
func present(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && !bytes.Equal(v, jsonNull)
}
