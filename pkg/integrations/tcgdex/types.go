package tcgdex

import "github.com/mikecinchan/tcg-deck-editor/pkg/catalog"

type serieResponse struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Sets []setBrief `json:"sets"`
}

type setBrief struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CardCount cardCount `json:"cardCount"`
}

type cardCount struct {
	Total    int `json:"total"`
	Official int `json:"official"`
}

// setResponse lists brief card records (id, localId, name, image).
type setResponse struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Cards []catalog.RawItem `json:"cards"`
}
