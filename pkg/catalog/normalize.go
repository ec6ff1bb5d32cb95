package catalog

import (
	"encoding/json"
	"math"
	"path"
	"strconv"
	"strings"
)

// DefaultCDNBase is the TCGdex asset root for English Pocket cards.
const DefaultCDNBase = "https://assets.tcgdex.net/en/tcgp"

const (
	imageQuality = "high"
	imageFormat  = "webp"
)

// imageQualities lists structured image variants, best first.
var imageQualities = []string{"high", "medium", "low", "small"}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".gif": true,
}

// Normalizer projects raw records onto [Item]. The zero value uses
// [DefaultCDNBase].
type Normalizer struct {
	CDNBase string
}

// Normalize projects raw onto an [Item] using [DefaultCDNBase].
func Normalize(raw RawItem, group GroupRef) Item {
	return Normalizer{}.Normalize(raw, group)
}

// Normalize builds a fresh Item from raw. Only named fields are copied;
// attack, weakness, resistance and ability data is never carried over.
// The group reference comes from group, not from the record.
func (n Normalizer) Normalize(raw RawItem, group GroupRef) Item {
	return Item{
		ID:       raw.ID,
		LocalID:  raw.LocalID,
		Name:     raw.Name,
		ImageURL: n.imageURL(raw, group),
		Group:    group,
		Attributes: Attributes{
			Category:    text(raw.Category),
			HP:          number(raw.HP),
			Types:       stringList(raw.Types),
			Rarity:      text(raw.Rarity),
			Stage:       text(raw.Stage),
			Level:       number(raw.Level),
			Description: text(raw.Description),
			Retreat:     number(raw.Retreat),
			Effect:      text(raw.Effect),
			EvolveFrom:  text(raw.EvolveFrom),
		},
	}
}

// NormalizeAll normalizes entries in order.
func (n Normalizer) NormalizeAll(entries []RawEntry) []Item {
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, n.Normalize(e.Item, e.Group))
	}
	return items
}

func (n Normalizer) imageURL(raw RawItem, group GroupRef) string {
	if u := imageFromRaw(raw.Image); u != "" {
		return withImageSuffix(u)
	}
	number := ItemNumber(raw.LocalID)
	if group.ID == "" || number == "" {
		return ""
	}
	base := n.CDNBase
	if base == "" {
		base = DefaultCDNBase
	}
	return strings.TrimSuffix(base, "/") + "/" + group.ID + "/" + number + "/" + imageQuality + "." + imageFormat
}

// imageFromRaw accepts either a URL string or an object of quality
// variants and returns the best URL found.
func imageFromRaw(v json.RawMessage) string {
	if !present(v) {
		return ""
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		return strings.TrimSpace(s)
	}
	var variants map[string]json.RawMessage
	if json.Unmarshal(v, &variants) != nil {
		return ""
	}
	for _, q := range imageQualities {
		if u := text(variants[q]); u != "" {
			return u
		}
	}
	return ""
}

// withImageSuffix turns a TCGdex asset base into a concrete file URL.
// URLs that already name a file are returned unchanged.
func withImageSuffix(u string) string {
	if imageExtensions[strings.ToLower(path.Ext(u))] {
		return u
	}
	return strings.TrimSuffix(u, "/") + "/" + imageQuality + "." + imageFormat
}

// ItemNumber returns the number part of a local id: the segment after the
// last "-" ("A1-001" -> "001"). Ids without a separator are returned as is.
func ItemNumber(localID string) string {
	localID = strings.TrimSpace(localID)
	if i := strings.LastIndexByte(localID, '-'); i >= 0 {
		return localID[i+1:]
	}
	return localID
}

// text returns a JSON string value, or "" for anything else.
func text(v json.RawMessage) string {
	if !present(v) {
		return ""
	}
	var s string
	if json.Unmarshal(v, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// maxNumber bounds numeric attributes; larger values are not card stats.
const maxNumber = math.MaxInt32

// number accepts a whole JSON number or a numeric string. Fractions and
// values beyond maxNumber are treated as absent.
func number(v json.RawMessage) *int {
	if !present(v) {
		return nil
	}
	var f float64
	if json.Unmarshal(v, &f) == nil {
		if f != math.Trunc(f) || math.Abs(f) > maxNumber {
			return nil
		}
		n := int(f)
		return &n
	}
	var s string
	if json.Unmarshal(v, &s) != nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n > maxNumber || n < -maxNumber {
		return nil
	}
	return &n
}

// stringList keeps the string elements of a JSON array. Any other value,
// including null or a missing field, yields an empty, non-nil slice.
func stringList(v json.RawMessage) []string {
	out := []string{}
	if !present(v) {
		return out
	}
	var elems []json.RawMessage
	if json.Unmarshal(v, &elems) != nil {
		return out
	}
	for _, e := range elems {
		var s string
		if json.Unmarshal(e, &s) == nil && s != "" {
			out = append(out, s)
		}
	}
	return out
}
