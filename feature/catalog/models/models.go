package models

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Card represents one catalog entry (a distinct card design).
// Rows are created and refreshed only by the sync job; the rest of the
// application treats the catalog as read-only.
type Card struct {
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	Name      string `gorm:"column:name" json:"name"`
	SetName   string `gorm:"column:set_name" json:"setName"`
	SetCode   string `gorm:"column:set_code;index" json:"setCode"`
	Ink       string `gorm:"column:ink" json:"ink"`
	Rarity    string `gorm:"column:rarity" json:"rarity"`
	Type      string `gorm:"column:type" json:"type"`
	Cost      *int   `gorm:"column:cost" json:"cost"`
	Strength  *int   `gorm:"column:strength" json:"strength"`
	Willpower *int   `gorm:"column:willpower" json:"willpower"`
	Lore      *int   `gorm:"column:lore" json:"lore"`
	Text      string `gorm:"column:text" json:"text"`
	ImageURL  string `gorm:"column:image_url" json:"imageUrl"`
}

// TableName overrides the table name.
func (Card) TableName() string {
	return "cards"
}

// InkOther is the fallback bucket for cards without a recognized ink.
const InkOther = "Other"

// Inks is the closed ink vocabulary, in display order.
var Inks = []string{"Amber", "Amethyst", "Emerald", "Ruby", "Sapphire", "Steel"}

// InkBucket maps a raw ink value onto the closed vocabulary, falling back
// to InkOther for empty or unknown values.
func InkBucket(v string) string {
	for _, ink := range Inks {
		if v == ink {
			return ink
		}
	}
	return InkOther
}

// chapterLast sorts cards without a numeric set code after every chapter.
const chapterLast = math.MaxInt32

// ChapterKey returns the numeric sort key for a set code. Codes that are not
// purely numeric (promo sets, empty codes) sort last.
func ChapterKey(code string) int {
	n, ok := chapterNumber(code)
	if !ok {
		return chapterLast
	}
	return n
}

// IsChapterCode reports whether a set code names a numbered chapter.
func IsChapterCode(code string) bool {
	n, ok := chapterNumber(code)
	return ok && n >= 1
}

func chapterNumber(code string) (int, bool) {
	if code == "" {
		return 0, false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Filter narrows a catalog view. Zero values (or the "all" sentinel) match
// everything.
type Filter struct {
	// Query is a case-insensitive name substring.
	Query string
	// Chapter is a set code, or "all".
	Chapter string
	// Ink is an ink name, or "all".
	Ink string
}

// Matches reports whether the card passes every filter dimension.
func (f Filter) Matches(c Card) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(c.Name), q) {
			return false
		}
	}
	if f.Chapter != "" && f.Chapter != "all" && c.SetCode != f.Chapter {
		return false
	}
	if f.Ink != "" && f.Ink != "all" && c.Ink != f.Ink {
		return false
	}
	return true
}

// Apply returns the cards passing the filter, preserving input order.
func (f Filter) Apply(cards []Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// NewCollator returns the collator used for card name ordering: French,
// case-insensitive and accent-aware, so listings match the printed sets.
// Collators are not safe for concurrent use; callers create one per sort.
func NewCollator() *collate.Collator {
	return collate.New(language.French, collate.Loose)
}

// SortCards orders cards by chapter (numeric set code, promos last), then by
// collated name, then by id so equal names stay deterministic.
func SortCards(cards []Card) {
	col := NewCollator()
	sort.SliceStable(cards, func(i, j int) bool {
		ci, cj := ChapterKey(cards[i].SetCode), ChapterKey(cards[j].SetCode)
		if ci != cj {
			return ci < cj
		}
		if cmp := col.CompareString(cards[i].Name, cards[j].Name); cmp != 0 {
			return cmp < 0
		}
		return cards[i].ID < cards[j].ID
	})
}

// Chapters returns the distinct numbered chapter codes present in the
// catalog, sorted numerically ascending.
func Chapters(cards []Card) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, c := range cards {
		if !IsChapterCode(c.SetCode) {
			continue
		}
		if _, ok := seen[c.SetCode]; ok {
			continue
		}
		seen[c.SetCode] = struct{}{}
		codes = append(codes, c.SetCode)
	}
	sort.Slice(codes, func(i, j int) bool {
		return ChapterKey(codes[i]) < ChapterKey(codes[j])
	})
	return codes
}
