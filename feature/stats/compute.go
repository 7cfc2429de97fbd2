package stats

import (
	"sort"

	catmodels "collection-manager/feature/catalog/models"
	colmodels "collection-manager/feature/collection/models"
)

// Counts holds completion figures for one slice of the catalog. Doubles are
// spare copies, not cards: a card held three times contributes two.
type Counts struct {
	Total         int     `json:"total"`
	AOwned        int     `json:"aOwned"`
	BOwned        int     `json:"bOwned"`
	EitherOwned   int     `json:"eitherOwned"`
	AMissing      int     `json:"aMissing"`
	BMissing      int     `json:"bMissing"`
	EitherMissing int     `json:"eitherMissing"`
	ADoubles      int     `json:"aDoubles"`
	BDoubles      int     `json:"bDoubles"`
	APct          float64 `json:"aPct"`
	BPct          float64 `json:"bPct"`
	EitherPct     float64 `json:"eitherPct"`
}

// ChapterRow is the completion breakdown for one numbered chapter.
type ChapterRow struct {
	Code    string `json:"code"`
	SetName string `json:"setName"`
	Counts
}

// InkRow is the completion breakdown for one ink bucket.
type InkRow struct {
	Ink string `json:"ink"`
	Counts
}

// Report is the full statistics view over the catalog and both collections.
type Report struct {
	Owners   OwnerPair    `json:"owners"`
	Global   Counts       `json:"global"`
	Chapters []ChapterRow `json:"chapters"`
	Inks     []InkRow     `json:"inks"`
}

// OwnerPair names the two owners the counts refer to.
type OwnerPair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// accumulator tallies one slice while cards stream through Compute.
type accumulator struct {
	counts Counts
}

func (a *accumulator) add(aQty, bQty int) {
	a.counts.Total++
	if aQty > 0 {
		a.counts.AOwned++
	}
	if bQty > 0 {
		a.counts.BOwned++
	}
	if aQty > 0 || bQty > 0 {
		a.counts.EitherOwned++
	}
	if aQty > 1 {
		a.counts.ADoubles += aQty - 1
	}
	if bQty > 1 {
		a.counts.BDoubles += bQty - 1
	}
}

// finish derives the missing counts and percentages. Percentages of an empty
// slice are zero, never NaN.
func (a *accumulator) finish() Counts {
	c := a.counts
	c.AMissing = c.Total - c.AOwned
	c.BMissing = c.Total - c.BOwned
	c.EitherMissing = c.Total - c.EitherOwned
	c.APct = pct(c.AOwned, c.Total)
	c.BPct = pct(c.BOwned, c.Total)
	c.EitherPct = pct(c.EitherOwned, c.Total)
	return c
}

func pct(owned, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(owned) / float64(total) * 100
}

// Compute builds the statistics report from a full catalog snapshot and both
// owners' stock. Variants are aggregated: a card counts as owned when the
// owner holds any copy of it.
//
// Chapter rows cover only numbered chapters; cards with non-numeric set codes
// (promo sets) still count in the global and ink figures.
func Compute(cards []catmodels.Card, stockA, stockB []colmodels.StockEntry, ownerA, ownerB string) Report {
	qa := colmodels.QuantityMap(stockA)
	qb := colmodels.QuantityMap(stockB)

	global := &accumulator{}
	chapters := make(map[string]*accumulator)
	chapterNames := make(map[string]string)
	inks := make(map[string]*accumulator)

	for _, card := range cards {
		aQty, bQty := qa[card.ID], qb[card.ID]
		global.add(aQty, bQty)

		if catmodels.IsChapterCode(card.SetCode) {
			acc := chapters[card.SetCode]
			if acc == nil {
				acc = &accumulator{}
				chapters[card.SetCode] = acc
				chapterNames[card.SetCode] = card.SetName
			}
			acc.add(aQty, bQty)
		}

		bucket := catmodels.InkBucket(card.Ink)
		acc := inks[bucket]
		if acc == nil {
			acc = &accumulator{}
			inks[bucket] = acc
		}
		acc.add(aQty, bQty)
	}

	report := Report{
		Owners:   OwnerPair{A: ownerA, B: ownerB},
		Global:   global.finish(),
		Chapters: []ChapterRow{},
		Inks:     []InkRow{},
	}

	codes := make([]string, 0, len(chapters))
	for code := range chapters {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		return catmodels.ChapterKey(codes[i]) < catmodels.ChapterKey(codes[j])
	})
	for _, code := range codes {
		report.Chapters = append(report.Chapters, ChapterRow{
			Code:    code,
			SetName: chapterNames[code],
			Counts:  chapters[code].finish(),
		})
	}

	for _, ink := range append(append([]string{}, catmodels.Inks...), catmodels.InkOther) {
		acc := inks[ink]
		if acc == nil {
			continue
		}
		report.Inks = append(report.Inks, InkRow{Ink: ink, Counts: acc.finish()})
	}

	return report
}
