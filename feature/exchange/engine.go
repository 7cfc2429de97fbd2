package exchange

import (
	catmodels "collection-manager/feature/catalog/models"
	colmodels "collection-manager/feature/collection/models"
)

// Row is one surplus transfer candidate: the donor holds copies beyond the
// one it keeps, and the other owner has none.
type Row struct {
	Card catmodels.Card `json:"card"`
	// Variant is set only in per-variant mode.
	Variant string `json:"variant,omitempty"`
	// Give is the transferable quantity (donor quantity minus the kept copy).
	Give int `json:"give"`
	// AQty and BQty are both owners' quantities for the row's scope
	// (variant-aggregated, or the single variant in per-variant mode).
	AQty int `json:"aQty"`
	BQty int `json:"bQty"`
}

// Summary aggregates both directions of a comparison.
type Summary struct {
	AToBCount  int `json:"aToBCount"`
	BToACount  int `json:"bToACount"`
	AToBCopies int `json:"aToBCopies"`
	BToACopies int `json:"bToACopies"`
}

// Result holds both ordered surplus lists and their summary.
type Result struct {
	AToB    []Row   `json:"aToB"`
	BToA    []Row   `json:"bToA"`
	Summary Summary `json:"summary"`
}

// variantOrder keeps per-variant rows of one card deterministic.
var variantOrder = []colmodels.Variant{colmodels.VariantNormal, colmodels.VariantFoil}

// Compute finds, for the filtered catalog, every card where one owner has
// surplus (more than the single kept copy) and the other owner has none.
// It is a pure function of its inputs and is re-run on every request, so the
// view can never go stale relative to the store.
//
// The "keep at least one" policy is strict: a single copy is never surplus,
// so qty 1 vs qty 0 qualifies nothing.
func Compute(cards []catmodels.Card, stockA, stockB []colmodels.StockEntry, filter catmodels.Filter, perVariant bool) Result {
	filtered := filter.Apply(cards)
	catmodels.SortCards(filtered)

	result := Result{AToB: []Row{}, BToA: []Row{}}

	if perVariant {
		qa := colmodels.VariantQuantityMap(stockA)
		qb := colmodels.VariantQuantityMap(stockB)
		for _, card := range filtered {
			for _, v := range variantOrder {
				appendRows(&result, card, string(v), qa[card.ID][v], qb[card.ID][v])
			}
		}
	} else {
		qa := colmodels.QuantityMap(stockA)
		qb := colmodels.QuantityMap(stockB)
		for _, card := range filtered {
			appendRows(&result, card, "", qa[card.ID], qb[card.ID])
		}
	}

	result.Summary = Summary{
		AToBCount:  len(result.AToB),
		BToACount:  len(result.BToA),
		AToBCopies: sumGive(result.AToB),
		BToACopies: sumGive(result.BToA),
	}
	return result
}

func appendRows(result *Result, card catmodels.Card, variant string, aQty, bQty int) {
	if give := aQty - 1; give > 0 && bQty == 0 {
		result.AToB = append(result.AToB, Row{Card: card, Variant: variant, Give: give, AQty: aQty, BQty: bQty})
	}
	if give := bQty - 1; give > 0 && aQty == 0 {
		result.BToA = append(result.BToA, Row{Card: card, Variant: variant, Give: give, AQty: aQty, BQty: bQty})
	}
}

func sumGive(rows []Row) int {
	total := 0
	for _, r := range rows {
		total += r.Give
	}
	return total
}
