package models

import "fmt"

// Owner is one of the tracked collectors. Rows are created lazily the first
// time an owner id appears in a write.
type Owner struct {
	ID   string `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

// TableName overrides the table name.
func (Owner) TableName() string {
	return "owners"
}

// Variant is the closed sub-kind of a card copy. Extending it (e.g. a promo
// finish) is a schema change, not a new string value.
type Variant string

const (
	// VariantNormal is a standard-finish copy.
	VariantNormal Variant = "normal"
	// VariantFoil is a special-finish copy.
	VariantFoil Variant = "foil"
)

// ParseVariant maps a request value onto the closed enum. The empty string
// defaults to normal.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "":
		return VariantNormal, nil
	case VariantNormal:
		return VariantNormal, nil
	case VariantFoil:
		return VariantFoil, nil
	default:
		return "", fmt.Errorf("unknown variant %q", s)
	}
}

// StockEntry records how many copies one owner holds of one card variant.
// A zero quantity is never stored: deleting the row is the canonical zero,
// so absence and zero stay the same state.
type StockEntry struct {
	OwnerID  string  `gorm:"column:owner_id;primaryKey" json:"ownerId"`
	CardID   string  `gorm:"column:card_id;primaryKey" json:"cardId"`
	Variant  Variant `gorm:"column:variant;primaryKey" json:"variant"`
	Quantity int     `gorm:"column:quantity" json:"quantity"`
}

// TableName overrides the table name.
func (StockEntry) TableName() string {
	return "stock_entries"
}

// QuantityMap aggregates entries into card id -> total quantity, summing
// across variants.
func QuantityMap(entries []StockEntry) map[string]int {
	m := make(map[string]int, len(entries))
	for _, e := range entries {
		m[e.CardID] += e.Quantity
	}
	return m
}

// VariantQuantityMap indexes entries by card id and variant.
func VariantQuantityMap(entries []StockEntry) map[string]map[Variant]int {
	m := make(map[string]map[Variant]int, len(entries))
	for _, e := range entries {
		if m[e.CardID] == nil {
			m[e.CardID] = make(map[Variant]int, 2)
		}
		m[e.CardID][e.Variant] += e.Quantity
	}
	return m
}
