package models

import (
	"time"

	catmodels "collection-manager/feature/catalog/models"
)

// Trade is one completed hand-over of copies between the owners. Rows are
// append-only: a mistaken trade is corrected by a new trade in the opposite
// direction, never by editing history.
type Trade struct {
	ID        string         `gorm:"column:id;primaryKey" json:"id"`
	FromOwner string         `gorm:"column:from_owner;index" json:"fromOwner"`
	ToOwner   string         `gorm:"column:to_owner;index" json:"toOwner"`
	CardID    string         `gorm:"column:card_id" json:"cardId"`
	Variant   string         `gorm:"column:variant" json:"variant"`
	Quantity  int            `gorm:"column:quantity" json:"quantity"`
	CreatedAt time.Time      `gorm:"column:created_at;index:idx_trades_created_at,sort:desc" json:"createdAt"`
	Card      catmodels.Card `gorm:"foreignKey:CardID;references:ID" json:"card"`
}

// TableName overrides the table name.
func (Trade) TableName() string {
	return "trades"
}
