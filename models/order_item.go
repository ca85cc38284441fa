package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line of an order. Name and UnitPrice are copied from the
// menu when the order is placed and never re-read afterwards.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	MenuItemID uint            `gorm:"not null;index" json:"menu_item_id"`
	Name       string          `gorm:"type:varchar(100);not null" json:"name"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
}

func (i OrderItem) MarshalJSON() ([]byte, error) {
	type orderItem OrderItem
	return json.Marshal(struct {
		orderItem
		UnitPrice string `json:"unit_price"`
		Subtotal  string `json:"subtotal"`
	}{orderItem(i), i.UnitPrice.StringFixed(2), i.Subtotal.StringFixed(2)})
}
