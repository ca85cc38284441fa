package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"type:varchar(50);not null;index" json:"category"`
	ImageURL    string          `gorm:"type:varchar(255)" json:"image_url"`
	// no gorm default on the flags: a default would swallow an explicit false on create
	Available bool      `gorm:"not null" json:"available"`
	IsDeleted bool      `gorm:"not null;index" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// MarshalJSON renders the price with two decimals.
func (m MenuItem) MarshalJSON() ([]byte, error) {
	type menuItem MenuItem
	return json.Marshal(struct {
		menuItem
		Price string `json:"price"`
	}{menuItem(m), m.Price.StringFixed(2)})
}
