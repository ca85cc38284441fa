package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "PLACED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// OrderStatuses lists every recognized status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPlaced,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

const (
	OrderModeDelivery = "Delivery"
	OrderModePickup   = "Pickup"

	PaymentCashOnDelivery = "Cash on Delivery"
	PaymentCard           = "Credit/Debit Card"
	PaymentOnline         = "Online Payment"
)

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	DeliveryAddress string          `gorm:"type:text" json:"delivery_address"`
	Notes           string          `gorm:"type:text" json:"notes"`
	OrderMode       string          `gorm:"type:varchar(50);not null" json:"order_mode"`
	PaymentMethod   string          `gorm:"type:varchar(50);not null" json:"payment_method"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"items"`
	CreatedAt       time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}

// Reference is the human readable order number shown on dashboards.
func (o *Order) Reference() string {
	return fmt.Sprintf("ORD-%s-%d", o.CreatedAt.Format("20060102"), o.ID)
}

func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		TotalAmount string `json:"total_amount"`
	}{order(o), o.TotalAmount.StringFixed(2)})
}
