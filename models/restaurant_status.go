package models

import "time"

// RestaurantStatusID is the primary key of the only restaurant status row.
const RestaurantStatusID = 1

const (
	OpenMessage   = "We are currently accepting orders!"
	ClosedMessage = "We are currently closed. Please check back later!"
)

type RestaurantStatus struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	IsOpen    bool      `gorm:"not null" json:"is_open"`
	Message   string    `gorm:"type:varchar(255)" json:"message"`
	UpdatedAt time.Time `json:"updated_at"`
}
