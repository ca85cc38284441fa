package database

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/delight-cuisine/models"
	"github.com/yeremiapane/delight-cuisine/utils"
)

// Models lists every table owned by the service, in dependency order.
var Models = []interface{}{
	&models.User{},
	&models.MenuItem{},
	&models.Order{},
	&models.OrderItem{},
	&models.RestaurantStatus{},
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
