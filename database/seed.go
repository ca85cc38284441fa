package database

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/delight-cuisine/models"
	"github.com/yeremiapane/delight-cuisine/utils"
)

type seedItem struct {
	name        string
	description string
	price       string
	category    string
}

var defaultMenu = []seedItem{
	{"Spring Rolls", "Crispy vegetable spring rolls served with sweet chili sauce", "5.99", "appetizer"},
	{"Chicken Wings", "Spicy buffalo wings with blue cheese dip", "8.99", "appetizer"},
	{"Garlic Bread", "Toasted bread with garlic butter and herbs", "4.99", "appetizer"},
	{"Margherita Pizza", "Classic pizza with tomato sauce, mozzarella, and fresh basil", "12.99", "main"},
	{"Grilled Chicken Pasta", "Penne pasta with grilled chicken in creamy alfredo sauce", "14.99", "main"},
	{"Beef Burger", "Juicy beef patty with lettuce, tomato and cheddar", "11.99", "main"},
	{"Grilled Salmon", "Salmon fillet with lemon butter and seasonal vegetables", "18.99", "main"},
	{"Vegetable Stir Fry", "Wok-tossed vegetables in a soy ginger glaze", "10.99", "main"},
	{"Chocolate Cake", "Rich chocolate layer cake", "6.99", "dessert"},
	{"Tiramisu", "Espresso soaked ladyfingers with mascarpone", "7.99", "dessert"},
	{"Cheesecake", "New York style cheesecake with berry compote", "7.49", "dessert"},
	{"Fresh Orange Juice", "Freshly squeezed oranges", "3.99", "beverage"},
	{"Iced Coffee", "Cold brew over ice", "4.99", "beverage"},
	{"Mango Smoothie", "Mango blended with yogurt", "5.49", "beverage"},
	{"Soft Drink", "Assorted sodas", "2.99", "beverage"},
}

// SeedMenu inserts the default menu when the catalog is empty.
// It returns the number of items created.
func SeedMenu(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		utils.InfoLogger.Println("Menu items already exist, skipping seed")
		return 0, nil
	}

	items := make([]models.MenuItem, 0, len(defaultMenu))
	for _, s := range defaultMenu {
		items = append(items, models.MenuItem{
			Name:        s.name,
			Description: s.description,
			Price:       decimal.RequireFromString(s.price),
			Category:    s.category,
			Available:   true,
		})
	}

	if err := db.Create(&items).Error; err != nil {
		return 0, err
	}
	utils.InfoLogger.Printf("Seeded %d menu items", len(items))
	return len(items), nil
}
