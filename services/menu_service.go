package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yeremiapane/delight-cuisine/kds"
	"github.com/yeremiapane/delight-cuisine/models"
	"github.com/yeremiapane/delight-cuisine/utils"
)

// MenuFilter narrows List. Nil pointers mean "no filter".
type MenuFilter struct {
	Category       *string
	Available      *bool
	IncludeDeleted bool
}

// MenuItemInput carries the fields of a create or a partial update.
type MenuItemInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"image_url"`
	Available   *bool            `json:"available"`
}

type MenuService struct {
	DB     *gorm.DB
	Events Publisher
}

func NewMenuService(db *gorm.DB, events Publisher) *MenuService {
	return &MenuService{DB: db, Events: publisherOrNop(events)}
}

func (s *MenuService) List(ctx context.Context, actor Actor, filter MenuFilter) ([]models.MenuItem, error) {
	if filter.IncludeDeleted {
		if err := RequireAdmin(actor); err != nil {
			return nil, err
		}
	}

	q := s.DB.WithContext(ctx).Model(&models.MenuItem{})
	if !filter.IncludeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.Available != nil {
		q = q.Where("available = ?", *filter.Available)
	}

	items := []models.MenuItem{}
	if err := q.Order("category asc").Order("name asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, storageError("list menu items", err, nil)
	}
	return items, nil
}

// Get returns a single item. Soft-deleted items are only visible to admins
// asking for the deleted view.
func (s *MenuService) Get(ctx context.Context, actor Actor, id uint, includeDeleted bool) (*models.MenuItem, error) {
	if includeDeleted {
		if err := RequireAdmin(actor); err != nil {
			return nil, err
		}
	}

	q := s.DB.WithContext(ctx)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}

	var item models.MenuItem
	if err := q.First(&item, id).Error; err != nil {
		return nil, storageError("get menu item", err, newError(KindNotFound, "menu item %d not found", id))
	}
	return &item, nil
}

// Resolve looks an item up for order validation.
func (s *MenuService) Resolve(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.DB.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&item).Error
	if err != nil {
		return nil, storageError("resolve menu item", err, newError(KindItemNotFound, "menu item %d not found", id))
	}
	return &item, nil
}

func (s *MenuService) Create(ctx context.Context, actor Actor, in MenuItemInput) (*models.MenuItem, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateMenuInput(in, true); err != nil {
		return nil, err
	}

	item := models.MenuItem{
		Name:      strings.TrimSpace(*in.Name),
		Price:     in.Price.Round(2),
		Category:  strings.TrimSpace(*in.Category),
		Available: true,
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.ImageURL != nil {
		item.ImageURL = *in.ImageURL
	}
	if in.Available != nil {
		item.Available = *in.Available
	}

	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, storageError("create menu item", err, nil)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"menu_item_id": item.ID,
		"admin_id":     actor.UserID,
	}).Infof("Menu item created: %s (%s)", item.Name, utils.FormatPrice(item.Price))
	s.Events.Publish(kds.EventMenuUpdated, item)
	return &item, nil
}

func (s *MenuService) Update(ctx context.Context, actor Actor, id uint, in MenuItemInput) (*models.MenuItem, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateMenuInput(in, false); err != nil {
		return nil, err
	}

	var item models.MenuItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}

		if in.Name != nil {
			item.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			item.Description = *in.Description
		}
		if in.Price != nil {
			item.Price = in.Price.Round(2)
		}
		if in.Category != nil {
			item.Category = strings.TrimSpace(*in.Category)
		}
		if in.ImageURL != nil {
			item.ImageURL = *in.ImageURL
		}
		if in.Available != nil {
			item.Available = *in.Available
		}

		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, storageError("update menu item", err, newError(KindNotFound, "menu item %d not found", id))
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"menu_item_id": item.ID,
		"admin_id":     actor.UserID,
	}).Info("Menu item updated")
	s.Events.Publish(kds.EventMenuUpdated, item)
	return &item, nil
}

// ToggleAvailability flips the available flag of a live item.
func (s *MenuService) ToggleAvailability(ctx context.Context, actor Actor, id uint) (*models.MenuItem, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	var item models.MenuItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&item).Error; err != nil {
			return err
		}
		item.Available = !item.Available
		return tx.Model(&item).Update("available", item.Available).Error
	})
	if err != nil {
		return nil, storageError("toggle menu item", err, newError(KindNotFound, "menu item %d not found", id))
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"menu_item_id": item.ID,
		"available":    item.Available,
	}).Info("Menu item availability toggled")
	s.Events.Publish(kds.EventMenuUpdated, item)
	return &item, nil
}

// SoftDelete hides the item from listings and ordering. Orders that already
// captured it are left untouched.
func (s *MenuService) SoftDelete(ctx context.Context, actor Actor, id uint) (*models.MenuItem, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	var item models.MenuItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		item.IsDeleted = true
		return tx.Model(&item).Update("is_deleted", true).Error
	})
	if err != nil {
		return nil, storageError("delete menu item", err, newError(KindNotFound, "menu item %d not found", id))
	}

	utils.InfoLogger.WithField("menu_item_id", item.ID).Info("Menu item soft-deleted")
	s.Events.Publish(kds.EventMenuUpdated, item)
	return &item, nil
}

func (s *MenuService) Restore(ctx context.Context, actor Actor, id uint) (*models.MenuItem, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	var item models.MenuItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", id, true).First(&item).Error; err != nil {
			return err
		}
		item.IsDeleted = false
		return tx.Model(&item).Update("is_deleted", false).Error
	})
	if err != nil {
		return nil, storageError("restore menu item", err, newError(KindNotFound, "deleted menu item %d not found", id))
	}

	utils.InfoLogger.WithField("menu_item_id", item.ID).Info("Menu item restored")
	s.Events.Publish(kds.EventMenuUpdated, item)
	return &item, nil
}

// Categories lists the distinct categories of non-deleted items.
func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := s.DB.WithContext(ctx).Model(&models.MenuItem{}).
		Where("is_deleted = ?", false).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, storageError("list categories", err, nil)
	}
	return categories, nil
}

func validateMenuInput(in MenuItemInput, create bool) error {
	if create {
		var missing []string
		if in.Name == nil {
			missing = append(missing, "name")
		}
		if in.Price == nil {
			missing = append(missing, "price")
		}
		if in.Category == nil {
			missing = append(missing, "category")
		}
		if len(missing) > 0 {
			return newError(KindValidation, "missing required fields: %s", strings.Join(missing, ", "))
		}
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return newError(KindValidation, "name must not be empty")
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) == "" {
		return newError(KindValidation, "category must not be empty")
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return newError(KindValidation, "price must be non-negative")
		}
		if !in.Price.Equal(in.Price.Round(2)) {
			return newError(KindValidation, "price must not have more than two decimals")
		}
	}
	return nil
}
