package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yeremiapane/delight-cuisine/models"
	"github.com/yeremiapane/delight-cuisine/utils"
)

// OrderStore persists orders. Listings are most-recent-first with the id as
// tie breaker.
type OrderStore struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

// now is always UTC: sqlite compares created_at as text, which only sorts
// correctly when every row carries the same offset.
func (s *OrderStore) now() time.Time {
	return s.Now().UTC()
}

// Create writes the order and its lines in one transaction.
func (s *OrderStore) Create(ctx context.Context, draft *models.Order) (*models.Order, error) {
	order := *draft
	order.ID = 0
	order.CreatedAt = s.now()
	order.UpdatedAt = order.CreatedAt

	items := make([]models.OrderItem, len(draft.Items))
	copy(items, draft.Items)
	for i := range items {
		items[i].ID = 0
		items[i].CreatedAt = order.CreatedAt
	}
	order.Items = nil

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, storageError("create order", err, nil)
	}
	order.Items = items

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"reference": order.Reference(),
		"user_id":   order.UserID,
		"items":     len(items),
	}).Infof("Order placed, total %s", utils.FormatPrice(order.TotalAmount))
	return &order, nil
}

func (s *OrderStore) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).Preload("Items", orderItemsAsc).First(&order, id).Error
	if err != nil {
		return nil, storageError("get order", err, newError(KindNotFound, "order %d not found", id))
	}
	return &order, nil
}

func (s *OrderStore) ListForUser(ctx context.Context, userID uint, status *models.OrderStatus) ([]models.Order, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	return s.list(q)
}

// ListAll is the admin view over every order.
func (s *OrderStore) ListAll(ctx context.Context, actor Actor, status *models.OrderStatus, userID *uint) ([]models.Order, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	q := s.DB.WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	return s.list(q)
}

// Transition loads the order, lets apply change it and writes the new status
// in one transaction. An error from apply aborts without writing. The
// returned order carries its items.
func (s *OrderStore) Transition(ctx context.Context, id uint, apply func(order *models.Order) error) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		if err := apply(&order); err != nil {
			return err
		}

		order.UpdatedAt = s.now()
		err := tx.Model(&order).Updates(map[string]interface{}{
			"status":     order.Status,
			"updated_at": order.UpdatedAt,
		}).Error
		if err != nil {
			return err
		}
		return orderItemsAsc(tx).Where("order_id = ?", order.ID).Find(&order.Items).Error
	})
	if err != nil {
		return nil, storageError("update order status", err, newError(KindNotFound, "order %d not found", id))
	}
	return &order, nil
}

func (s *OrderStore) list(q *gorm.DB) ([]models.Order, error) {
	orders := []models.Order{}
	err := q.Preload("Items", orderItemsAsc).
		Order("created_at desc").
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return nil, storageError("list orders", err, nil)
	}
	return orders, nil
}

func orderItemsAsc(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}
