package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/delight-cuisine/kds"
	"github.com/yeremiapane/delight-cuisine/models"
	"github.com/yeremiapane/delight-cuisine/utils"
)

// RestaurantStatusService owns the persisted open/closed flag.
type RestaurantStatusService struct {
	DB     *gorm.DB
	Events Publisher
}

func NewRestaurantStatusService(db *gorm.DB, events Publisher) *RestaurantStatusService {
	return &RestaurantStatusService{DB: db, Events: publisherOrNop(events)}
}

// Get returns the current status, creating an open one on first use.
func (s *RestaurantStatusService) Get(ctx context.Context) (*models.RestaurantStatus, error) {
	status := models.RestaurantStatus{
		ID:      models.RestaurantStatusID,
		IsOpen:  true,
		Message: models.OpenMessage,
	}
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&status).Error
	if err != nil {
		return nil, storageError("init restaurant status", err, nil)
	}

	if err := s.DB.WithContext(ctx).First(&status, models.RestaurantStatusID).Error; err != nil {
		return nil, storageError("get restaurant status", err, nil)
	}
	return &status, nil
}

// Update sets the flag and/or the message. Nil fields are left unchanged.
func (s *RestaurantStatusService) Update(ctx context.Context, actor Actor, isOpen *bool, message *string) (*models.RestaurantStatus, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	status, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if isOpen != nil {
		status.IsOpen = *isOpen
	}
	if message != nil {
		status.Message = strings.TrimSpace(*message)
	}

	return s.save(ctx, actor, status)
}

// Toggle flips the flag and resets the message to the matching default.
func (s *RestaurantStatusService) Toggle(ctx context.Context, actor Actor) (*models.RestaurantStatus, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	status, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	status.IsOpen = !status.IsOpen
	status.Message = models.ClosedMessage
	if status.IsOpen {
		status.Message = models.OpenMessage
	}

	return s.save(ctx, actor, status)
}

func (s *RestaurantStatusService) save(ctx context.Context, actor Actor, status *models.RestaurantStatus) (*models.RestaurantStatus, error) {
	err := s.DB.WithContext(ctx).Model(status).Updates(map[string]interface{}{
		"is_open": status.IsOpen,
		"message": status.Message,
	}).Error
	if err != nil {
		return nil, storageError("update restaurant status", err, nil)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"is_open":  status.IsOpen,
		"admin_id": actor.UserID,
	}).Info("Restaurant status updated")
	s.Events.Publish(kds.EventRestaurantStatus, status)
	return status, nil
}
