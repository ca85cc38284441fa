package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/delight-cuisine/kds"
	"github.com/yeremiapane/delight-cuisine/models"
	"github.com/yeremiapane/delight-cuisine/utils"
)

// forward-only machine; CANCELLED is reachable from PLACED only.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPlaced:         {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing:      {models.StatusOutForDelivery},
	models.StatusOutForDelivery: {models.StatusDelivered},
}

// CanTransition reports whether the regular state machine allows from -> to.
// Admins are not bound by it.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable from s under the regular machine.
func NextStatuses(s models.OrderStatus) []models.OrderStatus {
	return append([]models.OrderStatus(nil), transitions[s]...)
}

// OrderLifecycle places orders and moves them through their statuses.
type OrderLifecycle struct {
	Builder *OrderBuilder
	Store   *OrderStore
	Status  *RestaurantStatusService
	Events  Publisher
}

func NewOrderLifecycle(builder *OrderBuilder, store *OrderStore, status *RestaurantStatusService, events Publisher) *OrderLifecycle {
	return &OrderLifecycle{
		Builder: builder,
		Store:   store,
		Status:  status,
		Events:  publisherOrNop(events),
	}
}

// Place validates the request and persists a new PLACED order owned by the actor.
func (l *OrderLifecycle) Place(ctx context.Context, actor Actor, req OrderRequest) (*models.Order, error) {
	if actor.Anonymous() {
		return nil, newError(KindUnauthorized, "login required to place an order")
	}

	if l.Status != nil {
		status, err := l.Status.Get(ctx)
		if err != nil {
			return nil, err
		}
		if !status.IsOpen {
			return nil, ErrRestaurantClosed
		}
	}

	draft, err := l.Builder.Build(ctx, actor.UserID, req)
	if err != nil {
		return nil, err
	}

	order, err := l.Store.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	l.Events.Publish(kds.EventOrderCreated, order)
	return order, nil
}

// Get returns the order if the actor owns it or is an admin.
func (l *OrderLifecycle) Get(ctx context.Context, actor Actor, orderID uint) (*models.Order, error) {
	order, err := l.Store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.UserID != actor.UserID {
		return nil, newError(KindUnauthorized, "not authorized to view order %d", orderID)
	}
	return order, nil
}

// Advance moves an order to newStatus.
//
// Customers may only cancel their own PLACED orders. Admins may set any
// recognized status whatever the current one is.
func (l *OrderLifecycle) Advance(ctx context.Context, actor Actor, orderID uint, newStatus models.OrderStatus) (*models.Order, error) {
	var previous models.OrderStatus

	order, err := l.Store.Transition(ctx, orderID, func(order *models.Order) error {
		if !newStatus.Valid() {
			return newError(KindInvalidStatus, "status must be one of: PLACED, PREPARING, OUT_FOR_DELIVERY, DELIVERED, CANCELLED")
		}

		if !actor.IsAdmin() {
			if order.UserID != actor.UserID {
				return newError(KindUnauthorized, "not authorized to change order %d", orderID)
			}
			if newStatus != models.StatusCancelled {
				return newError(KindForbidden, "customers may only cancel orders")
			}
			if !CanTransition(order.Status, newStatus) {
				return ErrCannotCancel
			}
		} else if !CanTransition(order.Status, newStatus) {
			utils.InfoLogger.WithFields(logrus.Fields{
				"order_id": order.ID,
				"from":     order.Status,
				"to":       newStatus,
			}).Warn("Admin override outside the regular status flow")
		}

		previous = order.Status
		order.Status = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     previous,
		"to":       order.Status,
		"actor_id": actor.UserID,
		"role":     actor.Role,
	}).Info("Order status changed")

	l.Events.Publish(kds.EventOrderStatusChanged, statusChange{
		OrderID:   order.ID,
		From:      previous,
		To:        order.Status,
		Next:      NextStatuses(order.Status),
		ChangedAt: order.UpdatedAt,
	})
	return order, nil
}

// Cancel is Advance to CANCELLED.
func (l *OrderLifecycle) Cancel(ctx context.Context, actor Actor, orderID uint) (*models.Order, error) {
	return l.Advance(ctx, actor, orderID, models.StatusCancelled)
}

type statusChange struct {
	OrderID   uint                 `json:"order_id"`
	From      models.OrderStatus   `json:"from"`
	To        models.OrderStatus   `json:"to"`
	Next      []models.OrderStatus `json:"next_statuses"`
	ChangedAt time.Time            `json:"changed_at"`
}
