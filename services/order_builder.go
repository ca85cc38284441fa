package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/delight-cuisine/models"
)

// ItemResolver resolves a menu item that can be ordered. Missing and
// soft-deleted items must fail with ErrItemNotFound.
type ItemResolver interface {
	Resolve(ctx context.Context, id uint) (*models.MenuItem, error)
}

type LineRequest struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

// OrderRequest is what a customer submits when placing an order.
type OrderRequest struct {
	Items           []LineRequest `json:"items"`
	DeliveryAddress string        `json:"delivery_address"`
	Notes           string        `json:"notes"`
	OrderMode       string        `json:"order_mode"`
	PaymentMethod   string        `json:"payment_method"`
}

type OrderBuilder struct {
	Items ItemResolver
}

func NewOrderBuilder(items ItemResolver) *OrderBuilder {
	return &OrderBuilder{Items: items}
}

// Build validates every line and returns an unpersisted PLACED order with
// captured prices. Nothing is written; any failing line aborts the build.
func (b *OrderBuilder) Build(ctx context.Context, userID uint, req OrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	orderMode, err := normalizeOrderMode(req.OrderMode)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := normalizePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	lines := make([]models.OrderItem, 0, len(req.Items))

	for _, line := range req.Items {
		item, err := b.Items.Resolve(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if line.Quantity < 1 {
			return nil, newError(KindInvalidQuantity, "quantity for %s must be at least 1", item.Name)
		}
		if !item.Available {
			return nil, newError(KindItemUnavailable, "%s is currently unavailable", item.Name)
		}

		// prices are whole cents, so the subtotal is exact
		unitPrice := item.Price.Round(2)
		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)

		lines = append(lines, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			Subtotal:   subtotal,
		})
	}

	return &models.Order{
		UserID:          userID,
		Status:          models.StatusPlaced,
		TotalAmount:     total,
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		Notes:           strings.TrimSpace(req.Notes),
		OrderMode:       orderMode,
		PaymentMethod:   paymentMethod,
		Items:           lines,
	}, nil
}

func normalizeOrderMode(mode string) (string, error) {
	switch strings.TrimSpace(mode) {
	case "", models.OrderModeDelivery:
		return models.OrderModeDelivery, nil
	case models.OrderModePickup:
		return models.OrderModePickup, nil
	}
	return "", newError(KindValidation, "order_mode must be %q or %q", models.OrderModeDelivery, models.OrderModePickup)
}

func normalizePaymentMethod(method string) (string, error) {
	method = strings.TrimSpace(method)
	switch method {
	case "", models.PaymentCashOnDelivery:
		return models.PaymentCashOnDelivery, nil
	case models.PaymentCard, models.PaymentOnline:
		return method, nil
	}
	return "", newError(KindValidation, "unsupported payment_method %q", method)
}
