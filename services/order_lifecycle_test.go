package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/delight-cuisine/kds"
	"github.com/yeremiapane/delight-cuisine/models"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]models.OrderStatus]bool{
		{models.StatusPlaced, models.StatusPreparing}:         true,
		{models.StatusPlaced, models.StatusCancelled}:         true,
		{models.StatusPreparing, models.StatusOutForDelivery}: true,
		{models.StatusOutForDelivery, models.StatusDelivered}: true,
	}
	for _, from := range models.OrderStatuses {
		for _, to := range models.OrderStatuses {
			assert.Equal(t, allowed[[2]models.OrderStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.Empty(t, NextStatuses(models.StatusDelivered))
	assert.Empty(t, NextStatuses(models.StatusCancelled))
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusPreparing, models.StatusCancelled},
		NextStatuses(models.StatusPlaced))
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	burger := seedItem(t, f.menu, "Burger", "10.00", "Mains")

	order := f.place(t, alice, LineRequest{MenuItemID: burger.ID, Quantity: 2})
	assert.Equal(t, alice.UserID, order.UserID)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.True(t, order.TotalAmount.Equal(dec("20.00")))
	assert.Contains(t, f.events.names(), kds.EventOrderCreated)

	got, err := f.lifecycle.Get(ctx, alice, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	require.Len(t, got.Items, 1)

	_, err = f.lifecycle.Get(ctx, bob, order.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.lifecycle.Get(ctx, admin, order.ID)
	assert.NoError(t, err)
}

func TestPlaceOrderRequiresLogin(t *testing.T) {
	f := newFixture(t)
	burger := seedItem(t, f.menu, "Burger", "10.00", "Mains")

	_, err := f.lifecycle.Place(context.Background(), anonymous, OrderRequest{
		Items: []LineRequest{{MenuItemID: burger.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFailedPlacementWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	burger := seedItem(t, f.menu, "Burger", "10.00", "Mains")
	shake, err := f.menu.Create(ctx, admin, MenuItemInput{
		Name: strPtr("Shake"), Price: decPtr("4.00"), Category: strPtr("Drinks"), Available: boolPtr(false),
	})
	require.NoError(t, err)

	cases := []OrderRequest{
		{},
		{Items: []LineRequest{{MenuItemID: burger.ID, Quantity: 1}, {MenuItemID: 999, Quantity: 1}}},
		{Items: []LineRequest{{MenuItemID: burger.ID, Quantity: 1}, {MenuItemID: shake.ID, Quantity: 1}}},
		{Items: []LineRequest{{MenuItemID: burger.ID, Quantity: 0}}},
	}
	for _, req := range cases {
		_, err := f.lifecycle.Place(ctx, alice, req)
		assert.Error(t, err)
	}

	orders, items := f.countOrders(t)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestClosedRestaurantRejectsOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	burger := seedItem(t, f.menu, "Burger", "10.00", "Mains")

	_, err := f.status.Update(ctx, admin, boolPtr(false), nil)
	require.NoError(t, err)

	_, err = f.lifecycle.Place(ctx, alice, OrderRequest{
		Items: []LineRequest{{MenuItemID: burger.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrRestaurantClosed)

	_, err = f.status.Toggle(ctx, admin)
	require.NoError(t, err)
	f.place(t, alice, LineRequest{MenuItemID: burger.ID, Quantity: 1})
}

func TestCapturedPricesSurviveMenuChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	burger := seedItem(t, f.menu, "Burger", "10.00", "Mains")

	order := f.place(t, alice, LineRequest{MenuItemID: burger.ID, Quantity: 2})

	_, err := f.menu.Update(ctx, admin, burger.ID, MenuItemInput{
		Name:  strPtr("Deluxe Burger"),
		Price: decPtr("15.00"),
	})
	require.NoError(t, err)
	_, err = f.menu.SoftDelete(ctx, admin, burger.ID)
	require.NoError(t, err)

	got, err := f.lifecycle.Get(ctx, alice, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Burger", got.Items[0].Name)
	assert.True(t, got.Items[0].UnitPrice.Equal(dec("10.00")))
	assert.True(t, got.Items[0].Subtotal.Equal(dec("20.00")))
	assert.True(t, got.TotalAmount.Equal(dec("20.00")))
}

func TestCustomerCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	burger := seedItem(t, f.menu, "Burger", "10.00", "Mains")

	t.Run("owner cancels a placed order", func(t *testing.T) {
		order := f.place(t, alice, LineRequest{MenuItemID: burger.ID, Quantity: 1})
		cancelled, err := f.lifecycle.Cancel(ctx, alice, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
		assert.Len(t, cancelled.Items, 1)
		assert.Contains(t, f.events.names(), kds.EventOrderStatusChanged)

		_, err = f.lifecycle.Cancel(ctx, alice, order.ID)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("other customer cannot cancel", func(t *testing.T) {
		order := f.place(t, alice, LineRequest{MenuItemID: burger.ID, Quantity: 1})
		_, err := f.lifecycle.Cancel(ctx, bob, order.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)

		got, err := f.store.Get(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPlaced, got.Status)
	})

	t.Run("preparing order cannot be cancelled by customer", func(t *testing.T) {
		order := f.place(t, alice, LineRequest{MenuItemID: burger.ID, Quantity: 1})
		_, err := f.lifecycle.Advance(ctx, admin, order.ID, models.StatusPreparing)
		require.NoError(t, err)

		_, err = f.lifecycle.Cancel(ctx, alice, order.ID)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("customer cannot advance", func(t *testing.T) {
		order := f.place(t, alice, LineRequest{MenuItemID: burger.ID, Quantity: 1})
		_, err := f.lifecycle.Advance(ctx, alice, order.ID, models.StatusDelivered)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := f.lifecycle.Cancel(ctx, alice, 4040)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAdminAdvance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	burger := seedItem(t, f.menu, "Burger", "10.00", "Mains")
	order := f.place(t, alice, LineRequest{MenuItemID: burger.ID, Quantity: 1})

	for _, next := range []models.OrderStatus{models.StatusPreparing, models.StatusOutForDelivery, models.StatusDelivered} {
		updated, err := f.lifecycle.Advance(ctx, admin, order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	// admins are not bound by the regular machine
	reopened, err := f.lifecycle.Advance(ctx, admin, order.ID, models.StatusPlaced)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlaced, reopened.Status)

	_, err = f.lifecycle.Advance(ctx, admin, order.ID, models.OrderStatus("LOST"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.lifecycle.Advance(ctx, admin, 999, models.StatusDelivered)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := f.store.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlaced, got.Status)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestStatusChangeEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	burger := seedItem(t, f.menu, "Burger", "10.00", "Mains")
	order := f.place(t, alice, LineRequest{MenuItemID: burger.ID, Quantity: 1})

	_, err := f.lifecycle.Advance(ctx, admin, order.ID, models.StatusPreparing)
	require.NoError(t, err)

	last := f.events.events[len(f.events.events)-1]
	require.Equal(t, kds.EventOrderStatusChanged, last.name)
	change, ok := last.data.(statusChange)
	require.True(t, ok)
	assert.Equal(t, order.ID, change.OrderID)
	assert.Equal(t, models.StatusPlaced, change.From)
	assert.Equal(t, models.StatusPreparing, change.To)
	assert.Equal(t, []models.OrderStatus{models.StatusOutForDelivery}, change.Next)
}
