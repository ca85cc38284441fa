package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/delight-cuisine/kds"
	"github.com/yeremiapane/delight-cuisine/models"
)

func TestRestaurantStatusDefaultsOpen(t *testing.T) {
	ctx := context.Background()
	status := NewRestaurantStatusService(setupTestDB(t), nil)

	first, err := status.Get(ctx)
	require.NoError(t, err)
	assert.True(t, first.IsOpen)
	assert.Equal(t, models.OpenMessage, first.Message)

	second, err := status.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.IsOpen, second.IsOpen)

	var rows int64
	require.NoError(t, status.DB.Model(&models.RestaurantStatus{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRestaurantStatusToggle(t *testing.T) {
	ctx := context.Background()
	events := &recordingPublisher{}
	status := NewRestaurantStatusService(setupTestDB(t), events)

	closed, err := status.Toggle(ctx, admin)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)
	assert.Equal(t, models.ClosedMessage, closed.Message)

	current, err := status.Get(ctx)
	require.NoError(t, err)
	assert.False(t, current.IsOpen, "toggle must be persisted")

	opened, err := status.Toggle(ctx, admin)
	require.NoError(t, err)
	assert.True(t, opened.IsOpen)
	assert.Equal(t, models.OpenMessage, opened.Message)

	assert.Equal(t, []string{kds.EventRestaurantStatus, kds.EventRestaurantStatus}, events.names())

	_, err = status.Toggle(ctx, alice)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRestaurantStatusUpdate(t *testing.T) {
	ctx := context.Background()
	status := NewRestaurantStatusService(setupTestDB(t), nil)

	updated, err := status.Update(ctx, admin, nil, strPtr("  Back at 5pm "))
	require.NoError(t, err)
	assert.True(t, updated.IsOpen)
	assert.Equal(t, "Back at 5pm", updated.Message)

	updated, err = status.Update(ctx, admin, boolPtr(false), nil)
	require.NoError(t, err)
	assert.False(t, updated.IsOpen)
	assert.Equal(t, "Back at 5pm", updated.Message)

	_, err = status.Update(ctx, anonymous, boolPtr(true), nil)
	assert.ErrorIs(t, err, ErrForbidden)
}
