package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/delight-cuisine/models"
	"github.com/yeremiapane/delight-cuisine/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	utils.SilenceLoggers()
	os.Exit(m.Run())
}

func TestOpenInMemoryIsolated(t *testing.T) {
	first, err := OpenInMemory()
	require.NoError(t, err)
	second, err := OpenInMemory()
	require.NoError(t, err)

	require.NoError(t, first.Create(&models.User{Name: "A", Email: "a@example.com", Password: "x", Role: models.RoleCustomer}).Error)

	var count int64
	require.NoError(t, second.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSeedMenuOnlyOnce(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)

	created, err := SeedMenu(db)
	require.NoError(t, err)
	assert.Equal(t, len(defaultMenu), created)

	created, err = SeedMenu(db)
	require.NoError(t, err)
	assert.Zero(t, created)

	var items []models.MenuItem
	require.NoError(t, db.Where("category = ?", "dessert").Order("name asc").Find(&items).Error)
	require.Len(t, items, 3)
	assert.Equal(t, "Cheesecake", items[0].Name)
	assert.Equal(t, "7.49", items[0].Price.StringFixed(2))
	assert.True(t, items[0].Available)
	assert.False(t, items[0].IsDeleted)
}
