package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-reservations/models"
)

type brokenContentStore struct{}

func (brokenContentStore) Menu(context.Context) ([]models.MenuCategory, error) {
	return nil, errors.New("cms down")
}

func (brokenContentStore) SiteSettings(context.Context) (*models.SiteSettings, error) {
	return nil, errors.New("cms down")
}

func TestMenuOrderedAndFiltered(t *testing.T) {
	db := setupTestDB(t)
	mains := models.MenuCategory{Name: "Mains", Position: 2}
	starters := models.MenuCategory{Name: "Starters", Position: 1}
	require.NoError(t, db.Create(&mains).Error)
	require.NoError(t, db.Create(&starters).Error)
	require.NoError(t, db.Create(&models.Menu{CategoryID: mains.ID, Name: "Coq au vin", Price: 24, Available: true, Position: 2}).Error)
	require.NoError(t, db.Create(&models.Menu{CategoryID: mains.ID, Name: "Boeuf bourguignon", Price: 26, Available: true, Position: 1}).Error)
	hidden := models.Menu{CategoryID: starters.ID, Name: "Escargots", Price: 12, Available: true}
	require.NoError(t, db.Create(&hidden).Error)
	require.NoError(t, db.Model(&hidden).Update("available", false).Error)

	menu, err := NewGormContentStore(db).Menu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, "Starters", menu[0].Name)
	assert.Empty(t, menu[0].Menus)
	assert.Equal(t, "Mains", menu[1].Name)
	require.Len(t, menu[1].Menus, 2)
	assert.Equal(t, "Boeuf bourguignon", menu[1].Menus[0].Name)
}

func TestSiteSettingsOrFallback(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormContentStore(db)
	fallback := models.SiteSettings{Name: "Fallback Bistro", OpeningHours: "Tue-Sun 12:00-22:00"}

	got, err := SiteSettingsOrFallback(context.Background(), store, fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	require.NoError(t, db.Create(&models.SiteSettings{Name: "Chez Test", Phone: "0102030405"}).Error)
	got, err = SiteSettingsOrFallback(context.Background(), store, fallback)
	require.NoError(t, err)
	assert.Equal(t, "Chez Test", got.Name)

	got, err = SiteSettingsOrFallback(context.Background(), brokenContentStore{}, fallback)
	assert.Error(t, err)
	assert.Equal(t, fallback, got)
}
