package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
)

// ContentStore is the read-only source of menu and site settings.
type ContentStore interface {
	Menu(ctx context.Context) ([]models.MenuCategory, error)
	// SiteSettings returns nil, nil when nothing has been published yet.
	SiteSettings(ctx context.Context) (*models.SiteSettings, error)
}

type GormContentStore struct {
	DB *gorm.DB
}

func NewGormContentStore(db *gorm.DB) *GormContentStore {
	return &GormContentStore{DB: db}
}

// Menu returns categories with their available dishes, both in display order.
func (s *GormContentStore) Menu(ctx context.Context) ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	err := s.DB.WithContext(ctx).
		Preload("Menus", func(db *gorm.DB) *gorm.DB {
			return db.Where("available = ?", true).Order("position ASC, id ASC")
		}).
		Order("position ASC, id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	return categories, nil
}

func (s *GormContentStore) SiteSettings(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := s.DB.WithContext(ctx).Order("id ASC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load site settings: %w", err)
	}
	return &settings, nil
}

// SiteSettingsOrFallback reads the published settings and returns fallback
// when there are none or the store fails. The error is still reported so the
// caller can log it.
func SiteSettingsOrFallback(ctx context.Context, store ContentStore, fallback models.SiteSettings) (models.SiteSettings, error) {
	settings, err := store.SiteSettings(ctx)
	if err != nil {
		return fallback, err
	}
	if settings == nil {
		return fallback, nil
	}
	return *settings, nil
}
