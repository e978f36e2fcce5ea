package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
)

// ReservationStore is the persistence boundary for reservations.
type ReservationStore interface {
	Create(ctx context.Context, r *models.Reservation) (*models.Reservation, error)
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error
}

// GormReservationStore keeps reservations in the reservations table.
type GormReservationStore struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewGormReservationStore(db *gorm.DB) *GormReservationStore {
	return &GormReservationStore{DB: db, Now: time.Now}
}

// Create assigns the id, timestamps and the pending status; whatever the
// caller put in those fields is overwritten.
func (s *GormReservationStore) Create(ctx context.Context, r *models.Reservation) (*models.Reservation, error) {
	now := s.Now().UTC()
	rec := *r
	rec.ID = uuid.NewString()
	rec.Status = models.ReservationPending
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}
	return &rec, nil
}

// GetByID returns ErrReservationNotFound when no row matches.
func (s *GormReservationStore) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var rec models.Reservation
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reservation %s: %w", id, err)
	}
	return &rec, nil
}

// UpdateStatus moves a reservation to status. The write is conditional on the
// status read just before, so a concurrent change makes it report a conflict
// rather than overwrite.
func (s *GormReservationStore) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := transitionError(current.Status, status); err != nil {
		return err
	}
	return s.updateFrom(ctx, id, current.Status, status)
}

// updateFrom writes status only if the row is still in from.
func (s *GormReservationStore) updateFrom(ctx context.Context, id string, from, to models.ReservationStatus) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": s.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("update reservation %s: %w", id, res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	// lost a race; report against whatever won
	latest, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := transitionError(latest.Status, to); err != nil {
		return err
	}
	return ErrInvalidStatusTransition
}

func transitionError(from, to models.ReservationStatus) error {
	if from.CanTransitionTo(to) {
		return nil
	}
	if from == models.ReservationCancelled {
		return ErrAlreadyCancelled
	}
	return ErrInvalidStatusTransition
}
