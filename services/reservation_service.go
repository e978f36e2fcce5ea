package services

import (
	"context"
	"strings"

	"github.com/yeremiapane/restaurant-reservations/models"
)

// ReservationService runs the booking, lookup and cancellation flows. It keeps
// no state between calls; the store and notifier own all side effects.
type ReservationService struct {
	store     ReservationStore
	validator *ReservationValidator
	notifier  Notifier
}

func NewReservationService(store ReservationStore, validator *ReservationValidator, notifier Notifier) *ReservationService {
	return &ReservationService{store: store, validator: validator, notifier: notifier}
}

// Create validates and stores a booking, then queues both emails without
// waiting for them. Validation failures come back as *ValidationError.
func (s *ReservationService) Create(ctx context.Context, form ReservationForm) (*models.Reservation, error) {
	result := s.validator.Validate(form)
	if !result.IsValid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	guests, _ := ParseGuests(form.Guests)
	rec, err := s.store.Create(ctx, &models.Reservation{
		Name:   strings.TrimSpace(form.Name),
		Email:  strings.ToLower(strings.TrimSpace(form.Email)),
		Phone:  strings.TrimSpace(form.Phone),
		Guests: guests,
		Date:   result.ReservedAt.Format(models.DateLayout),
		Time:   result.ReservedAt.Format(models.TimeLayout),
		Status: models.ReservationPending,
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.DispatchReservationCreated(*rec)
	}
	return rec, nil
}

func (s *ReservationService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	return s.store.GetByID(ctx, id)
}

// Cancel accepts only "cancelled", exactly, as the requested status.
func (s *ReservationService) Cancel(ctx context.Context, id string, requested string) error {
	status, err := models.ParseReservationStatus(requested)
	if err != nil || status != models.ReservationCancelled {
		return ErrInvalidOperation
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.IsCancelled() {
		return ErrAlreadyCancelled
	}
	return s.store.UpdateStatus(ctx, id, models.ReservationCancelled)
}
