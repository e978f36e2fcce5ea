package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/yeremiapane/restaurant-reservations/models"
)

type FlowStatus string

const (
	StatusIdle       FlowStatus = "idle"
	StatusSubmitting FlowStatus = "submitting"
	StatusSuccess    FlowStatus = "success"
	StatusError      FlowStatus = "error"
)

const (
	msgBooked           = "Thank you! Your reservation request has been received. A confirmation email is on its way."
	msgCancelled        = "Your reservation has been cancelled."
	msgNotFound         = "We could not find this reservation."
	msgAlreadyCancelled = "This reservation has already been cancelled."
	msgServerError      = "Something went wrong. Please try again later."
)

// BookingFlow is the state behind the booking form.
type BookingFlow struct {
	client      *Client
	Status      FlowStatus
	Message     string
	FieldErrors map[string]string
	Reservation *models.Reservation
}

func NewBookingFlow(c *Client) *BookingFlow {
	return &BookingFlow{client: c, Status: StatusIdle}
}

// Submit sends the form and records the outcome for display.
func (f *BookingFlow) Submit(ctx context.Context, form BookingForm) {
	f.Status = StatusSubmitting
	f.Message = ""
	f.FieldErrors = nil

	rec, err := f.client.CreateReservation(ctx, form)
	if err == nil {
		f.Status = StatusSuccess
		f.Message = msgBooked
		f.Reservation = rec
		return
	}

	f.Status = StatusError
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
		f.Message = apiErr.Message
		if len(apiErr.Fields) > 0 {
			f.FieldErrors = make(map[string]string, len(apiErr.Fields))
			for _, fe := range apiErr.Fields {
				if _, seen := f.FieldErrors[fe.Field]; !seen {
					f.FieldErrors[fe.Field] = fe.Message
				}
			}
		}
		return
	}
	f.Message = msgServerError
}

// ManageFlow backs the view/cancel page reached from the confirmation email.
type ManageFlow struct {
	client      *Client
	ID          string
	Status      FlowStatus
	Message     string
	Reservation *models.Reservation
}

func NewManageFlow(c *Client, id string) *ManageFlow {
	return &ManageFlow{client: c, ID: id, Status: StatusIdle}
}

func (f *ManageFlow) Load(ctx context.Context) {
	rec, err := f.client.GetReservation(ctx, f.ID)
	switch {
	case err == nil:
		f.Status = StatusSuccess
		f.Message = ""
		f.Reservation = rec
	case IsNotFound(err):
		f.Status = StatusError
		f.Message = msgNotFound
	default:
		f.Status = StatusError
		f.Message = msgServerError
	}
}

// Cancel patches the loaded reservation to cancelled locally on success
// instead of fetching it again.
func (f *ManageFlow) Cancel(ctx context.Context) {
	f.Status = StatusSubmitting
	err := f.client.CancelReservation(ctx, f.ID)
	if err == nil {
		f.Status = StatusSuccess
		f.Message = msgCancelled
		if f.Reservation != nil {
			f.Reservation.Status = models.ReservationCancelled
		}
		return
	}

	f.Status = StatusError
	var apiErr *APIError
	switch {
	case IsNotFound(err):
		f.Message = msgNotFound
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest && apiErr.Message == "Reservation already cancelled":
		f.Message = msgAlreadyCancelled
		if f.Reservation != nil {
			f.Reservation.Status = models.ReservationCancelled
		}
	default:
		f.Message = msgServerError
	}
}
