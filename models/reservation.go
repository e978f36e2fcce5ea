package models

import (
	"fmt"
	"time"
)

// ReservationStatus is the lifecycle state of a table reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Layouts used for the date and time columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseReservationStatus rejects anything outside the closed set of statuses.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return ReservationStatus(s), nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
}

// CanTransitionTo reports whether a reservation in status s may move to next.
// pending -> confirmed is driven by staff outside this service; cancelled is terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCancelled
	case ReservationConfirmed:
		return next == ReservationCancelled
	case ReservationCancelled:
		return false
	default:
		return false
	}
}

type Reservation struct {
	ID        string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string            `gorm:"type:varchar(100);not null" json:"name"`
	Email     string            `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone     string            `gorm:"type:varchar(20);not null" json:"phone"`
	Guests    int               `gorm:"not null" json:"guests"`
	Date      string            `gorm:"type:varchar(10);not null;index" json:"date"`
	Time      string            `gorm:"type:varchar(5);not null" json:"time"`
	Status    ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null" json:"updated_at"`
}

// ReservedAt combines Date and Time into an instant in loc.
func (r *Reservation) ReservedAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout+" "+TimeLayout, r.Date+" "+r.Time, loc)
}

// IsCancelled mirrors the terminal state check used by the cancel flow.
func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationCancelled
}
