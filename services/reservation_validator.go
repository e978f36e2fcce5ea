package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yeremiapane/restaurant-reservations/models"
)

const (
	MinGuests = 1
	MaxGuests = 20

	// column widths of the reservations table
	MaxNameLength  = 100
	MaxEmailLength = 255
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\- ()]{10,20}$`)
)

// ReservationForm is the raw booking request as submitted by the site.
// Guests accepts both 4 and "4".
type ReservationForm struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Phone  string      `json:"phone"`
	Guests json.Number `json:"guests"`
	Date   string      `json:"date"`
	Time   string      `json:"time"`
}

type ValidationResult struct {
	IsValid bool         `json:"isValid"`
	Errors  []FieldError `json:"errors"`

	// ReservedAt is the parsed date and time, set whenever both parse.
	ReservedAt time.Time `json:"-"`
}

// ReservationValidator checks a form against the booking rules. It does no I/O;
// the clock is injected so results are deterministic.
type ReservationValidator struct {
	Now      func() time.Time
	Location *time.Location
	LeadTime time.Duration
}

func NewReservationValidator(now func() time.Time, loc *time.Location, leadTime time.Duration) *ReservationValidator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationValidator{Now: now, Location: loc, LeadTime: leadTime}
}

// Validate collects every violation instead of stopping at the first one.
func (v *ReservationValidator) Validate(form ReservationForm) ValidationResult {
	errs := []FieldError{}
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	name := strings.TrimSpace(form.Name)
	switch {
	case name == "":
		add("name", "Name is required")
	case utf8.RuneCountInString(name) < 2:
		add("name", "Name must be at least 2 characters")
	case utf8.RuneCountInString(name) > MaxNameLength:
		add("name", fmt.Sprintf("Name must be at most %d characters", MaxNameLength))
	}

	email := strings.TrimSpace(form.Email)
	switch {
	case !emailPattern.MatchString(email):
		add("email", "Please enter a valid email address")
	case utf8.RuneCountInString(email) > MaxEmailLength:
		add("email", fmt.Sprintf("Email must be at most %d characters", MaxEmailLength))
	}

	if !phonePattern.MatchString(strings.TrimSpace(form.Phone)) {
		add("phone", "Please enter a valid phone number")
	}

	if _, ok := ParseGuests(form.Guests); !ok {
		add("guests", fmt.Sprintf("Number of guests must be between %d and %d", MinGuests, MaxGuests))
	}

	date := strings.TrimSpace(form.Date)
	tm := strings.TrimSpace(form.Time)
	if date == "" {
		add("date", "Date is required")
	}
	if tm == "" {
		add("time", "Time is required")
	}
	var at time.Time
	if date != "" && tm != "" {
		var err error
		at, err = time.ParseInLocation(models.DateLayout+" "+models.TimeLayout, date+" "+tm, v.Location)
		if err != nil {
			add("date", "Invalid date or time")
		} else if at.Before(v.Now().Add(v.LeadTime)) {
			add("date", fmt.Sprintf("Reservation must be at least %s in the future", humanizeLeadTime(v.LeadTime)))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs, ReservedAt: at}
}

// ParseGuests reports the guest count and whether it lies within bounds.
func ParseGuests(n json.Number) (int, bool) {
	g, err := strconv.Atoi(strings.TrimSpace(n.String()))
	if err != nil {
		return 0, false
	}
	return g, g >= MinGuests && g <= MaxGuests
}

func humanizeLeadTime(d time.Duration) string {
	if d%time.Hour == 0 && d >= time.Hour {
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
