package services

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type rawReservationForm struct {
	Name   json.RawMessage `json:"name"`
	Email  json.RawMessage `json:"email"`
	Phone  json.RawMessage `json:"phone"`
	Guests json.RawMessage `json:"guests"`
	Date   json.RawMessage `json:"date"`
	Time   json.RawMessage `json:"time"`
}

// DecodeReservationForm reads a booking request body. A field holding the wrong
// JSON type is reported as a *ValidationError naming that field; only a body
// that is not a JSON object comes back as a plain error.
func DecodeReservationForm(data []byte) (ReservationForm, error) {
	var raw rawReservationForm
	if err := json.Unmarshal(data, &raw); err != nil {
		return ReservationForm{}, fmt.Errorf("%w: %v", ErrMalformedForm, err)
	}

	var form ReservationForm
	var errs []FieldError
	text := func(field string, msg string, src json.RawMessage, dst *string) {
		if isNull(src) {
			return
		}
		if err := json.Unmarshal(src, dst); err != nil {
			errs = append(errs, FieldError{Field: field, Message: msg})
		}
	}

	text("name", "Name must be text", raw.Name, &form.Name)
	text("email", "Please enter a valid email address", raw.Email, &form.Email)
	text("phone", "Please enter a valid phone number", raw.Phone, &form.Phone)

	if !isNull(raw.Guests) {
		if n, ok := rawGuests(raw.Guests); ok {
			form.Guests = n
		} else {
			errs = append(errs, FieldError{Field: "guests", Message: fmt.Sprintf("Number of guests must be between %d and %d", MinGuests, MaxGuests)})
		}
	}

	text("date", "Invalid date or time", raw.Date, &form.Date)
	text("time", "Invalid date or time", raw.Time, &form.Time)

	if len(errs) > 0 {
		return form, &ValidationError{Errors: errs}
	}
	return form, nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// rawGuests accepts both 4 and "4". Range and integer checks are left to ParseGuests.
func rawGuests(raw json.RawMessage) (json.Number, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return json.Number(s), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	return n, true
}
