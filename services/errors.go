package services

import (
	"errors"
	"strings"
)

var (
	ErrReservationNotFound     = errors.New("reservation not found")
	ErrAlreadyCancelled        = errors.New("reservation is already cancelled")
	ErrInvalidStatusTransition = errors.New("status change not allowed")
	ErrInvalidOperation        = errors.New("only cancellation is supported")
	ErrMalformedForm           = errors.New("request body is not a JSON object")
)

// FieldError is a single rule violation tagged with the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated rule of a submission.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, ", ")
}
