package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-reservations/config"
)

func TestAPIEmailSender(t *testing.T) {
	var got apiEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer srv.Close()

	err := NewAPIEmailSender(srv.URL, "re_test").Send(context.Background(), EmailMessage{
		From:    "reservations@bistro.example.com",
		To:      []string{"jean@example.com"},
		Subject: "Hi",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"jean@example.com"}, got.To)
	assert.Equal(t, "<p>Hi</p>", got.HTML)
}

func TestAPIEmailSenderRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	err := NewAPIEmailSender(srv.URL, "re_test").Send(context.Background(), EmailMessage{To: []string{"x@example.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid from")
}

func TestSMTPSenderUsesEnvelopeAddress(t *testing.T) {
	s := NewSMTPSender("mail.example.com", "587", "", "")
	var from string
	var to []string
	s.send = func(addr string, a smtp.Auth, f string, rcpt []string, msg []byte) error {
		assert.Equal(t, "mail.example.com:587", addr)
		assert.Nil(t, a)
		from, to = f, rcpt
		return nil
	}
	require.NoError(t, s.Send(context.Background(), EmailMessage{
		From: "Chez Test <reservations@bistro.example.com>",
		To:   []string{"jean@example.com"},
	}))
	assert.Equal(t, "reservations@bistro.example.com", from)
	assert.Equal(t, []string{"jean@example.com"}, to)

	s.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("421 try later") }
	assert.Error(t, s.Send(context.Background(), EmailMessage{To: []string{"jean@example.com"}}))
}

func TestNewEmailSender(t *testing.T) {
	assert.Nil(t, NewEmailSender(config.EmailConfig{Provider: "api"}))
	assert.IsType(t, &APIEmailSender{}, NewEmailSender(config.EmailConfig{Provider: "api", APIKey: "k"}))
	assert.IsType(t, &SMTPSender{}, NewEmailSender(config.EmailConfig{Provider: "smtp", SMTPHost: "h", SMTPPort: "25"}))
}

func TestSanitizeHeader(t *testing.T) {
	assert.Equal(t, "Jean Bcc: x@example.com", SanitizeHeader("Jean\r\nBcc: x@example.com"))
	assert.Equal(t, "a b c", SanitizeHeader(" a\nb\rc "))
}
