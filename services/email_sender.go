package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-reservations/config"
)

type EmailMessage struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// EmailSender delivers one message. Implementations make a single attempt;
// retrying is the dispatcher's job.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// NewEmailSender returns nil when email is not configured.
func NewEmailSender(cfg config.EmailConfig) EmailSender {
	if !cfg.Enabled() {
		return nil
	}
	if cfg.Provider == "smtp" {
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
	return NewAPIEmailSender(cfg.APIURL, cfg.APIKey)
}

// APIEmailSender posts messages to a transactional email HTTP API
// authenticated with a bearer key.
type APIEmailSender struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewAPIEmailSender(endpoint, apiKey string) *APIEmailSender {
	return &APIEmailSender{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type apiEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

func (s *APIEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	payload, err := json.Marshal(apiEmailRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// SMTPSender sends multipart/alternative mail. PlainAuth is used only when a
// username is configured.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host, port, user, pass string) *SMTPSender {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		auth: auth,
		send: smtp.SendMail,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.send(s.addr, s.auth, envelopeAddress(msg.From), msg.To, buildMIMEMessage(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

const mimeBoundary = "----=_RESERVATION_EMAIL_BOUNDARY"

func buildMIMEMessage(msg EmailMessage) []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", SanitizeHeader(msg.From)))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", SanitizeHeader(strings.Join(msg.To, ", "))))
	if msg.ReplyTo != "" {
		sb.WriteString(fmt.Sprintf("Reply-To: %s\r\n", SanitizeHeader(msg.ReplyTo)))
	}
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", SanitizeHeader(msg.Subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", mimeBoundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", mimeBoundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.Text + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", mimeBoundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.HTML + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", mimeBoundary))
	return []byte(sb.String())
}

// envelopeAddress extracts the bare address from "Name <addr>".
func envelopeAddress(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		if j := strings.LastIndex(from, ">"); j > i {
			return from[i+1 : j]
		}
	}
	return strings.TrimSpace(from)
}

// SanitizeHeader drops line breaks so user input cannot start a new header.
func SanitizeHeader(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
	return strings.TrimSpace(s)
}
