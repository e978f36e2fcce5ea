package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-reservations/models"
)

const (
	NotificationCustomer = "customer"
	NotificationAdmin    = "admin"

	DefaultMaxAttempts = 3
)

type NotificationResult struct {
	Success bool
	Error   error
}

// Notifier is what the reservation flow needs from the dispatcher.
type Notifier interface {
	DispatchReservationCreated(rec models.Reservation)
}

type DispatcherConfig struct {
	From        string
	AdminEmail  string
	MaxAttempts uint
	BaseDelay   time.Duration
}

// NotificationDispatcher sends the customer confirmation and the admin alert
// for new reservations. A nil sender means email is switched off and every
// send succeeds without doing anything.
type NotificationDispatcher struct {
	sender   EmailSender
	renderer *EmailRenderer
	cfg      DispatcherConfig
	log      *logrus.Logger
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewNotificationDispatcher(sender EmailSender, renderer *EmailRenderer, cfg DispatcherConfig, log *logrus.Logger) *NotificationDispatcher {
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NotificationDispatcher{
		sender:   sender,
		renderer: renderer,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

func (d *NotificationDispatcher) SendCustomerConfirmation(ctx context.Context, rec *models.Reservation) NotificationResult {
	if d.sender == nil {
		return NotificationResult{Success: true}
	}
	subject, html, text, err := d.renderer.CustomerConfirmation(rec)
	if err != nil {
		return NotificationResult{Error: err}
	}
	return d.sendWithRetry(ctx, EmailMessage{
		From:    d.cfg.From,
		To:      []string{rec.Email},
		ReplyTo: d.cfg.AdminEmail,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
}

// SendAdminNotification is skipped, successfully, when no admin address is set.
func (d *NotificationDispatcher) SendAdminNotification(ctx context.Context, rec *models.Reservation) NotificationResult {
	if d.sender == nil || d.cfg.AdminEmail == "" {
		return NotificationResult{Success: true}
	}
	subject, html, text, err := d.renderer.AdminNotification(rec)
	if err != nil {
		return NotificationResult{Error: err}
	}
	return d.sendWithRetry(ctx, EmailMessage{
		From:    d.cfg.From,
		To:      []string{d.cfg.AdminEmail},
		ReplyTo: rec.Email,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
}

// sendWithRetry makes up to MaxAttempts attempts, doubling the wait each time.
func (d *NotificationDispatcher) sendWithRetry(ctx context.Context, msg EmailMessage) NotificationResult {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.cfg.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = d.cfg.BaseDelay << d.cfg.MaxAttempts

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		return struct{}{}, d.sender.Send(ctx, msg)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(d.cfg.MaxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			d.log.WithFields(logrus.Fields{
				"attempt": attempt,
				"retryIn": next.String(),
				"error":   err.Error(),
			}).Warn("email send failed, retrying")
		}),
	)
	if err != nil {
		return NotificationResult{Error: fmt.Errorf("after %d attempts: %w", attempt, err)}
	}
	return NotificationResult{Success: true}
}

// DispatchReservationCreated sends both emails in the background and returns
// immediately. Failures are logged, never returned.
func (d *NotificationDispatcher) DispatchReservationCreated(rec models.Reservation) {
	d.dispatch(NotificationCustomer, rec, d.SendCustomerConfirmation)
	d.dispatch(NotificationAdmin, rec, d.SendAdminNotification)
}

func (d *NotificationDispatcher) dispatch(kind string, rec models.Reservation, send func(context.Context, *models.Reservation) NotificationResult) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		res := send(context.Background(), &rec)
		if res.Success {
			return
		}
		err := res.Error
		if err == nil {
			err = errors.New("unknown notification failure")
		}
		d.log.WithFields(logrus.Fields{
			"type":          kind,
			"reservationId": rec.ID,
			"error":         err.Error(),
			"timestamp":     d.now().UTC().Format(time.RFC3339),
		}).Error("reservation notification failed")
	}()
}

// Wait blocks until every background send has finished.
func (d *NotificationDispatcher) Wait() {
	d.wg.Wait()
}
