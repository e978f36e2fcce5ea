// Package client is a Go client for the reservation API, plus the booking and
// manage-reservation flows the public site drives through it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/services"
)

type BookingForm struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Guests int    `json:"guests"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []services.FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reservation api: %d %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type apiResponse struct {
	Success     bool                  `json:"success"`
	Error       string                `json:"error"`
	Errors      []services.FieldError `json:"errors"`
	Reservation *models.Reservation   `json:"reservation"`
}

func (c *Client) CreateReservation(ctx context.Context, form BookingForm) (*models.Reservation, error) {
	resp, err := c.do(ctx, http.MethodPost, "/reservations", form)
	if err != nil {
		return nil, err
	}
	return resp.Reservation, nil
}

func (c *Client) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	resp, err := c.do(ctx, http.MethodGet, "/reservations/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return resp.Reservation, nil
}

func (c *Client) CancelReservation(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPatch, "/reservations/"+url.PathEscape(id),
		map[string]string{"status": string(models.ReservationCancelled)})
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*apiResponse, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		if res.StatusCode >= 300 {
			return nil, &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if res.StatusCode >= 300 || !out.Success {
		return nil, &APIError{StatusCode: res.StatusCode, Message: out.Error, Fields: out.Errors}
	}
	return &out, nil
}
