package services

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html.tmpl"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt.tmpl"))
)

// emailData is what the templates see. html/template escapes every field.
type emailData struct {
	Restaurant    string
	Name          string
	Email         string
	Phone         string
	When          string
	Guests        string
	Status        string
	ReservationID string
	ManageURL     string
}

// EmailRenderer turns a reservation into the customer and admin messages.
type EmailRenderer struct {
	Restaurant string
	SiteURL    string
	Location   *time.Location
}

// ManageURL is the page where the guest can view or cancel the booking.
func (r *EmailRenderer) ManageURL(id string) string {
	return strings.TrimRight(r.SiteURL, "/") + "/reservations/" + url.PathEscape(id)
}

func (r *EmailRenderer) data(rec *models.Reservation) emailData {
	when := rec.Date + " " + rec.Time
	if at, err := rec.ReservedAt(r.Location); err == nil {
		when = utils.FormatReservationDate(at)
	}
	return emailData{
		Restaurant:    r.Restaurant,
		Name:          rec.Name,
		Email:         rec.Email,
		Phone:         rec.Phone,
		When:          when,
		Guests:        utils.FormatGuests(rec.Guests),
		Status:        string(rec.Status),
		ReservationID: rec.ID,
		ManageURL:     r.ManageURL(rec.ID),
	}
}

func (r *EmailRenderer) CustomerConfirmation(rec *models.Reservation) (subject, html, text string, err error) {
	d := r.data(rec)
	subject = SanitizeHeader(fmt.Sprintf("Your reservation at %s - %s", d.Restaurant, d.When))
	html, text, err = render("customer_confirmation", d)
	return subject, html, text, err
}

func (r *EmailRenderer) AdminNotification(rec *models.Reservation) (subject, html, text string, err error) {
	d := r.data(rec)
	subject = SanitizeHeader(fmt.Sprintf("New reservation: %s (%s) - %s", d.Name, d.Guests, d.When))
	html, text, err = render("admin_notification", d)
	return subject, html, text, err
}

func render(name string, d emailData) (string, string, error) {
	var hb, tb bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&hb, name+".html.tmpl", d); err != nil {
		return "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	if err := textTemplates.ExecuteTemplate(&tb, name+".txt.tmpl", d); err != nil {
		return "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	return hb.String(), tb.String(), nil
}
