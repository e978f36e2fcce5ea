package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/router"
	"github.com/yeremiapane/restaurant-reservations/services"
)

func startAPI(t *testing.T) *Client {
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Reservation{}, &models.MenuCategory{}, &models.Menu{}, &models.SiteSettings{}))

	svc := services.NewReservationService(
		services.NewGormReservationStore(db),
		services.NewReservationValidator(time.Now, time.UTC, 15*time.Minute),
		nil,
	)
	r := router.SetupRouter(
		controllers.NewReservationController(svc),
		controllers.NewContentController(services.NewGormContentStore(db), models.SiteSettings{}),
		router.Options{},
	)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client())
}

func bookingForm() BookingForm {
	return BookingForm{
		Name:   "Jean",
		Email:  "jean@example.com",
		Phone:  "1234567890",
		Guests: 2,
		Date:   time.Now().UTC().AddDate(0, 0, 1).Format(models.DateLayout),
		Time:   "19:00",
	}
}

func TestBookThenCancel(t *testing.T) {
	c := startAPI(t)
	ctx := context.Background()

	booking := NewBookingFlow(c)
	booking.Submit(ctx, bookingForm())
	require.Equal(t, StatusSuccess, booking.Status, booking.Message)
	require.NotNil(t, booking.Reservation)
	assert.Equal(t, models.ReservationPending, booking.Reservation.Status)

	manage := NewManageFlow(c, booking.Reservation.ID)
	manage.Load(ctx)
	require.Equal(t, StatusSuccess, manage.Status)
	assert.Equal(t, "Jean", manage.Reservation.Name)

	manage.Cancel(ctx)
	assert.Equal(t, StatusSuccess, manage.Status)
	assert.Equal(t, models.ReservationCancelled, manage.Reservation.Status)

	manage.Cancel(ctx)
	assert.Equal(t, StatusError, manage.Status)
	assert.Equal(t, msgAlreadyCancelled, manage.Message)
}

func TestBookingFieldErrors(t *testing.T) {
	c := startAPI(t)

	form := bookingForm()
	form.Guests = 25
	form.Email = "nope"

	booking := NewBookingFlow(c)
	booking.Submit(context.Background(), form)
	assert.Equal(t, StatusError, booking.Status)
	assert.Contains(t, booking.FieldErrors, "guests")
	assert.Contains(t, booking.FieldErrors, "email")
	assert.Nil(t, booking.Reservation)
}

func TestManageUnknownReservation(t *testing.T) {
	c := startAPI(t)

	manage := NewManageFlow(c, "does-not-exist")
	manage.Load(context.Background())
	assert.Equal(t, StatusError, manage.Status)
	assert.Equal(t, msgNotFound, manage.Message)

	manage.Cancel(context.Background())
	assert.Equal(t, msgNotFound, manage.Message)
}

func TestServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	booking := NewBookingFlow(New(srv.URL, srv.Client()))
	booking.Submit(context.Background(), bookingForm())
	assert.Equal(t, StatusError, booking.Status)
	assert.Equal(t, msgServerError, booking.Message)
}
