package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/services"
)

func setupContentRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := controllers.NewContentController(services.NewGormContentStore(db), models.SiteSettings{
		Name:         "Fallback Bistro",
		OpeningHours: "Tue-Sun 12:00-22:00",
	})
	router := gin.New()
	router.GET("/menu", ctrl.GetMenu)
	router.GET("/site-settings", ctrl.GetSiteSettings)
	return router
}

func TestGetMenu(t *testing.T) {
	db := setupTestDB(t)
	category := models.MenuCategory{Name: "Desserts"}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&models.Menu{CategoryID: category.ID, Name: "Tarte Tatin", Price: 9.5, Available: true}).Error)

	w, resp := perform(setupContentRouter(db), http.MethodGet, "/menu", "")
	require.Equal(t, http.StatusOK, w.Code)

	menu := resp["menu"].([]interface{})
	require.Len(t, menu, 1)
	first := menu[0].(map[string]interface{})
	assert.Equal(t, "Desserts", first["name"])
	assert.Len(t, first["items"], 1)
}

func TestGetMenuEmpty(t *testing.T) {
	w, resp := perform(setupContentRouter(setupTestDB(t)), http.MethodGet, "/menu", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, resp["menu"])
}

func TestGetSiteSettingsFallsBack(t *testing.T) {
	db := setupTestDB(t)
	router := setupContentRouter(db)

	w, resp := perform(router, http.MethodGet, "/site-settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fallback Bistro", resp["settings"].(map[string]interface{})["name"])

	require.NoError(t, db.Create(&models.SiteSettings{Name: "Chez Test", OpeningHours: "Every day"}).Error)
	w, resp = perform(router, http.MethodGet, "/site-settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Chez Test", resp["settings"].(map[string]interface{})["name"])
}
