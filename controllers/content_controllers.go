package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// ContentController serves the read-only menu and site settings.
type ContentController struct {
	Store    services.ContentStore
	Fallback models.SiteSettings
}

func NewContentController(store services.ContentStore, fallback models.SiteSettings) *ContentController {
	return &ContentController{Store: store, Fallback: fallback}
}

// GetMenu -> GET /menu
func (cc *ContentController) GetMenu(c *gin.Context) {
	menu, err := cc.Store.Menu(c.Request.Context())
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("failed to load menu")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to load menu")
		return
	}
	if menu == nil {
		menu = []models.MenuCategory{}
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"menu": menu})
}

// GetSiteSettings -> GET /site-settings, never fails: the fallback is served instead
func (cc *ContentController) GetSiteSettings(c *gin.Context) {
	settings, err := services.SiteSettingsOrFallback(c.Request.Context(), cc.Store, cc.Fallback)
	if err != nil {
		utils.InfoLogger.WithError(err).Warn("serving fallback site settings")
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"settings": settings})
}
