package controllers

import (
	"net/http"

	"storefront/models"
	"storefront/response"
	"storefront/services"
)

// SettingsController serves the store settings
type SettingsController struct {
	settings *services.SettingsService
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(settings *services.SettingsService) *SettingsController {
	return &SettingsController{settings: settings}
}

// GetSettings returns the store settings
func (sc *SettingsController) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	settings, err := sc.settings.Get(ctx)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"settings": settings})
}

// UpdateSettings merges the posted fields into the store settings (Admin only)
func (sc *SettingsController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var update models.SettingsUpdate
	if err := decodeJSON(r, &update); err != nil {
		response.FromError(w, err)
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	settings, err := sc.settings.Update(ctx, update)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"message": "Settings updated successfully", "settings": settings})
}
