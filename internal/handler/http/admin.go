package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"licensegate/internal/logger"
	"licensegate/internal/service"
	"licensegate/internal/store"
	"licensegate/internal/utils"
	"licensegate/models"
)

// addUser handles POST /admin/add_user.
func (h *Handler) addUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.AddLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeStatusError(w, http.StatusBadRequest, "Invalid JSON was passed")
		return
	}

	created, err := h.services.AdminService.CreateLicense(ctx, request)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided),
			errors.Is(err, service.ErrInvalidExpiryFormat):
			log.Err(err).Msg("invalid license data provided")
			writeStatusError(w, http.StatusBadRequest, err.Error())
			return
		// Duplicates answer 400, not 409; existing clients key off the message.
		case errors.Is(err, store.ErrUsernameExists):
			log.Err(err).Str("username", request.Username).Msg("username already exists")
			writeStatusError(w, http.StatusBadRequest, "Username already exists")
			return
		case errors.Is(err, store.ErrLicenseKeyExists):
			log.Err(err).Msg("license key already exists")
			writeStatusError(w, http.StatusBadRequest, "License key already exists")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during license creation")
			writeStatusError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	log.Info().Int64("id", created.ID).Str("username", created.Username).Msg("license created")

	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess, Message: "user added"}, http.StatusCreated)
}

// setStrategy handles POST /admin/set_strategy.
func (h *Handler) setStrategy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.SetStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeStatusError(w, http.StatusBadRequest, "Invalid JSON was passed")
		return
	}

	if err := h.services.AdminService.SetStrategy(ctx, request); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid strategy data provided")
			writeStatusError(w, http.StatusBadRequest, "invalid data provided")
			return
		case errors.Is(err, store.ErrNoLicenseFound):
			log.Err(err).Str("key", logger.KeyPrefix(request.LicenseKey)).Msg("no license was found")
			writeStatusError(w, http.StatusNotFound, "user not found")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during strategy replace")
			writeStatusError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess, Message: "strategy updated"}, http.StatusOK)
}

// listUsers handles GET /admin/list_users.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	licenses, err := h.services.AdminService.ListLicenses(ctx)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during license listing")
		writeStatusError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if licenses == nil {
		licenses = []models.License{}
	}

	utils.WriteJSON(w, models.ListLicensesResponse{Status: models.StatusSuccess, Users: licenses}, http.StatusOK)
}

// userStats handles GET /admin/user_stats/{licenseKey}.
func (h *Handler) userStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	licenseKey := chi.URLParam(r, "licenseKey")

	stats, err := h.services.AdminService.LicenseStats(ctx, licenseKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("stats requested without a license key")
			writeStatusError(w, http.StatusBadRequest, "invalid data provided")
			return
		case errors.Is(err, store.ErrNoLicenseFound):
			log.Err(err).Str("key", logger.KeyPrefix(licenseKey)).Msg("no license was found")
			writeStatusError(w, http.StatusNotFound, "user not found")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during stats aggregation")
			writeStatusError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	if stats == nil {
		stats = []models.ActionStats{}
	}

	utils.WriteJSON(w, models.LicenseStatsResponse{Status: models.StatusSuccess, Stats: stats}, http.StatusOK)
}

// deleteUser handles DELETE /admin/delete_user/{licenseKey}.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	licenseKey := chi.URLParam(r, "licenseKey")

	if err := h.services.AdminService.DeleteLicense(ctx, licenseKey); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("deletion requested without a license key")
			writeStatusError(w, http.StatusBadRequest, "invalid data provided")
			return
		case errors.Is(err, store.ErrNoLicenseFound):
			log.Err(err).Str("key", logger.KeyPrefix(licenseKey)).Msg("no license was found")
			writeStatusError(w, http.StatusNotFound, "user not found")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during license deletion")
			writeStatusError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess, Message: "user deleted"}, http.StatusOK)
}
