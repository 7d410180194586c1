package http

import (
	"errors"
	"net/http"

	"licensegate/internal/logger"
	"licensegate/internal/service"
	"licensegate/internal/utils"
	"licensegate/models"
)

// verify handles POST /verify.php. Clients send form-encoded "key" and
// "hwid" fields; on success they receive their identity block and strategy
// configuration.
//
// A request without a key is a plain 400; all authentication failures
// collapse into one 401 with the same generic message; a locked-out key gets
// 429. The response never reveals which check rejected the key.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("malformed form body")
		writeStatusError(w, http.StatusBadRequest, "invalid request")
		return
	}

	licenseKey := r.PostFormValue("key")
	hwid := r.PostFormValue("hwid")

	license, strategy, err := h.services.AuthService.Verify(ctx, licenseKey, hwid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Warn().Msg("verification request without a license key")
			writeStatusError(w, http.StatusBadRequest, "Invalid request")
			return
		case errors.Is(err, service.ErrTooManyAttempts):
			log.Warn().Str("key", logger.KeyPrefix(licenseKey)).Msg("verification throttled")
			writeStatusError(w, http.StatusTooManyRequests, "Too many login attempts. Try again later.")
			return
		case errors.Is(err, service.ErrAuthenticationFailed):
			log.Warn().Str("key", logger.KeyPrefix(licenseKey)).Msg("verification rejected")
			writeStatusError(w, http.StatusUnauthorized, "Authentication failed")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during verification")
			writeStatusError(w, http.StatusInternalServerError, "Server error")
			return
		}
	}

	response := models.VerifyResponse{
		Status: models.StatusSuccess,
		UserInfo: models.UserInfo{
			ID:         license.ID,
			Username:   license.Username,
			FullName:   license.FullName,
			LicenseKey: license.LicenseKey,
		},
		Config: models.ConfigPayload{
			Strategy: strategy.Data,
			MaxGoal:  strategy.MaxGoal,
		},
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
