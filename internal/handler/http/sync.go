package http

import (
	"errors"
	"net/http"
	"strconv"

	"licensegate/internal/logger"
	"licensegate/internal/service"
	"licensegate/internal/store"
	"licensegate/internal/utils"
	"licensegate/models"
)

// syncAction handles POST /sync_action.php. Clients report one action as a
// form-encoded body: "key", "hwid", "action", numeric "amount",
// "live_balance", "profit", and optionally "start_balance" / "max_goal" for
// the special action kinds.
func (h *Handler) syncAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("malformed form body")
		writeStatusError(w, http.StatusBadRequest, "invalid request")
		return
	}

	action, err := actionFromForm(r)
	if err != nil {
		log.Err(err).Msg("unparseable action fields")
		writeStatusError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if _, err := h.services.ActionService.Record(ctx, action); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided),
			errors.Is(err, service.ErrInvalidGoalValue),
			errors.Is(err, service.ErrInvalidStartBalance):
			log.Err(err).Str("action", action.Action).Msg("invalid action data")
			writeStatusError(w, statusFromError(err), err.Error())
			return
		case errors.Is(err, service.ErrAuthenticationFailed):
			log.Warn().Str("key", logger.KeyPrefix(action.LicenseKey)).Msg("action for unknown key rejected")
			writeStatusError(w, http.StatusUnauthorized, "Invalid license")
			return
		case errors.Is(err, store.ErrStrategyNotFound):
			log.Warn().Str("key", logger.KeyPrefix(action.LicenseKey)).Msg("goal update without strategy rejected")
			writeStatusError(w, http.StatusNotFound, "strategy not found")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during action recording")
			writeStatusError(w, http.StatusInternalServerError, "Server error")
			return
		}
	}

	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusSuccess, Message: "action recorded"}, http.StatusOK)
}

// actionFromForm maps the parsed form onto an ActionSync. The three numeric
// fields default to zero when absent but reject garbage; start_balance and
// max_goal stay raw strings so the recorder decides whether they are needed.
func actionFromForm(r *http.Request) (models.ActionSync, error) {
	amount, err := formFloat(r, "amount")
	if err != nil {
		return models.ActionSync{}, err
	}

	liveBalance, err := formFloat(r, "live_balance")
	if err != nil {
		return models.ActionSync{}, err
	}

	profit, err := formFloat(r, "profit")
	if err != nil {
		return models.ActionSync{}, err
	}

	action := models.ActionSync{
		LicenseKey:  r.PostFormValue("key"),
		HWID:        r.PostFormValue("hwid"),
		Action:      r.PostFormValue("action"),
		Amount:      amount,
		LiveBalance: liveBalance,
		Profit:      profit,
	}

	if r.PostForm.Has("start_balance") {
		raw := r.PostFormValue("start_balance")
		action.StartBalance = &raw
	}
	if r.PostForm.Has("max_goal") {
		raw := r.PostFormValue("max_goal")
		action.MaxGoal = &raw
	}

	return action, nil
}

func formFloat(r *http.Request, field string) (float64, error) {
	raw := r.PostFormValue(field)
	if raw == "" {
		return 0, nil
	}

	return strconv.ParseFloat(raw, 64)
}
