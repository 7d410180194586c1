package http

import (
	"net/http"
	"time"

	"licensegate/internal/utils"
	"licensegate/models"
)

// health handles GET /status. It is unauthenticated and cheap on purpose:
// load balancers and uptime probes poll it.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	response := models.HealthResponse{
		Status:    "online",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}
