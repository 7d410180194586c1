package http

import (
	"crypto/hmac"
	"net/http"

	"licensegate/internal/logger"
)

const adminKeyHeader = "X-Admin-Key"

// withAdminAuth gates the /admin route group behind the static operator
// secret carried in the X-Admin-Key header. The comparison is constant-time
// so the secret cannot be probed byte by byte; missing and wrong keys are
// indistinguishable to the caller.
func (h *Handler) withAdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		presented := r.Header.Get(adminKeyHeader)

		if !hmac.Equal([]byte(presented), []byte(h.adminKey)) {
			log.Warn().Str("uri", r.RequestURI).Msg("admin request with invalid key rejected")
			writeStatusError(w, http.StatusUnauthorized, "Unauthorized. Invalid or missing admin key.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
