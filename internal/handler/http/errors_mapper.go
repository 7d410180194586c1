package http

import (
	"errors"
	"net/http"

	"licensegate/internal/service"
	"licensegate/internal/store"
	"licensegate/internal/utils"
	"licensegate/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:  http.StatusBadRequest,
	service.ErrInvalidGoalValue:     http.StatusBadRequest,
	service.ErrInvalidStartBalance:  http.StatusBadRequest,
	service.ErrInvalidExpiryFormat:  http.StatusBadRequest,
	service.ErrAuthenticationFailed: http.StatusUnauthorized,
	service.ErrTooManyAttempts:      http.StatusTooManyRequests,

	store.ErrUsernameExists:   http.StatusBadRequest,
	store.ErrLicenseKeyExists: http.StatusBadRequest,
	store.ErrNoLicenseFound:   http.StatusNotFound,
	store.ErrStrategyNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeStatusError writes the uniform {"status":"error","message":...} body
// every failure path answers with.
func writeStatusError(w http.ResponseWriter, statusCode int, message string) {
	utils.WriteJSON(w, models.StatusResponse{Status: models.StatusError, Message: message}, statusCode)
}
