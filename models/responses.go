package models

import "encoding/json"

// Response status values shared by every endpoint.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// UserInfo is the identity block returned to a client after a successful
// verification. It mirrors the fields the client caches locally.
type UserInfo struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	LicenseKey string `json:"license_key"`
}

// ConfigPayload is the configuration block of a successful verification:
// the opaque strategy payload plus its goal threshold.
type ConfigPayload struct {
	Strategy json.RawMessage `json:"strategy"`
	MaxGoal  float64         `json:"max_goal"`
}

// VerifyResponse is the full success body of the verification endpoint.
type VerifyResponse struct {
	Status   string        `json:"status"`
	UserInfo UserInfo      `json:"user_info"`
	Config   ConfigPayload `json:"config"`
}

// StatusResponse is the generic status/message body used by failure paths
// and by endpoints that confirm an action without returning data.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is the body of the unauthenticated health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ListLicensesResponse is the admin listing body. License keys are included:
// the operator issues them, hiding them here would serve nothing.
type ListLicensesResponse struct {
	Status string    `json:"status"`
	Users  []License `json:"users"`
}

// LicenseStatsResponse is the admin per-license aggregation body.
type LicenseStatsResponse struct {
	Status string        `json:"status"`
	Stats  []ActionStats `json:"stats"`
}
