package models

// ActionSync carries one reported client action through the transport layer
// into the action recorder.
//
// StartBalance and MaxGoal arrive as raw strings: the recorder — not the
// transport — decides whether they are required for the given action kind and
// whether they parse as numbers, so malformed values can be rejected without
// writing anything.
type ActionSync struct {
	// LicenseKey is the bearer credential of the reporting client.
	LicenseKey string `json:"key"`

	// HWID is the reporting device's fingerprint. Logged for forensics;
	// the recorder does not enforce the binding (see service docs).
	HWID string `json:"hwid"`

	// Action is the free-form action kind.
	Action string `json:"action"`

	Amount      float64 `json:"amount"`
	LiveBalance float64 `json:"live_balance"`
	Profit      float64 `json:"profit"`

	// StartBalance is the optional raw start-balance value accompanying
	// UPDATE_START / RESET_CYCLE actions. Nil when absent.
	StartBalance *string `json:"start_balance,omitempty"`

	// MaxGoal is the optional raw goal value accompanying UPDATE_GOAL
	// actions. Nil when absent.
	MaxGoal *string `json:"max_goal,omitempty"`
}

// AddLicenseRequest is the admin payload for creating a license account.
type AddLicenseRequest struct {
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	LicenseKey string `json:"license_key"`

	// HWID optionally binds the new license to one device fingerprint.
	HWID string `json:"hwid,omitempty"`

	// ExpiresAt is the optional expiration timestamp in RFC 3339 format.
	// Empty means the license never expires.
	ExpiresAt string `json:"expires_at,omitempty"`
}

// SetStrategyRequest is the admin payload for replacing a license's strategy
// configuration. The replace is idempotent: payload and max_goal are
// overwritten wholesale, never merged.
type SetStrategyRequest struct {
	LicenseKey string `json:"license_key"`

	// Strategy is the opaque payload stored and returned verbatim.
	Strategy map[string]any `json:"strategy"`

	// MaxGoal defaults to DefaultMaxGoal when omitted or zero.
	MaxGoal float64 `json:"max_goal,omitempty"`
}
