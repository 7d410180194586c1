package models

import (
	"encoding/json"
	"time"
)

// DefaultMaxGoal is the goal threshold handed out when a license has no
// stored strategy configuration.
const DefaultMaxGoal float64 = 20

// Strategy is the per-license configuration payload distributed to clients
// after a successful verification. The payload itself is opaque to this
// service: it is stored and returned as raw JSON, schema validation is the
// consuming client's concern.
type Strategy struct {
	// LicenseKey links the strategy one-to-one to its owning license.
	// Cascade-deleted when the license is removed.
	LicenseKey string `json:"license_key"`

	// Data is the opaque strategy payload, passed through unchanged.
	Data json.RawMessage `json:"strategy"`

	// MaxGoal is the numeric goal threshold attached to the payload.
	MaxGoal float64 `json:"max_goal"`

	// CreatedAt is the server-assigned creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Strategy model.
func (s Strategy) TableName() string {
	return "strategies"
}
