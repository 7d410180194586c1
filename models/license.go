package models

import "time"

// License represents one issued license account. The license key is the sole
// bearer credential: whoever presents it is treated as the account owner,
// subject to the active flag, expiration, and device binding below.
type License struct {
	// ID is the internal unique identifier assigned by the database.
	ID int64 `json:"id"`

	// Username is the unique account login identifier chosen by the operator.
	Username string `json:"username"`

	// FullName is the display name of the license owner.
	// It is non-sensitive and may be shown in operator tooling.
	FullName string `json:"full_name"`

	// LicenseKey is the globally unique bearer credential.
	// Immutable after creation. Treated as a secret towards clients, but
	// intentionally visible to the operator (it IS the credential).
	LicenseKey string `json:"license_key"`

	// HWID is the optional device fingerprint the license is bound to.
	// Empty means unbound: any fingerprint is accepted and none is ever
	// auto-bound — binding is set explicitly by the operator.
	HWID string `json:"hwid,omitempty"`

	// Active controls whether the license may authenticate at all.
	Active bool `json:"active"`

	// CreatedAt is the server-assigned creation timestamp. Immutable.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the optional expiration instant. Nil means the license
	// never expires.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the License model.
func (l License) TableName() string {
	return "licenses"
}

// Expired reports whether the license has an expiration set and it lies
// strictly before now.
func (l License) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
