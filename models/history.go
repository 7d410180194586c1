package models

import "time"

// Action kinds with side effects. Any other action string is recorded as-is.
const (
	// ActionUpdateGoal overwrites the strategy's max_goal before the record
	// is written; the record's amount then reflects the new goal value.
	ActionUpdateGoal = "UPDATE_GOAL"

	// ActionUpdateStart reinterprets the reported balance as a fresh starting
	// balance: both amount and live_balance are overwritten with it.
	ActionUpdateStart = "UPDATE_START"

	// ActionResetCycle behaves exactly like ActionUpdateStart.
	ActionResetCycle = "RESET_CYCLE"
)

// HistoryRecord is one append-only ledger entry describing a client-reported
// action and its financial deltas. Records are never updated or deleted
// except by cascade when the owning license is removed.
type HistoryRecord struct {
	// ID is the internal unique identifier assigned by the database.
	ID int64 `json:"id"`

	// LicenseKey identifies the owning license.
	LicenseKey string `json:"license_key"`

	// Action is the free-form action kind reported by the client.
	Action string `json:"action"`

	// Amount is the monetary amount attached to the action.
	Amount float64 `json:"amount"`

	// LiveBalance is the client's balance at the time of the action.
	LiveBalance float64 `json:"live_balance"`

	// Profit is the net profit delta reported with the action.
	Profit float64 `json:"profit"`

	// RecordedAt is the server-assigned timestamp; client clocks are never
	// trusted for ordering.
	RecordedAt time.Time `json:"recorded_at"`
}

// TableName returns the name of the database table
// associated with the HistoryRecord model.
func (h HistoryRecord) TableName() string {
	return "betting_history"
}

// ActionStats is one row of the per-license aggregation: all history records
// of one action kind collapsed into count and sums.
type ActionStats struct {
	Action      string  `json:"action"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"total_amount"`
	TotalProfit float64 `json:"total_profit"`
}
