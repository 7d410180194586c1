package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	createLicense = `INSERT INTO licenses (username, full_name, license_key, hwid, expires_at)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, username, full_name, license_key, hwid, active, created_at, expires_at;`

	findLicenseByKey = `SELECT id, username, full_name, license_key, hwid, active, created_at, expires_at
    FROM licenses
    WHERE license_key = $1;`

	deleteLicenseByKey = `DELETE FROM licenses
    WHERE license_key = $1;`

	findStrategyByKey = `SELECT license_key, strategy_data, max_goal, created_at
    FROM strategies
    WHERE license_key = $1;`

	upsertStrategy = `INSERT INTO strategies (license_key, strategy_data, max_goal)
    VALUES ($1, $2, $3)
    ON CONFLICT (license_key) DO UPDATE
    SET strategy_data = EXCLUDED.strategy_data, max_goal = EXCLUDED.max_goal;`

	updateStrategyMaxGoal = `UPDATE strategies
    SET max_goal = $1
    WHERE license_key = $2;`

	appendHistoryRecord = `INSERT INTO betting_history (license_key, action, amount, live_balance, profit)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, recorded_at;`
)

// psql is the shared squirrel statement builder configured for PostgreSQL
// ($N) placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListLicensesQuery builds the full-listing query for license accounts.
func buildListLicensesQuery() (string, []any, error) {
	return psql.
		Select("id", "username", "full_name", "license_key", "hwid", "active", "created_at", "expires_at").
		From("licenses").
		OrderBy("id").
		ToSql()
}

// buildStatsQuery builds the per-license aggregation query: history records
// grouped by action kind with count and sums.
func buildStatsQuery(licenseKey string) (string, []any, error) {
	return psql.
		Select(
			"action",
			"COUNT(*) AS count",
			"COALESCE(SUM(amount), 0) AS total_amount",
			"COALESCE(SUM(profit), 0) AS total_profit",
		).
		From("betting_history").
		Where(sq.Eq{"license_key": licenseKey}).
		GroupBy("action").
		OrderBy("action").
		ToSql()
}
