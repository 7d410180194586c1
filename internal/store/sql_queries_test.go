package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListLicensesQuery(t *testing.T) {
	query, args, err := buildListLicensesQuery()

	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Equal(t,
		"SELECT id, username, full_name, license_key, hwid, active, created_at, expires_at FROM licenses ORDER BY id",
		query)
}

func TestBuildStatsQuery(t *testing.T) {
	query, args, err := buildStatsQuery("KEY-ALICE")

	require.NoError(t, err)
	assert.Equal(t, []any{"KEY-ALICE"}, args)
	assert.Equal(t,
		"SELECT action, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount, COALESCE(SUM(profit), 0) AS total_profit "+
			"FROM betting_history WHERE license_key = $1 GROUP BY action ORDER BY action",
		query)
}
