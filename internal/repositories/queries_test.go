package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certificate-system/pkg/types"
)

func TestCertificateListQueries(t *testing.T) {
	count, page := certificateListQueries(types.Filter{
		Search:         "leeds",
		Filter:         map[string]interface{}{"kind": "solar_pv"},
		Limit:          10,
		WithPagination: true,
	})

	countSQL, countArgs, err := count.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(c.id) FROM certificates AS c WHERE c.deleted_at IS NULL AND "+
		"(c.reference ILIKE $1 OR c.client_name ILIKE $2 OR c.site_address ILIKE $3 OR c.site_postcode ILIKE $4) "+
		"AND c.kind = $5", countSQL)
	assert.Len(t, countArgs, 5)
	assert.Equal(t, "%leeds%", countArgs[0])

	pageSQL, _, err := page.ToSql()
	require.NoError(t, err)
	assert.Contains(t, pageSQL, "ORDER BY c.created_at DESC LIMIT 10")
	assert.NotContains(t, countSQL, "LIMIT")
}

func TestCertificateListQueries_ExplicitSort(t *testing.T) {
	_, page := certificateListQueries(types.Filter{Sort: map[string]string{"client_name": "asc"}})

	pageSQL, args, err := page.ToSql()
	require.NoError(t, err)
	assert.Contains(t, pageSQL, "ORDER BY c.client_name ASC")
	assert.NotContains(t, pageSQL, "created_at DESC")
	assert.Empty(t, args)
}

func TestRecentClientsQuery(t *testing.T) {
	query, args, err := recentClientsQuery("fire_alarm", 20).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT client_name, client_email, client_phone, site_address, site_postcode, MAX(created_at) AS last_used_at "+
		"FROM certificates WHERE deleted_at IS NULL AND kind = $1 "+
		"GROUP BY client_name, client_email, client_phone, site_address, site_postcode "+
		"ORDER BY last_used_at DESC LIMIT 20", query)
	assert.Equal(t, []interface{}{"fire_alarm"}, args)
}
