package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFixture = `id,name,created_at,total_price,current_total_price,financial_status,referring_site,customer,billing_address
1001,#1001,2021-03-01T09:15:00+08:00,1050.00,1050.00,paid,https://www.google.com/,"{'id': 5001, 'first_name': 'Maria', 'last_name': 'Santos'}","{'name': 'Maria Santos', 'city': 'Quezon City', 'province': '', 'zip': '1100'}"
1002,#1002,2021-03-02T14:20:00+08:00,560.00,,pending,,,
`

func TestReadFixture(t *testing.T) {
	raws, err := readFixture(strings.NewReader(testFixture))
	require.NoError(t, err)
	require.Len(t, raws, 2)

	assert.EqualValues(t, 1001, raws[0].ID)
	require.True(t, raws[0].TotalPrice.Valid)
	assert.Equal(t, "1050", raws[0].TotalPrice.Decimal.String())
	require.NotNil(t, raws[0].ReferringSite)

	// absent values stay null instead of erroring
	assert.False(t, raws[1].CurrentTotalPrice.Valid)
	assert.Nil(t, raws[1].ReferringSite)

	table, err := Normalize(context.Background(), raws)
	require.NoError(t, err)

	require.NotNil(t, table[0].Customer)
	assert.Equal(t, "Maria Santos", table[0].Customer.DisplayName())
	require.NotNil(t, table[0].BillingAddress)
	assert.Equal(t, "1100", table[0].BillingAddress.Zip)
	assert.Nil(t, table[1].Customer)
}

func TestReadFixtureRequiresIDColumn(t *testing.T) {
	_, err := readFixture(strings.NewReader("name,created_at\n#1,2021-03-01T09:15:00+08:00\n"))
	require.Error(t, err)
}
