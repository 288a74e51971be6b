package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/buyer-intake/internal/entity"
)

func sampleBuyers() []entity.Buyer {
	return []entity.Buyer{
		{ID: "1", FullName: "Priya Sharma", Email: "priya@example.com", Phone: "9876543210", City: "Mohali", PropertyType: "Apartment", Status: "New", Timeline: "0-3m"},
		{ID: "2", FullName: "Rahul Gupta", Email: "rahul@example.com", Phone: "7654321098", City: "Chandigarh", PropertyType: "Plot", Status: "Qualified", Timeline: ">6m"},
		{ID: "3", FullName: "Amit Verma", Email: "amit@example.com", Phone: "9123456780", City: "Mohali", PropertyType: "Villa", Status: "New", Timeline: "3-6m"},
	}
}

func TestFilterBuyersNoConstraintsReturnsAll(t *testing.T) {
	buyers := sampleBuyers()

	out := FilterBuyers(buyers, BuyerFilter{})

	assert.Equal(t, buyers, out)
}

func TestFilterBuyersCityFacetPreservesOrder(t *testing.T) {
	out := FilterBuyers(sampleBuyers(), BuyerFilter{City: "Mohali"})

	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "3", out[1].ID)
}

func TestFilterBuyersSearchIsCaseInsensitive(t *testing.T) {
	for _, q := range []string{"priya", "PRIYA", "Sharma"} {
		out := FilterBuyers(sampleBuyers(), BuyerFilter{Search: q})
		require.Len(t, out, 1, q)
		assert.Equal(t, "Priya Sharma", out[0].FullName, q)
	}
}

func TestFilterBuyersSearchMatchesEmailAndPhone(t *testing.T) {
	out := FilterBuyers(sampleBuyers(), BuyerFilter{Search: "rahul@"})
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)

	out = FilterBuyers(sampleBuyers(), BuyerFilter{Search: "912345"})
	require.Len(t, out, 1)
	assert.Equal(t, "3", out[0].ID)
}

func TestFilterBuyersFacetsComposeWithAND(t *testing.T) {
	out := FilterBuyers(sampleBuyers(), BuyerFilter{City: "Mohali", Status: "New", PropertyType: "Villa"})

	require.Len(t, out, 1)
	assert.Equal(t, "3", out[0].ID)
}

func TestFilterBuyersFacetMatchIsExact(t *testing.T) {
	out := FilterBuyers(sampleBuyers(), BuyerFilter{City: "mohali"})

	assert.Empty(t, out)
}

func TestFilterBuyersNoMatch(t *testing.T) {
	out := FilterBuyers(sampleBuyers(), BuyerFilter{Search: "nobody"})

	assert.Empty(t, out)
}
