package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func price(v int64) *decimal.Decimal { return ptr(decimal.NewFromInt(v)) }

func stockedCatalog() []*Product {
	return []*Product{
		{ID: 1, Name: "Tulsi", Category: "medicinal", Price: decimal.NewFromInt(150), Stock: 5, Featured: true, Description: "Holy basil"},
		{ID: 2, Name: "Areca Palm", Category: "indoor", Price: decimal.NewFromInt(250), Stock: 2, Description: "Air purifying palm"},
		{ID: 3, Name: "Rose", Category: "flowering", Price: decimal.NewFromInt(90), Stock: 0, Description: "Fragrant red bloom"},
		{ID: 4, Name: "Aloe Vera", Category: "Medicinal", Price: decimal.NewFromInt(150), Stock: 12, Description: "Soothing gel"},
		{ID: 5, Name: "rose", Category: "flowering", Price: decimal.NewFromInt(120), Stock: 7, Description: "Pink variety"},
	}
}

func ids(products []*Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterApply(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{name: "no options sorts by name then id", filter: Filter{}, want: []int64{4, 2, 3, 5, 1}},
		{name: "category ignores case", filter: Filter{Category: ptr("MEDICINAL")}, want: []int64{4, 1}},
		{name: "featured true", filter: Filter{Featured: ptr(true)}, want: []int64{1}},
		{name: "featured false", filter: Filter{Featured: ptr(false)}, want: []int64{4, 2, 3, 5}},
		{name: "search matches description only", filter: Filter{Search: ptr("PURIFYING")}, want: []int64{2}},
		{name: "search matches name", filter: Filter{Search: ptr("ros")}, want: []int64{3, 5}},
		{name: "blank search is ignored", filter: Filter{Search: ptr("  ")}, want: []int64{4, 2, 3, 5, 1}},
		{name: "min price is inclusive", filter: Filter{MinPrice: price(150)}, want: []int64{4, 2, 1}},
		{name: "max price is inclusive", filter: Filter{MaxPrice: price(120)}, want: []int64{3, 5}},
		{name: "price window with equal bounds", filter: Filter{MinPrice: price(150), MaxPrice: price(150)}, want: []int64{4, 1}},
		{name: "in stock", filter: Filter{InStock: ptr(true)}, want: []int64{4, 2, 5, 1}},
		{name: "out of stock", filter: Filter{InStock: ptr(false)}, want: []int64{3}},
		{name: "price ascending breaks ties by name", filter: Filter{Sort: SortPriceAsc}, want: []int64{3, 5, 4, 1, 2}},
		{name: "price descending breaks ties by name", filter: Filter{Sort: SortPriceDesc}, want: []int64{2, 4, 1, 5, 3}},
		{name: "stock descending", filter: Filter{Sort: SortStockDesc}, want: []int64{4, 5, 1, 2, 3}},
		{
			name:   "options combine",
			filter: Filter{Category: ptr("flowering"), InStock: ptr(true), Sort: SortPriceDesc},
			want:   []int64{5},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products := stockedCatalog()
			require.Equal(t, tc.want, ids(tc.filter.Apply(products)))
			require.Equal(t, []int64{1, 2, 3, 4, 5}, ids(products))
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	for raw, want := range map[string]SortOrder{
		"":           SortNameAsc,
		"name":       SortNameAsc,
		"PRICE_ASC":  SortPriceAsc,
		"price_desc": SortPriceDesc,
		"stock":      SortStockDesc,
		"stock_desc": SortStockDesc,
	} {
		got, err := ParseSortOrder(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}
	_, err := ParseSortOrder("random")
	require.ErrorIs(t, err, ErrInvalidSort)
}
