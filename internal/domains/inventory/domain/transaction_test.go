package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecord_SaleSubtractsAndRestockAdds(t *testing.T) {
	now := time.Now()

	sale, err := Record(Movement{ProductID: 1, Type: TypeSale, Quantity: 3}, 5, now)
	require.NoError(t, err)
	require.Equal(t, 5, sale.PreviousStock)
	require.Equal(t, 2, sale.NewStock)

	restock, err := Record(Movement{ProductID: 1, Type: TypeRestock, Quantity: 4}, 2, now)
	require.NoError(t, err)
	require.Equal(t, 6, restock.NewStock)

	adjust, err := Record(Movement{ProductID: 1, Type: TypeAdjustment, Quantity: -2}, 6, now)
	require.NoError(t, err)
	require.Equal(t, 4, adjust.NewStock)
}

func TestRecord_RejectsNegativeResult(t *testing.T) {
	_, err := Record(Movement{ProductID: 1, Type: TypeSale, Quantity: 6}, 5, time.Now())
	require.ErrorIs(t, err, ErrInsufficientStock)

	_, err = Record(Movement{ProductID: 1, Type: TypeAdjustment, Quantity: -1}, 0, time.Now())
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestMovementValidate(t *testing.T) {
	cases := []struct {
		name string
		m    Movement
		err  error
	}{
		{"missing product", Movement{Type: TypeSale, Quantity: 1}, ErrInvalidProductID},
		{"zero sale", Movement{ProductID: 1, Type: TypeSale}, ErrInvalidQuantity},
		{"negative restock", Movement{ProductID: 1, Type: TypeRestock, Quantity: -1}, ErrInvalidQuantity},
		{"zero adjustment", Movement{ProductID: 1, Type: TypeAdjustment}, ErrInvalidQuantity},
		{"unknown type", Movement{ProductID: 1, Type: "gift", Quantity: 1}, ErrInvalidType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.m.Validate(), tc.err)
		})
	}
}
