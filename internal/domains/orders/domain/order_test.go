package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testCustomer = Customer{Name: "Asha", Email: "asha@example.com", Address: "12 Garden Lane"}

func item(id int64, qty int, price int64) Item {
	return Item{ProductID: id, Name: "plant", Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
}

func TestNewOrder_ShippingThreshold(t *testing.T) {
	cases := []struct {
		name     string
		items    []Item
		shipping int64
		total    int64
	}{
		{"below threshold", []Item{item(1, 9, 50)}, 50, 500},
		{"at threshold", []Item{item(1, 10, 50)}, 0, 500},
		{"above threshold", []Item{item(1, 2, 300)}, 0, 600},
		{"mixed lines", []Item{item(1, 2, 30), item(2, 1, 20)}, 50, 130},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order, err := NewOrder("o-1", testCustomer, tc.items, "", time.Now())
			require.NoError(t, err)
			require.True(t, order.ShippingFee.Equal(decimal.NewFromInt(tc.shipping)), order.ShippingFee.String())
			require.True(t, order.Total.Equal(decimal.NewFromInt(tc.total)), order.Total.String())
			require.True(t, order.Total.Equal(order.Subtotal.Add(order.ShippingFee)))
			require.Equal(t, StatusPending, order.Status)
			require.Equal(t, order.CreatedAt, order.UpdatedAt)
		})
	}
}

func TestNewOrder_Validation(t *testing.T) {
	_, err := NewOrder("o-1", Customer{Name: "Asha"}, []Item{item(1, 1, 10)}, "", time.Now())
	require.ErrorIs(t, err, ErrMissingCustomer)

	_, err = NewOrder("o-1", Customer{Name: "Asha", Email: "nope", Address: "x"}, []Item{item(1, 1, 10)}, "", time.Now())
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewOrder("o-1", testCustomer, nil, "", time.Now())
	require.ErrorIs(t, err, ErrNoItems)

	_, err = NewOrder("o-1", testCustomer, []Item{item(1, 0, 10)}, "", time.Now())
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCheckClientTotal(t *testing.T) {
	order, err := NewOrder("o-1", testCustomer, []Item{item(1, 9, 50)}, "", time.Now())
	require.NoError(t, err)

	require.NoError(t, order.CheckClientTotal(nil))
	good := decimal.NewFromFloat(500.00)
	require.NoError(t, order.CheckClientTotal(&good))
	bad := decimal.NewFromInt(450)
	require.ErrorIs(t, order.CheckClientTotal(&bad), ErrTotalMismatch)
}

func TestMergeLines(t *testing.T) {
	merged, err := MergeLines([]LineRequest{{ProductID: 2, Quantity: 1}, {ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 3}})
	require.NoError(t, err)
	require.Equal(t, []LineRequest{{ProductID: 2, Quantity: 4}, {ProductID: 1, Quantity: 2}}, merged)

	_, err = MergeLines(nil)
	require.ErrorIs(t, err, ErrNoItems)
	_, err = MergeLines([]LineRequest{{ProductID: 0, Quantity: 1}})
	require.ErrorIs(t, err, ErrInvalidProductID)
}

func TestUpdateStatus_PermissiveAllowsResurrection(t *testing.T) {
	order, err := NewOrder("o-1", testCustomer, []Item{item(1, 1, 10)}, "", time.Now())
	require.NoError(t, err)

	later := order.UpdatedAt.Add(time.Minute)
	require.NoError(t, order.UpdateStatus(StatusCancelled, PermissivePolicy{}, "", later))
	require.NoError(t, order.UpdateStatus(StatusPending, PermissivePolicy{}, "", later))
	require.Equal(t, StatusPending, order.Status)
	require.Equal(t, later, order.UpdatedAt)
}

func TestUpdateStatus_InvalidNeverMutates(t *testing.T) {
	order, err := NewOrder("o-1", testCustomer, []Item{item(1, 1, 10)}, "", time.Now())
	require.NoError(t, err)
	before := *order

	err = order.UpdateStatus(Status("lost"), PermissivePolicy{}, "note", time.Now().Add(time.Hour))
	require.ErrorIs(t, err, ErrInvalidStatus)
	require.Equal(t, before.Status, order.Status)
	require.Equal(t, before.UpdatedAt, order.UpdatedAt)
	require.Empty(t, order.Notes)
}

func TestUpdateStatus_StrictTerminal(t *testing.T) {
	order, err := NewOrder("o-1", testCustomer, []Item{item(1, 1, 10)}, "", time.Now())
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, order.UpdateStatus(StatusDelivered, StrictPolicy{}, "left at door", now))
	require.NotNil(t, order.DeliveredAt)
	require.Equal(t, "left at door", order.Notes)

	err = order.UpdateStatus(StatusCancelled, StrictPolicy{}, "", now)
	require.ErrorIs(t, err, ErrTerminalStatus)
	require.Equal(t, StatusDelivered, order.Status)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Shipped ")
	require.NoError(t, err)
	require.Equal(t, StatusShipped, s)

	_, err = ParseStatus("returned")
	require.ErrorIs(t, err, ErrInvalidStatus)
	require.Contains(t, err.Error(), "pending, confirmed, processing, shipped, delivered, cancelled")
}
