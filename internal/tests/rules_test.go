package tests

import (
	"testing"
	"time"

	"savoria-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  float64
		wantTax   float64
		wantFee   float64
		wantTotal float64
	}{
		{
			name:      "small order pays delivery fee",
			subtotal:  25.98,
			wantTax:   2.08,
			wantFee:   5.99,
			wantTotal: 34.05,
		},
		{
			name:      "exactly at threshold still pays fee",
			subtotal:  50.00,
			wantTax:   4.00,
			wantFee:   5.99,
			wantTotal: 59.99,
		},
		{
			name:      "just above threshold is free delivery",
			subtotal:  50.01,
			wantTax:   4.00,
			wantFee:   0,
			wantTotal: 54.01,
		},
		{
			name:      "large order is free delivery",
			subtotal:  120.50,
			wantTax:   9.64,
			wantFee:   0,
			wantTotal: 130.14,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			tax, fee, total := domain.CalculateTotals(testCase.subtotal)
			assert.Equal(t, testCase.wantTax, tax)
			assert.Equal(t, testCase.wantFee, fee)
			assert.Equal(t, testCase.wantTotal, total)
		})
	}
}

func TestCalculateTotalsIdentity(t *testing.T) {
	for _, subtotal := range []float64{0.01, 9.99, 33.33, 49.99, 50.00, 50.01, 75.25, 199.99} {
		tax, fee, total := domain.CalculateTotals(subtotal)
		assert.Equal(t, domain.Round2(domain.Round2(subtotal)+tax+fee), total,
			"total must equal subtotal + tax + deliveryFee for subtotal %v", subtotal)
	}
}

func TestNewOrderNumberSortable(t *testing.T) {
	earlier := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	later := earlier.Add(time.Second)

	a := domain.NewOrderNumber(earlier)
	b := domain.NewOrderNumber(later)

	assert.True(t, a < b, "order numbers must sort by creation time: %s vs %s", a, b)
	assert.Contains(t, a, "ORD-")
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{"pending", "confirmed", true},
		{"confirmed", "preparing", true},
		{"preparing", "ready", true},
		{"ready", "delivered", true},
		{"pending", "preparing", false},
		{"pending", "delivered", false},
		{"delivered", "pending", false},
		{"ready", "confirmed", false},
		{"pending", "cancelled", true},
		{"ready", "cancelled", true},
		{"delivered", "cancelled", false},
		{"cancelled", "cancelled", false},
		{"cancelled", "confirmed", false},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, domain.CanTransition(testCase.from, testCase.to),
			"%s -> %s", testCase.from, testCase.to)
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, status := range []string{"pending", "confirmed", "preparing", "ready", "delivered", "cancelled"} {
		assert.True(t, domain.ValidOrderStatus(status), status)
	}
	assert.False(t, domain.ValidOrderStatus("shipped"))
	assert.False(t, domain.ValidOrderStatus(""))
}

func TestReservationTimeSlots(t *testing.T) {
	slots := domain.ReservationTimeSlots()
	assert.Len(t, slots, 11)
	assert.Equal(t, "17:00", slots[0])
	assert.Equal(t, "22:00", slots[len(slots)-1])
}

func TestValidators(t *testing.T) {
	assert.True(t, domain.ValidEmail("guest@example.com"))
	assert.False(t, domain.ValidEmail("not-an-email"))
	assert.False(t, domain.ValidEmail("a b@example.com"))

	assert.True(t, domain.ValidReservationTime("19:30"))
	assert.True(t, domain.ValidReservationTime("09:00"))
	assert.False(t, domain.ValidReservationTime("24:00"))
	assert.False(t, domain.ValidReservationTime("7pm"))

	assert.True(t, domain.ValidReservationDate("2025-12-24"))
	assert.False(t, domain.ValidReservationDate("24/12/2025"))
	assert.False(t, domain.ValidReservationDate(""))
}
