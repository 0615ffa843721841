package domain

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

const (
	TaxRate               = 0.08
	FlatDeliveryFee       = 5.99
	FreeDeliveryThreshold = 50.00

	// DeliveryEstimate is added to the creation time to produce the
	// estimated delivery timestamp.
	DeliveryEstimate = 45 * time.Minute

	// SlotCapacity is the maximum number of pending or confirmed
	// reservations admitted for one (date, time) slot.
	SlotCapacity = 5
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"

	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	timePattern  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// Round2 rounds a monetary amount to cents. All stored amounts pass
// through here so that total == subtotal + tax + fee holds exactly.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// CalculateTotals derives tax, delivery fee and total from a subtotal.
// The delivery fee is waived only when the subtotal is strictly greater
// than the free-delivery threshold.
func CalculateTotals(subtotal float64) (tax, deliveryFee, total float64) {
	subtotal = Round2(subtotal)
	tax = Round2(subtotal * TaxRate)
	deliveryFee = FlatDeliveryFee
	if subtotal > FreeDeliveryThreshold {
		deliveryFee = 0
	}
	total = Round2(subtotal + tax + deliveryFee)
	return tax, deliveryFee, total
}

// NewOrderNumber derives a sortable order number from the creation time.
func NewOrderNumber(t time.Time) string {
	return "ORD-" + strconv.FormatInt(t.UnixMilli(), 10)
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

var nextOrderStatus = map[string]string{
	OrderStatusPending:   OrderStatusConfirmed,
	OrderStatusConfirmed: OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusReady,
	OrderStatusReady:     OrderStatusDelivered,
}

// CanTransition reports whether an order may move from one status to
// another. The progression is linear; cancellation is allowed from any
// non-terminal state.
func CanTransition(from, to string) bool {
	if to == OrderStatusCancelled {
		return from != OrderStatusDelivered && from != OrderStatusCancelled
	}
	return nextOrderStatus[from] == to
}

// ReservationTimeSlots returns the bookable evening slots, 17:00 through
// 22:00 in 30-minute steps.
func ReservationTimeSlots() []string {
	return []string{
		"17:00", "17:30", "18:00", "18:30", "19:00", "19:30",
		"20:00", "20:30", "21:00", "21:30", "22:00",
	}
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidReservationTime(t string) bool {
	return timePattern.MatchString(t)
}

func ValidReservationDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
