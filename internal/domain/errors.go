package domain

import (
	"errors"
	"fmt"
)

// Business-rule violations surfaced by the storage layer. They abort the
// surrounding transaction and name the offending entity.
var (
	ErrSlotFullyBooked = errors.New("this time slot is fully booked, please choose another time")
	ErrOrderNotFound   = errors.New("order not found")

	ErrReservationNotFound = errors.New("reservation not found")
	// ErrReservationNotCancellable covers both a missing id and a
	// reservation past the cancellable states; the single guarded UPDATE
	// cannot tell them apart.
	ErrReservationNotCancellable = errors.New("reservation not found or cannot be cancelled")
)

type MenuItemNotFoundError struct {
	ID int
}

func (e *MenuItemNotFoundError) Error() string {
	return fmt.Sprintf("menu item %d not found", e.ID)
}

type MenuItemUnavailableError struct {
	Name string
}

func (e *MenuItemUnavailableError) Error() string {
	return fmt.Sprintf("menu item %s is not available", e.Name)
}

type StatusTransitionError struct {
	From string
	To   string
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}
