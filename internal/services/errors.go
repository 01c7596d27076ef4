package services

import (
	"errors"
	"fmt"
)

var (
	ErrBadCreds   = errors.New("Invalid email or password")
	ErrEmailTaken = errors.New("User already exists with this email")

	ErrNoItems       = errors.New("Order must contain at least one item")
	ErrMissingFields = errors.New("Shipping information and total amount are required")
)

// BookMissingError reports the first unresolvable book reference in an
// order; the workflow stops there, so at most one id is ever named.
type BookMissingError struct{ BookID string }

func (e *BookMissingError) Error() string {
	return fmt.Sprintf("Book with ID %s not found", e.BookID)
}

// OutOfStockError names the unavailable book by title.
type OutOfStockError struct{ Title string }

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s is currently out of stock", e.Title)
}
