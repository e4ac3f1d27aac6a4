package service

import "errors"

// Common service errors
var (
	// ErrCustomerNotFound is returned when no record matches the requested keys
	ErrCustomerNotFound = errors.New("customer not found")
)
