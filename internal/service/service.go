// Package service holds the business logic between the HTTP handlers and the
// graph repositories. Services accept store interfaces so tests can substitute
// in-memory fakes for the Neo4j-backed repositories.
package service

import (
	"errors"
	"time"
)

// Validation errors surfaced to handlers as bad requests.
var (
	ErrInvalidCrimeType    = errors.New("unknown crime type")
	ErrInvalidLocationType = errors.New("unknown location type")
	ErrInvalidStatus       = errors.New("unknown citizen status")
	ErrInvalidBirthYear    = errors.New("birth year out of range")
	ErrInvalidDepth        = errors.New("network depth must be between 1 and 3")
	ErrFutureDate          = errors.New("crime date cannot be in the future")
)

const dateLayout = "2006-01-02"

// sinceDate returns the ISO date marking the start of a trailing window of
// the given number of days, inclusive of today.
func sinceDate(days int) string {
	return time.Now().AddDate(0, 0, -days).Format(dateLayout)
}
