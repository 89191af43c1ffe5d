package repository

import "github.com/ivangsquared/poc-address-finder/internal/domain"

// NMIDirectory is the fixed set of known meter identifiers. Implementations
// are immutable after construction, so no context is threaded through.
type NMIDirectory interface {
	// All returns the records in directory order. Callers must not mutate
	// the returned slice.
	All() []domain.NMIRecord
	Get(identifier string) (domain.NMIRecord, bool)
	Len() int
}

// AddressDirectory maps meter identifiers to canned postal addresses.
type AddressDirectory interface {
	Get(identifier string) (string, bool)
}
