package server

import "errors"

var (
	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")
)

// errMissingQuery is the exact validation message of the search endpoint's
// external contract.
const errMissingQuery = "Please provide at least a 'name' or a 'question'."
