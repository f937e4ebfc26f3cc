package query

import (
	"github.com/vegasq/mochadb/errors"
)

// Validation limits that keep a single query from exhausting memory
const (
	// MaxQueryLength is the maximum allowed query string length (64KB)
	MaxQueryLength = 64 * 1024

	// MaxClauses is the maximum number of clauses in a query
	MaxClauses = 16

	// MaxTerms is the maximum number of AND-joined MUST terms
	MaxTerms = 256

	// MaxHeadItems is the maximum number of USE/SELECT items
	MaxHeadItems = 1024
)

var (
	// ErrQueryTooLong is returned when query exceeds MaxQueryLength
	ErrQueryTooLong = errors.Wrap(errors.ErrGrammar, "query too long")

	// ErrTooManyClauses is returned when a query has more than MaxClauses clauses
	ErrTooManyClauses = errors.Wrap(errors.ErrGrammar, "too many clauses")

	// ErrTooManyTerms is returned when a MUST clause has more than MaxTerms terms
	ErrTooManyTerms = errors.Wrap(errors.ErrGrammar, "too many MUST terms")

	// ErrTooManyItems is returned when a head clause lists more than MaxHeadItems items
	ErrTooManyItems = errors.Wrap(errors.ErrGrammar, "too many items")
)

// ValidateQuery performs size validation on query input
func ValidateQuery(query string) error {
	if len(query) > MaxQueryLength {
		return errors.Wrapf(ErrQueryTooLong, "%d bytes (max %d)", len(query), MaxQueryLength)
	}
	return nil
}
