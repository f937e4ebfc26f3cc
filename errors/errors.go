// Package errors provides error handling for mochadb.
//
// It re-exports github.com/cockroachdb/errors and defines the sentinel
// errors every mochadb operation reports through. Each error returned by
// the model, database, query and mochaq packages wraps exactly one of the
// sentinels below, so callers classify failures with errors.Is:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // table, column, sector, stack or item is missing
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors. Wrap these with Wrapf to add context while keeping the
// classification.
var (
	// ErrGrammar reports a malformed MHQL command: bad clause order, a
	// missing terminator or a misplaced keyword.
	ErrGrammar = New("grammar error")

	// ErrTypeMismatch reports a value that does not satisfy a column's kind.
	ErrTypeMismatch = New("type mismatch")

	// ErrConstraint reports an AutoInt write or an identifier that breaks
	// the naming rules.
	ErrConstraint = New("constraint violation")

	// ErrUnique reports a duplicate non-empty value in a Unique column.
	ErrUnique = Wrap(ErrConstraint, "unique violation")

	// ErrNotFound reports a missing table, column, sector, stack, item or index.
	ErrNotFound = New("not found")

	// ErrAlreadyExists reports a name collision on create or rename. Name
	// collisions are constraint violations.
	ErrAlreadyExists = Wrap(ErrConstraint, "already exists")

	// ErrNotProcessable reports an unparseable MUST term or a non-numeric
	// operand given to a numeric predicate.
	ErrNotProcessable = New("not processable")

	// ErrConnection reports use of a database that is not connected, or a
	// store that could not be opened.
	ErrConnection = New("connection error")

	// ErrInvalidQuery reports an unknown MochaQ verb or a wrong argument count.
	ErrInvalidQuery = New("invalid query")
)

// IsGrammar checks if an error is or wraps ErrGrammar
func IsGrammar(err error) bool { return err != nil && Is(err, ErrGrammar) }

// IsTypeMismatch checks if an error is or wraps ErrTypeMismatch
func IsTypeMismatch(err error) bool { return err != nil && Is(err, ErrTypeMismatch) }

// IsConstraint checks if an error is or wraps ErrConstraint. Unique
// violations are constraint violations too.
func IsConstraint(err error) bool { return err != nil && Is(err, ErrConstraint) }

// IsUnique checks if an error is or wraps ErrUnique
func IsUnique(err error) bool { return err != nil && Is(err, ErrUnique) }

// IsNotFound checks if an error is or wraps ErrNotFound
func IsNotFound(err error) bool { return err != nil && Is(err, ErrNotFound) }

// IsAlreadyExists checks if an error is or wraps ErrAlreadyExists
func IsAlreadyExists(err error) bool { return err != nil && Is(err, ErrAlreadyExists) }

// IsNotProcessable checks if an error is or wraps ErrNotProcessable
func IsNotProcessable(err error) bool { return err != nil && Is(err, ErrNotProcessable) }

// IsConnection checks if an error is or wraps ErrConnection
func IsConnection(err error) bool { return err != nil && Is(err, ErrConnection) }

// IsInvalidQuery checks if an error is or wraps ErrInvalidQuery
func IsInvalidQuery(err error) bool { return err != nil && Is(err, ErrInvalidQuery) }
