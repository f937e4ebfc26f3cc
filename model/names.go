package model

import (
	"strings"

	"github.com/vegasq/mochadb/errors"
)

// reservedNames are the top-level containers of the document tree.
var reservedNames = map[string]struct{}{
	"Root":       {},
	"Sectors":    {},
	"Tables":     {},
	"Stacks":     {},
	"FileSystem": {},
}

// bannedChars may not appear in identifiers; they delimit MochaQ arguments
// and stored attributes.
const bannedChars = ";:"

// IsReserved reports whether name is one of the reserved container names.
func IsReserved(name string) bool {
	_, ok := reservedNames[name]
	return ok
}

// ValidateName checks a table, column, sector, stack or stack item name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(errors.ErrConstraint, "name cannot be empty")
	}
	if strings.ContainsAny(name, bannedChars) {
		return errors.Wrapf(errors.ErrConstraint, "name %q contains a banned character (%s)", name, bannedChars)
	}
	if strings.ContainsAny(name, "/ \t\r\n") {
		return errors.Wrapf(errors.ErrConstraint, "name %q contains whitespace or a path separator", name)
	}
	if IsReserved(name) {
		return errors.Wrapf(errors.ErrConstraint, "name %q is reserved", name)
	}
	return nil
}
