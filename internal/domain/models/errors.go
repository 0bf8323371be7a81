// internal/domain/models/errors.go
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateCode is reported when a voucher code is already taken.
var ErrDuplicateCode = errors.New("This voucher code already exists. Please use a different code.")

// NotFoundError reports a missing record that an operation depends on.
type NotFoundError struct {
	Kind string // "category", "parent category", "voucher", ...
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.Kind == "" {
		return "record does not exist"
	}
	return strings.ToUpper(e.Kind[:1]) + e.Kind[1:] + " does not exist"
}

// ReferentialIntegrityError is returned by guarded deletes when items
// still reference the record being deleted.
type ReferentialIntegrityError struct {
	Kind       string // "category" or "sub-category"
	Domain     Domain
	Collection string // item collection holding the dependents
}

func (e *ReferentialIntegrityError) Error() string {
	if e.Kind == "sub-category" {
		return fmt.Sprintf("Cannot delete sub-category with existing %s. Please delete the %s first.",
			e.Collection, e.Collection)
	}
	return fmt.Sprintf("Cannot delete category with existing %ss. Please delete the %ss first.",
		e.Domain, e.Domain)
}

// UnknownDomainError reports a domain tag or category id prefix that
// maps to no catalog domain.
type UnknownDomainError struct {
	Value string
}

func (e *UnknownDomainError) Error() string {
	return fmt.Sprintf("unknown catalog domain for %q", e.Value)
}
