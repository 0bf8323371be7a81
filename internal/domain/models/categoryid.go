// internal/domain/models/categoryid.go
package models

import (
	"strconv"
	"strings"
	"time"
)

// CategoryID identifies a category created through the registry.
// It serializes as "{prefix}_{sequence}" where the sequence starts
// from the creation time in epoch milliseconds.
type CategoryID struct {
	Domain   Domain
	Sequence uint64
}

// NewCategoryID returns the id a category created at t would receive.
func NewCategoryID(d Domain, t time.Time) CategoryID {
	return CategoryID{Domain: d, Sequence: uint64(t.UnixMilli())}
}

func (id CategoryID) String() string {
	return id.Domain.IDPrefix() + "_" + strconv.FormatUint(id.Sequence, 10)
}

// Next returns the id one sequence step later in the same domain.
func (id CategoryID) Next() CategoryID {
	return CategoryID{Domain: id.Domain, Sequence: id.Sequence + 1}
}

// ParseCategoryID parses a stored category id. Ids that do not carry a
// known prefix yield *UnknownDomainError.
func ParseCategoryID(s string) (CategoryID, error) {
	prefix, rest, ok := strings.Cut(s, "_")
	if !ok {
		return CategoryID{}, &UnknownDomainError{Value: s}
	}
	d, ok := domainForPrefix(prefix)
	if !ok {
		return CategoryID{}, &UnknownDomainError{Value: s}
	}
	seq, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return CategoryID{}, &UnknownDomainError{Value: s}
	}
	return CategoryID{Domain: d, Sequence: seq}, nil
}

// DomainOfCategoryID reads only the prefix of a category id. Unlike
// ParseCategoryID it accepts ids whose suffix is not numeric.
func DomainOfCategoryID(s string) (Domain, bool) {
	prefix, _, ok := strings.Cut(s, "_")
	if !ok {
		return "", false
	}
	return domainForPrefix(prefix)
}
