// internal/domain/models/domain.go
package models

import "fmt"

// Domain tags the three catalog families that share the
// category / sub-category / item protocol.
type Domain string

const (
	DomainMedicine     Domain = "medicine"
	DomainPrescription Domain = "prescription"
	DomainLabReport    Domain = "labReport"
)

// Domains lists every catalog domain in display order.
var Domains = []Domain{DomainMedicine, DomainPrescription, DomainLabReport}

// ParseDomain accepts the canonical domain tag.
func ParseDomain(s string) (Domain, error) {
	d := Domain(s)
	if !d.Valid() {
		return "", &UnknownDomainError{Value: s}
	}
	return d, nil
}

func (d Domain) Valid() bool {
	switch d {
	case DomainMedicine, DomainPrescription, DomainLabReport:
		return true
	}
	return false
}

// CategoryCollection is the collection holding the domain's categories.
func (d Domain) CategoryCollection() string {
	return string(d) + "Categories"
}

// ItemCollection is the collection holding the domain's items.
func (d Domain) ItemCollection() string {
	switch d {
	case DomainMedicine:
		return "medicines"
	case DomainPrescription:
		return "prescriptions"
	case DomainLabReport:
		return "labReports"
	}
	panic(fmt.Sprintf("models: item collection for unknown domain %q", string(d)))
}

// IDPrefix is the tag used in synthesized category ids.
func (d Domain) IDPrefix() string {
	switch d {
	case DomainMedicine:
		return "med"
	case DomainPrescription:
		return "pre"
	case DomainLabReport:
		return "lab"
	}
	return ""
}

// domainForPrefix is the inverse of IDPrefix.
func domainForPrefix(prefix string) (Domain, bool) {
	for _, d := range Domains {
		if d.IDPrefix() == prefix {
			return d, true
		}
	}
	return "", false
}
