// Package record implements the Zapret-Info dump's row type (Record) and a
// streaming reader (Reader) that decodes, tokenizes, classifies, and
// assembles records lazily while reporting per-line errors without
// aborting the stream, per spec.md §3/§4.3.
package record

import (
	"time"

	"github.com/zicsv-go/zicsv/address"
)

// Record is one row of the dump: spec.md §3.
type Record struct {
	// Addresses is the ordered sequence of addresses parsed from columns 0-2
	// (possibly empty).
	Addresses []address.Address

	// Organization is the free-form name of the organization that
	// requested blocking (column 3).
	Organization string

	// DocumentID is the free-form ID of the official document (column 4).
	DocumentID string

	// DocumentDate is the date of the official document (column 5).
	DocumentDate time.Time
}

// Equal reports whether r and other have identical field values, including
// address order. Used by tests and anywhere the full-field-equality
// contract of spec.md §3 is needed.
func (r Record) Equal(other Record) bool {
	if r.Organization != other.Organization ||
		r.DocumentID != other.DocumentID ||
		!r.DocumentDate.Equal(other.DocumentDate) {
		return false
	}

	if len(r.Addresses) != len(other.Addresses) {
		return false
	}

	for i := range r.Addresses {
		if !r.Addresses[i].Equal(other.Addresses[i]) {
			return false
		}
	}

	return true
}
