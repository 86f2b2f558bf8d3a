package record

import (
	"encoding/json"
	"fmt"

	"github.com/zicsv-go/zicsv/address"
)

// dateLayout is the YYYY-MM-DD wire format spec.md §6 specifies for
// document_date.
const dateLayout = "2006-01-02"

// jsonRecord is Record's wire shape for the into-json and search JSON
// outputs (spec.md §6).
type jsonRecord struct {
	Addresses    []address.Address `json:"addresses"`
	Organization string            `json:"organization"`
	DocumentID   string            `json:"document_id"`
	DocumentDate string            `json:"document_date"`
}

// MarshalJSON renders r per spec.md §6's record shape.
func (r Record) MarshalJSON() ([]byte, error) {
	addresses := r.Addresses
	if addresses == nil {
		addresses = []address.Address{}
	}

	return json.Marshal(jsonRecord{
		Addresses:    addresses,
		Organization: r.Organization,
		DocumentID:   r.DocumentID,
		DocumentDate: r.DocumentDate.Format(dateLayout),
	})
}

// UnmarshalJSON parses the shape MarshalJSON produces back into a Record.
func (r *Record) UnmarshalJSON(data []byte) error {
	var wire jsonRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("error decoding record: %w", err)
	}

	date, err := parseDocumentDate(wire.DocumentDate)
	if err != nil {
		return err
	}

	r.Addresses = wire.Addresses
	r.Organization = wire.Organization
	r.DocumentID = wire.DocumentID
	r.DocumentDate = date

	return nil
}
