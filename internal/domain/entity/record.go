// Package entity defines the core domain entities and validation logic for the application.
// It contains the catalog Record and the domain-specific errors shared by the
// selection use cases and their adapters.
package entity

// Record is one catalog entry as delivered by a record provider.
// ID is the only field the selection core interprets; it is unique per record
// and stable across pages and process restarts. The remaining fields are
// display columns owned by the presentation layer.
type Record struct {
	ID            int64
	Title         string
	PlaceOfOrigin string
	ArtistDisplay string
	Inscriptions  string
	DateStart     int
	DateEnd       int
}

// IDs returns the identifiers of records in the given order.
func IDs(records []Record) []int64 {
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}
