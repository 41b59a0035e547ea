package pathutil

import (
	"errors"
	"fmt"
	"strconv"

	"catalog-selection/internal/domain/entity"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a record ID taken from a path wildcard.
// Range errors also match entity.ErrInvalidInput.
//
// Example:
//
//	id, err := ParseID(r.PathValue("id"))
//	// "/selection/rows/123" → 123, nil
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	if err := entity.ValidateRecordID(id); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return id, nil
}
