// Package selection implements the cross-page selection manager: a persistent
// set of selected record ids that outlives the single catalog page resident
// in memory, plus the controller operations that read and write it.
package selection

import (
	"errors"
	"fmt"

	"catalog-selection/internal/domain/entity"
)

// Sentinel errors for selection operations.
var (
	// ErrInvalidPage indicates a page number below 1.
	// It matches entity.ErrInvalidInput under errors.Is.
	ErrInvalidPage = fmt.Errorf("%w: page must be >= 1", entity.ErrInvalidInput)

	// ErrPersist indicates that the in-memory selection changed but the
	// write-through to the blob store failed. The in-memory state is kept.
	ErrPersist = errors.New("persist selection")

	// ErrCorruptBlob indicates that a persisted selection blob could not be decoded.
	ErrCorruptBlob = errors.New("corrupt selection blob")
)
