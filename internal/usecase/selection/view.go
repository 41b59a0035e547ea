package selection

import (
	"catalog-selection/internal/common/pagination"
	"catalog-selection/internal/domain/entity"
)

// Row is one visible record with its selected flag.
type Row struct {
	entity.Record
	Selected bool
}

// View is what a table surface renders for one page: the rows with their
// checked state, the derived select-all state and the global count.
type View struct {
	Page          int
	PageSize      int
	Total         int64
	TotalPages    int
	Rows          []Row
	AllSelected   bool
	SelectedCount int
}

// IDs returns the row ids in display order.
func (v View) IDs() []int64 {
	ids := make([]int64, 0, len(v.Rows))
	for _, r := range v.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func buildView(state CursorState, store *Store) View {
	ids := entity.IDs(state.Records)
	flags, count := store.lookup(ids)

	rows := make([]Row, len(state.Records))
	for i, rec := range state.Records {
		rows[i] = Row{Record: rec, Selected: flags[i]}
	}

	pageSize := state.PageSize
	if pageSize < 1 {
		pageSize = 1
	}

	return View{
		Page:          state.Page,
		PageSize:      state.PageSize,
		Total:         state.Total,
		TotalPages:    pagination.CalculateTotalPages(state.Total, pageSize),
		Rows:          rows,
		AllSelected:   allTrue(flags),
		SelectedCount: count,
	}
}

// allTrue is the select-all derivation: non-empty and every flag set.
func allTrue(flags []bool) bool {
	if len(flags) == 0 {
		return false
	}
	for _, f := range flags {
		if !f {
			return false
		}
	}
	return true
}
