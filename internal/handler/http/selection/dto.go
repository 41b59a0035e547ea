// Package selection provides the HTTP handlers for browsing the catalog and
// managing the cross-page record selection.
package selection

import (
	"catalog-selection/internal/common/pagination"
	selUC "catalog-selection/internal/usecase/selection"
)

// RecordDTO is one row of the records table as sent to clients.
type RecordDTO struct {
	ID            int64  `json:"id" example:"27992"`
	Title         string `json:"title" example:"A Sunday on La Grande Jatte"`
	PlaceOfOrigin string `json:"place_of_origin" example:"France"`
	ArtistDisplay string `json:"artist_display" example:"Georges Seurat"`
	Inscriptions  string `json:"inscriptions"`
	DateStart     int    `json:"date_start" example:"1884"`
	DateEnd       int    `json:"date_end" example:"1886"`
	Selected      bool   `json:"selected"`
}

// PageResponse is the paginated records list plus the selection state of the page.
type PageResponse struct {
	pagination.Response[RecordDTO]
	AllSelected   bool `json:"all_selected"`
	SelectedCount int  `json:"selected_count"`
}

// MutationResponse is returned by the row and visible-page selection endpoints.
type MutationResponse struct {
	Performed     bool `json:"performed"`
	AllSelected   bool `json:"all_selected"`
	SelectedCount int  `json:"selected_count"`
}

// FirstResponse is returned by POST /selection/first.
type FirstResponse struct {
	Performed     bool `json:"performed"`
	Marked        int  `json:"marked"`
	SelectedCount int  `json:"selected_count"`
}

// SelectionResponse lists every selected id in ascending order.
type SelectionResponse struct {
	SelectedCount int     `json:"selected_count"`
	IDs           []int64 `json:"ids"`
}

// SelectedResponse reports the membership of a single id.
type SelectedResponse struct {
	ID       int64 `json:"id"`
	Selected bool  `json:"selected"`
}

func toPageResponse(v selUC.View) PageResponse {
	data := make([]RecordDTO, 0, len(v.Rows))
	for _, row := range v.Rows {
		data = append(data, RecordDTO{
			ID:            row.ID,
			Title:         row.Title,
			PlaceOfOrigin: row.PlaceOfOrigin,
			ArtistDisplay: row.ArtistDisplay,
			Inscriptions:  row.Inscriptions,
			DateStart:     row.DateStart,
			DateEnd:       row.DateEnd,
			Selected:      row.Selected,
		})
	}
	return PageResponse{
		Response: pagination.NewResponse(data, pagination.Metadata{
			Total:      v.Total,
			Page:       v.Page,
			Limit:      v.PageSize,
			TotalPages: v.TotalPages,
		}),
		AllSelected:   v.AllSelected,
		SelectedCount: v.SelectedCount,
	}
}

func toMutationResponse(o selUC.Outcome, v selUC.View) MutationResponse {
	return MutationResponse{
		Performed:     o == selUC.OutcomePerformed,
		AllSelected:   v.AllSelected,
		SelectedCount: v.SelectedCount,
	}
}
