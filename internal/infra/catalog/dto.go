package catalog

import "catalog-selection/internal/domain/entity"

// fields lists the artwork columns requested from the API.
const fields = "id,title,place_of_origin,artist_display,inscriptions,date_start,date_end"

// artworksResponse is the body of GET /api/v1/artworks.
type artworksResponse struct {
	Pagination paginationDTO `json:"pagination"`
	Data       []artworkDTO  `json:"data"`
}

type paginationDTO struct {
	Total       int64 `json:"total"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
}

// artworkDTO mirrors one artwork. Every display column may be null upstream.
type artworkDTO struct {
	ID            int64   `json:"id"`
	Title         *string `json:"title"`
	PlaceOfOrigin *string `json:"place_of_origin"`
	ArtistDisplay *string `json:"artist_display"`
	Inscriptions  *string `json:"inscriptions"`
	DateStart     *int    `json:"date_start"`
	DateEnd       *int    `json:"date_end"`
}

func (a artworkDTO) toEntity() entity.Record {
	return entity.Record{
		ID:            a.ID,
		Title:         deref(a.Title),
		PlaceOfOrigin: deref(a.PlaceOfOrigin),
		ArtistDisplay: deref(a.ArtistDisplay),
		Inscriptions:  deref(a.Inscriptions),
		DateStart:     deref(a.DateStart),
		DateEnd:       deref(a.DateEnd),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
