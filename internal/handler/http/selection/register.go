package selection

import (
	"log/slog"
	"net/http"

	"catalog-selection/internal/common/pagination"
	selUC "catalog-selection/internal/usecase/selection"
)

// Register registers the records and selection handlers with the given mux.
func Register(mux *http.ServeMux, ctrl *selUC.Controller, paginationCfg pagination.Config, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	mux.Handle("GET /records", RecordsHandler{
		Ctrl:          ctrl,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})

	mux.Handle("GET /selection", ListSelectedHandler{ctrl})
	mux.Handle("GET /selection/{id}", GetSelectedHandler{ctrl})
	mux.Handle("PUT /selection/rows/{id}", ToggleRowHandler{ctrl})
	mux.Handle("PUT /selection/visible", SelectVisibleHandler{ctrl})
	mux.Handle("PUT /selection/visible/rows", ApplyVisibleRowsHandler{ctrl})
	mux.Handle("POST /selection/first", SelectFirstHandler{ctrl})
}
