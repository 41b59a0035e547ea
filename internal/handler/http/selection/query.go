package selection

import (
	"net/http"

	"catalog-selection/internal/handler/http/pathutil"
	"catalog-selection/internal/handler/http/respond"
	selUC "catalog-selection/internal/usecase/selection"
)

type ListSelectedHandler struct{ Ctrl *selUC.Controller }

// ServeHTTP 選択中 ID 一覧
// @Summary      選択中 ID 一覧
// @Tags         selection
// @Produce      json
// @Success      200 {object} SelectionResponse
// @Router       /selection [get]
func (h ListSelectedHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	ids := h.Ctrl.SelectedIDs()
	if ids == nil {
		ids = []int64{}
	}
	respond.JSON(w, http.StatusOK, SelectionResponse{SelectedCount: len(ids), IDs: ids})
}

type GetSelectedHandler struct{ Ctrl *selUC.Controller }

// ServeHTTP 選択状態取得
// @Summary      選択状態取得
// @Tags         selection
// @Produce      json
// @Param        id  path  int  true  "作品 ID"
// @Success      200 {object} SelectedResponse
// @Failure      400 {string} string "invalid id"
// @Router       /selection/{id} [get]
func (h GetSelectedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	respond.JSON(w, http.StatusOK, SelectedResponse{ID: id, Selected: h.Ctrl.IsSelected(id)})
}
