package selection

import (
	"errors"
	"net/http"

	"catalog-selection/internal/handler/http/respond"
	selUC "catalog-selection/internal/usecase/selection"
)

type SelectVisibleHandler struct{ Ctrl *selUC.Controller }

// ServeHTTP 表示中ページの一括選択
// @Summary      表示中ページの一括選択
// @Description  現在表示しているページの全作品を選択または選択解除します。ページが空の場合は何もしません。
// @Tags         selection
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "{\"checked\": true}"
// @Success      200 {object} MutationResponse
// @Failure      400 {string} string "invalid request body"
// @Router       /selection/visible [put]
func (h SelectVisibleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checked, err := decodeChecked(w, r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	outcome := h.Ctrl.SelectAllVisible(r.Context(), checked, h.Ctrl.VisibleIDs())
	respond.JSON(w, http.StatusOK, toMutationResponse(outcome, h.Ctrl.Current()))
}

type ApplyVisibleRowsHandler struct{ Ctrl *selUC.Controller }

// ServeHTTP 表示中ページの選択状態を反映
// @Summary      表示中ページの選択状態を反映
// @Description  表示中の各作品を、送信された ID 集合に含まれるかどうかで選択状態に設定します。
// @Tags         selection
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "{\"ids\": [1, 2]}"
// @Success      200 {object} MutationResponse
// @Failure      400 {string} string "invalid request body"
// @Router       /selection/visible/rows [put]
func (h ApplyVisibleRowsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.IDs == nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("ids is required"))
		return
	}

	outcome := h.Ctrl.ApplyVisibleSelection(r.Context(), req.IDs)
	respond.JSON(w, http.StatusOK, toMutationResponse(outcome, h.Ctrl.Current()))
}
