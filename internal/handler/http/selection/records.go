package selection

import (
	"log/slog"
	"net/http"
	"time"

	"catalog-selection/internal/common/pagination"
	"catalog-selection/internal/handler/http/requestid"
	"catalog-selection/internal/handler/http/respond"
	"catalog-selection/internal/observability/logging"
	selUC "catalog-selection/internal/usecase/selection"
)

type RecordsHandler struct {
	Ctrl          *selUC.Controller
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 作品一覧取得
// @Summary      作品一覧取得（ページ移動）
// @Description  指定ページへ移動し、そのページの作品と選択状態を返します。カタログ取得に失敗した場合は空ページを返します。
// @Tags         records
// @Produce      json
// @Param        page  query  int  false  "ページ番号 (1-based)" default(1) minimum(1)
// @Success      200 {object} PageResponse "ページネーション付き作品一覧"
// @Failure      400 {string} string "Invalid query parameters"
// @Router       /records [get]
func (h RecordsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError(pagination.ErrorValidation)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	pagination.LogRequest(logger, reqID, params)

	view, err := h.Ctrl.Navigate(ctx, params.Page)
	if err != nil {
		pagination.LogError(logger, reqID, params, err, "validation")
		pagination.RecordError(pagination.ErrorValidation)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("navigate", duration.Seconds())
	pagination.UpdateTotalCount(view.Total)
	pagination.LogResponse(logger, reqID, pagination.Params{Page: view.Page, Limit: view.PageSize},
		len(view.Rows), duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, toPageResponse(view))
}
