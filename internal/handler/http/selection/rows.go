package selection

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"catalog-selection/internal/handler/http/pathutil"
	"catalog-selection/internal/handler/http/respond"
	selUC "catalog-selection/internal/usecase/selection"
)

// maxBodyBytes bounds every selection request body.
const maxBodyBytes = 64 << 10

var errCheckedRequired = errors.New("checked is required")

type checkedRequest struct {
	Checked *bool `json:"checked"`
}

// decodeBody decodes a JSON request body into v. An empty body or trailing
// garbage is rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid request body: multiple JSON values")
	}
	return nil
}

func decodeChecked(w http.ResponseWriter, r *http.Request) (bool, error) {
	var req checkedRequest
	if err := decodeBody(w, r, &req); err != nil {
		return false, err
	}
	if req.Checked == nil {
		return false, errCheckedRequired
	}
	return *req.Checked, nil
}

type ToggleRowHandler struct{ Ctrl *selUC.Controller }

// ServeHTTP 行の選択切り替え
// @Summary      行の選択切り替え
// @Description  指定 ID の作品を選択または選択解除します。ページを跨いで保持されます。
// @Tags         selection
// @Accept       json
// @Produce      json
// @Param        id    path  int     true  "作品 ID"
// @Param        body  body  object  true  "{\"checked\": true}"
// @Success      200 {object} MutationResponse
// @Failure      400 {string} string "invalid id or request body"
// @Router       /selection/rows/{id} [put]
func (h ToggleRowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	checked, err := decodeChecked(w, r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	outcome := h.Ctrl.ToggleRow(r.Context(), id, checked)
	respond.JSON(w, http.StatusOK, toMutationResponse(outcome, h.Ctrl.Current()))
}
