package selection

import (
	"encoding/json"
	"math"
	"math/big"
	"net/http"

	"catalog-selection/internal/handler/http/respond"
	selUC "catalog-selection/internal/usecase/selection"
)

type SelectFirstHandler struct{ Ctrl *selUC.Controller }

// ServeHTTP 先頭 N 件を選択
// @Summary      先頭 N 件を選択
// @Description  カタログ先頭ページ (最大 100 件) を取得し、未選択の作品を先頭から最大 N 件選択します。N が正の整数でない場合やカタログ取得に失敗した場合は何もしません。
// @Tags         selection
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "{\"count\": 20}"
// @Success      200 {object} FirstResponse
// @Failure      400 {string} string "invalid request body"
// @Router       /selection/first [post]
func (h SelectFirstHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count json.RawMessage `json:"count"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	n, ok := parseCount(req.Count)
	if !ok {
		respond.JSON(w, http.StatusOK, FirstResponse{SelectedCount: h.Ctrl.SelectedCount()})
		return
	}

	// fetch failures are logged by the controller and reported as not performed
	res, _ := h.Ctrl.SelectFirstN(r.Context(), n)
	respond.JSON(w, http.StatusOK, FirstResponse{
		Performed:     res.Outcome == selUC.OutcomePerformed,
		Marked:        res.Marked,
		SelectedCount: h.Ctrl.SelectedCount(),
	})
}

// countPrec is wide enough that any count a client could mean keeps its
// fractional digits.
const countPrec = 512

// parseCount accepts a JSON number, or a string holding one, whose value is
// an integer: 20, 5.0 and 1e2 all count. Values past the int range saturate;
// fractions are not a count. Sign is left to the controller.
func parseCount(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, false
	}
	f, _, err := big.ParseFloat(num.String(), 10, countPrec, big.ToZero)
	if err != nil || f.IsInf() || !f.IsInt() {
		return 0, false
	}
	switch {
	case f.Cmp(big.NewFloat(math.MaxInt)) >= 0:
		return math.MaxInt, true
	case f.Cmp(big.NewFloat(math.MinInt)) <= 0:
		return math.MinInt, true
	}
	n, _ := f.Int64()
	return int(n), true
}
