package handler

import (
	"net/http"
)

// List godoc
// @Summary List currencies
// @Description List every registered currency in insertion order
// @Tags Currencies
// @Produce json
// @Success 200 {array} CurrencyResponse
// @Failure 404 {object} errorResponse "no currencies registered"
// @Failure 500 {object} errorResponse
// @Router /currencies [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "List", err, "ups, couldn't list currencies this time", nil)
		return
	}

	res := make([]CurrencyResponse, 0, len(all))
	for _, c := range all {
		res = append(res, toCurrencyResponse(c))
	}
	writeJSON(w, http.StatusOK, res)
}
