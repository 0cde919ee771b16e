package handler

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CurrencyRequest struct {
	Name string          `json:"name" validate:"required,notblank" example:"Euro"`
	Rate decimal.Decimal `json:"rate" validate:"decimal_range,positive_decimal" swaggertype:"number" example:"3.96"`
}

// Register godoc
// @Summary Register currency
// @Description Register a currency with its rate against the base currency. The name is normalized (trimmed, upper-cased, diacritics removed).
// @Tags Currencies
// @Accept json
// @Produce json
// @Param request body CurrencyRequest true "Currency"
// @Success 201 {object} CurrencyResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /currencies [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CurrencyRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	created, err := h.service.Register(r.Context(), req.Name, req.Rate)
	if err != nil {
		h.writeServiceError(w, r, "Register", err, "ups, couldn't register currency this time",
			logrus.Fields{"currency": req.Name})
		return
	}

	w.Header().Set("Location", "/api/v1/currencies/"+formatID(created.ID))
	writeJSON(w, http.StatusCreated, toCurrencyResponse(created))
}
