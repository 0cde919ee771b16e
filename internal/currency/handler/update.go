package handler

import (
	"net/http"

	"currencyconv/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PatchCurrencyRequest struct {
	Name *string          `json:"name" example:"Sol"`
	Rate *decimal.Decimal `json:"rate" validate:"omitempty,decimal_range,positive_decimal" swaggertype:"number" example:"1.05"`
}

func (p PatchCurrencyRequest) toPatch() domain.CurrencyPatch {
	return domain.CurrencyPatch{Name: p.Name, Rate: p.Rate}
}

// Replace godoc
// @Summary Replace currency by name
// @Description Overwrite both name and rate of the currency registered under the given name
// @Tags Currencies
// @Accept json
// @Produce json
// @Param name path string true "Current currency name"
// @Param request body CurrencyRequest true "New values"
// @Success 200 {object} CurrencyResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /currencies/{name} [put]
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req CurrencyRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	updated, err := h.service.Replace(r.Context(), name, req.Name, req.Rate)
	if err != nil {
		h.writeServiceError(w, r, "Replace", err, "ups, couldn't update currency this time",
			logrus.Fields{"currency": name})
		return
	}
	writeJSON(w, http.StatusOK, toCurrencyResponse(updated))
}

// Patch godoc
// @Summary Patch currency by name
// @Description Change only the fields present in the body. A blank name leaves the name unchanged.
// @Tags Currencies
// @Accept json
// @Produce json
// @Param name path string true "Current currency name"
// @Param request body PatchCurrencyRequest true "Fields to change"
// @Success 200 {object} CurrencyResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /currencies/{name} [patch]
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req PatchCurrencyRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	updated, err := h.service.Patch(r.Context(), name, req.toPatch())
	if err != nil {
		h.writeServiceError(w, r, "Patch", err, "ups, couldn't update currency this time",
			logrus.Fields{"currency": name})
		return
	}
	writeJSON(w, http.StatusOK, toCurrencyResponse(updated))
}

// ReplaceByID godoc
// @Summary Replace currency by ID
// @Tags Currencies
// @Accept json
// @Produce json
// @Param id path int true "Currency ID"
// @Param request body CurrencyRequest true "New values"
// @Success 200 {object} CurrencyResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /currencies/by-id/{id} [put]
func (h *Handler) ReplaceByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid currency id")
		return
	}
	var req CurrencyRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	updated, err := h.service.ReplaceByID(r.Context(), id, req.Name, req.Rate)
	if err != nil {
		h.writeServiceError(w, r, "ReplaceByID", err, "ups, couldn't update currency this time", logrus.Fields{"id": id})
		return
	}
	writeJSON(w, http.StatusOK, toCurrencyResponse(updated))
}

// PatchByID godoc
// @Summary Patch currency by ID
// @Tags Currencies
// @Accept json
// @Produce json
// @Param id path int true "Currency ID"
// @Param request body PatchCurrencyRequest true "Fields to change"
// @Success 200 {object} CurrencyResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /currencies/by-id/{id} [patch]
func (h *Handler) PatchByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid currency id")
		return
	}
	var req PatchCurrencyRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	updated, err := h.service.PatchByID(r.Context(), id, req.toPatch())
	if err != nil {
		h.writeServiceError(w, r, "PatchByID", err, "ups, couldn't update currency this time", logrus.Fields{"id": id})
		return
	}
	writeJSON(w, http.StatusOK, toCurrencyResponse(updated))
}
