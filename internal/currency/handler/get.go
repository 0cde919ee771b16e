package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// GetByID godoc
// @Summary Get currency by ID
// @Tags Currencies
// @Produce json
// @Param id path int true "Currency ID"
// @Success 200 {object} CurrencyResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /currencies/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid currency id")
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "GetByID", err, "ups, couldn't get currency by id this time", logrus.Fields{"id": id})
		return
	}
	writeJSON(w, http.StatusOK, toCurrencyResponse(c))
}

// GetByName godoc
// @Summary Get currency by name
// @Description The name is normalized before the lookup, so "euro" finds "EURO"
// @Tags Currencies
// @Produce json
// @Param name path string true "Currency name"
// @Success 200 {object} CurrencyResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /currencies/by-name/{name} [get]
func (h *Handler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	c, err := h.service.GetByName(r.Context(), name)
	if err != nil {
		h.writeServiceError(w, r, "GetByName", err, "ups, couldn't get currency by name this time",
			logrus.Fields{"currency": name})
		return
	}
	writeJSON(w, http.StatusOK, toCurrencyResponse(c))
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
