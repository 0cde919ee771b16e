package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Delete godoc
// @Summary Delete currency
// @Tags Currencies
// @Param id path int true "Currency ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /currencies/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid currency id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, "Delete", err, "ups, couldn't delete currency this time", logrus.Fields{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
