package handler

import (
	"net/http"
)

// Hello godoc
// @Summary Greeting
// @Tags Misc
// @Produce plain
// @Success 200 {string} string
// @Router /hello [get]
func (h *Handler) Hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello from currency converter"))
}
