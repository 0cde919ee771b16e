package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"currencyconv/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const defaultMaxBodyBytes = 1024

type CurrencyService interface {
	Register(ctx context.Context, name string, rate decimal.Decimal) (domain.Currency, error)
	List(ctx context.Context) ([]domain.Currency, error)
	GetByID(ctx context.Context, id int64) (domain.Currency, error)
	GetByName(ctx context.Context, name string) (domain.Currency, error)
	Replace(ctx context.Context, name string, newName string, newRate decimal.Decimal) (domain.Currency, error)
	ReplaceByID(ctx context.Context, id int64, newName string, newRate decimal.Decimal) (domain.Currency, error)
	Patch(ctx context.Context, name string, patch domain.CurrencyPatch) (domain.Currency, error)
	PatchByID(ctx context.Context, id int64, patch domain.CurrencyPatch) (domain.Currency, error)
	Delete(ctx context.Context, id int64) error
}

type Converter interface {
	Convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error)
}

type Handler struct {
	service      CurrencyService
	converter    Converter
	validator    *requestValidator
	log          logrus.FieldLogger
	maxBodyBytes int64
}

func NewCurrencyHandler(service CurrencyService, converter Converter, logger logrus.FieldLogger, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{
		service:      service,
		converter:    converter,
		validator:    newRequestValidator(),
		log:          logger,
		maxBodyBytes: maxBodyBytes,
	}
}

type errorResponse struct {
	StatusCode int    `json:"statusCode" example:"404"`
	ErrorTitle string `json:"errorTitle" example:"Not Found"`
	Message    string `json:"message" example:"currency not found: EURO"`
}

type CurrencyResponse struct {
	ID   int64       `json:"id" example:"1"`
	Name string      `json:"name" example:"EURO"`
	Rate json.Number `json:"rate" swaggertype:"number" example:"3.96"`
}

func toCurrencyResponse(c domain.Currency) CurrencyResponse {
	return CurrencyResponse{ID: c.ID, Name: c.Name, Rate: json.Number(c.Rate.String())}
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		StatusCode: statusCode,
		ErrorTitle: http.StatusText(statusCode),
		Message:    errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeServiceError maps domain errors to responses. Anything unknown is
// logged and answered with internalMsg only.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, handlerName string, err error, internalMsg string, fields logrus.Fields) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrCurrencyExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.WithError(err).
			WithFields(fields).
			WithFields(logrus.Fields{"handler": handlerName, "request_id": middleware.GetReqID(r.Context())}).
			Error(internalMsg)
		writeError(w, http.StatusInternalServerError, internalMsg)
	}
}

// decodeBody reads a size-limited JSON body into dst and validates it.
// It writes the 400 response itself and reports whether decoding succeeded.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
