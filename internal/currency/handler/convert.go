package handler

import (
	"encoding/json"
	"net/http"

	"currencyconv/internal/domain"
	"currencyconv/internal/money"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ConvertRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"decimal_range,positive_decimal" swaggertype:"number" example:"253.408233"`
	OriginLabel string          `json:"originLabel" validate:"required,notblank" example:"soles"`
	DestLabel   string          `json:"destLabel" validate:"required,notblank" example:"euro"`
}

type ConvertResponse struct {
	OriginalAmount  json.Number `json:"originalAmount" swaggertype:"number" example:"253.41"`
	ConvertedAmount json.Number `json:"convertedAmount" swaggertype:"number" example:"1003.50"`
	OriginLabel     string      `json:"originLabel" example:"SOLES"`
	DestLabel       string      `json:"destLabel" example:"EURO"`
	RateApplied     json.Number `json:"rateApplied" swaggertype:"number" example:"3.96"`
}

// Convert godoc
// @Summary Convert amount
// @Description Multiply the amount by the destination currency rate. Amounts are rounded half-up to 2 decimals, the origin label is only echoed back.
// @Tags Conversion
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion"
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /convert [post]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	res, err := h.converter.Convert(r.Context(), domain.ConversionRequest{
		Amount:      req.Amount,
		OriginLabel: req.OriginLabel,
		DestLabel:   req.DestLabel,
	})
	if err != nil {
		h.writeServiceError(w, r, "Convert", err, "ups, couldn't convert amount this time",
			logrus.Fields{"origin": req.OriginLabel, "dest": req.DestLabel})
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		OriginalAmount:  json.Number(money.Format(&res.OriginalAmount, money.ConversionScale)),
		ConvertedAmount: json.Number(money.Format(&res.ConvertedAmount, money.ConversionScale)),
		OriginLabel:     res.OriginLabel,
		DestLabel:       res.DestLabel,
		RateApplied:     json.Number(res.RateApplied.String()),
	})
}
