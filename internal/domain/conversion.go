package domain

import "github.com/shopspring/decimal"

// ConversionRequest asks to value Amount at the rate of DestLabel.
type ConversionRequest struct {
	Amount      decimal.Decimal
	OriginLabel string
	DestLabel   string
}

// ConversionResult holds amounts rounded to two decimals and normalized labels.
type ConversionResult struct {
	OriginalAmount  decimal.Decimal
	ConvertedAmount decimal.Decimal
	OriginLabel     string
	DestLabel       string
	RateApplied     decimal.Decimal
}
