package main

import (
	"os"

	"currencyconv/internal/app"
)

// @title Currency Converter API
// @version 1.0
// @description Currency registry with exact decimal conversion against a common base currency.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
