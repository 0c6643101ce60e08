package webapi

import (
	"github.com/amirasaad/transfeo/pkg/currency"
	ratessvc "github.com/amirasaad/transfeo/pkg/service/rates"
	"github.com/gofiber/fiber/v2"
)

// CurrencyRoutes registers the public currency reference endpoints.
func CurrencyRoutes(app *fiber.App, rates *ratessvc.Service) {
	app.Get("/currencies", ListCurrencies())
	app.Get("/currencies/symbols", ListSymbols(rates))
}

// ListCurrencies returns the static currency reference list.
// @Summary List currencies
// @Description Static reference list of supported currencies
// @Tags currency
// @Produce json
// @Success 200 {object} Response
// @Router /currencies [get]
func ListCurrencies() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Currencies",
			Data:    currency.All(),
		})
	}
}

// ListSymbols returns the currency codes the live rate source supports. The
// set is cached long-lived and empty when the source is down.
// @Summary List live symbols
// @Description Currency symbols supported by the live rate source
// @Tags currency
// @Produce json
// @Success 200 {object} Response
// @Router /currencies/symbols [get]
func ListSymbols(rates *ratessvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Symbols",
			Data:    rates.GetSymbols(c.UserContext()),
		})
	}
}
