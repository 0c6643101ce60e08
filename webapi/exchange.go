package webapi

import (
	"strings"

	"github.com/amirasaad/transfeo/config"
	"github.com/amirasaad/transfeo/pkg/middleware"
	"github.com/amirasaad/transfeo/pkg/repository"
	ratessvc "github.com/amirasaad/transfeo/pkg/service/rates"
	transfersvc "github.com/amirasaad/transfeo/pkg/service/transfer"
	usersvc "github.com/amirasaad/transfeo/pkg/service/user"
	"github.com/gofiber/fiber/v2"
)

// ConvertInput is a conversion preview request.
type ConvertInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	From   string  `json:"from" validate:"required,len=3,alpha"`
	To     string  `json:"to" validate:"required,len=3,alpha"`
}

// FindUserInput is a recipient lookup by IBAN.
type FindUserInput struct {
	IBAN string `json:"iban" validate:"required,min=15"`
}

// ExchangeRoutes registers the transfer, conversion preview and recipient
// lookup endpoints. All of them require an authenticated, active account.
func ExchangeRoutes(
	app *fiber.App,
	cfg *config.AppConfig,
	uow repository.UnitOfWork,
	transferSvc *transfersvc.Service,
	rates *ratessvc.Service,
	users *usersvc.Service,
) {
	guard := []fiber.Handler{
		middleware.JwtProtected(cfg.Jwt),
		middleware.RequireActive(uow),
	}
	app.Post("/exchange", append(guard, StoreExchange(transferSvc))...)
	app.Post("/exchange/convert", append(guard, Convert(rates))...)
	app.Post("/exchange/find-user", append(guard, FindUser(users))...)
}

// StoreExchange executes a money transfer to another user's IBAN.
// @Summary Send money
// @Description Transfer money to a recipient IBAN with live currency conversion
// @Tags exchange
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body transfer.Request true "Transfer request"
// @Success 201 {object} Response
// @Failure 404 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /exchange [post]
func StoreExchange(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		senderID, err := middleware.UserID(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := BindAndValidate[transfersvc.Request](c)
		if err != nil {
			return nil
		}
		result, err := svc.Execute(c.UserContext(), senderID, *input)
		if err != nil {
			return DomainErrorJSON(c, "Transfer failed", err)
		}

		message := "Transfer sent to " + result.RecipientName
		if result.FallbackMode {
			message += " (approximate exchange rate used)"
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: message,
			Data:    result,
		})
	}
}

// Convert previews a conversion between two currencies.
// @Summary Convert currencies
// @Description Convert an amount between two currencies at the current rate
// @Tags exchange
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body ConvertInput true "Conversion request"
// @Success 200 {object} Response
// @Failure 422 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /exchange/convert [post]
func Convert(rates *ratessvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[ConvertInput](c)
		if err != nil {
			return nil
		}
		from := strings.ToUpper(input.From)
		to := strings.ToUpper(input.To)

		converted, rate, fallback, err := rates.ConvertOrFallback(c.UserContext(), input.Amount, from, to)
		if err != nil {
			return DomainErrorJSON(c, "Conversion failed", err)
		}

		message := "Conversion done"
		if fallback {
			message = "Conversion done with approximate rates, live rates unavailable"
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: message,
			Data: fiber.Map{
				"amount":           input.Amount,
				"from":             from,
				"to":               to,
				"converted_amount": converted,
				"exchange_rate":    rate,
				"fallback_mode":    fallback,
			},
		})
	}
}

// FindUser resolves a recipient by IBAN before sending a transfer.
// @Summary Find recipient
// @Description Look up the account holding an IBAN
// @Tags exchange
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body FindUserInput true "IBAN lookup"
// @Success 200 {object} Response
// @Failure 404 {object} ProblemDetails
// @Router /exchange/find-user [post]
func FindUser(users *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[FindUserInput](c)
		if err != nil {
			return nil
		}
		u, err := users.FindByIBAN(c.UserContext(), input.IBAN)
		if err != nil {
			return DomainErrorJSON(c, "Recipient lookup failed", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Recipient found",
			Data: fiber.Map{
				"id":    u.ID,
				"name":  u.Name,
				"email": u.Email,
				"iban":  u.IBAN,
			},
		})
	}
}
