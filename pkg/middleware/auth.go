// Package middleware holds the fiber middleware guarding authenticated and
// admin routes.
package middleware

import (
	"errors"

	"github.com/amirasaad/transfeo/config"
	"github.com/amirasaad/transfeo/pkg/domain"
	"github.com/amirasaad/transfeo/pkg/repository"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JwtProtected guards routes with HS256 bearer tokens signed by the auth
// service. Failures surface through the app error handler as problem+json.
func JwtProtected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(_ *fiber.Ctx, err error) error {
	if err.Error() == "missing or malformed JWT" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing or malformed JWT")
	}
	return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired JWT")
}

// UserID extracts the authenticated user id from the verified token.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("missing token in context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("unexpected claims type")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// role reads the role claim from the verified token.
func role(c *fiber.Ctx) domain.Role {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	r, _ := claims["role"].(string)
	return domain.Role(r)
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after JwtProtected.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role(c) != domain.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

// RequireActive rejects requests from accounts an admin has blocked since the
// token was issued. Must run after JwtProtected.
func RequireActive(uow repository.UnitOfWork) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := UserID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired JWT")
		}
		u, err := uow.Users().Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired JWT")
			}
			return err
		}
		if !u.Active {
			return fiber.NewError(fiber.StatusForbidden, "Account is blocked")
		}
		return c.Next()
	}
}
