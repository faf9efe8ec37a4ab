package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// Claims is the JWT payload expected from callers. The subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens and turns them into a principal.
// The raw token is kept on the principal and forwarded to the order store.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) (*Authenticator, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{secret: []byte(secret)}, nil
}

// Middleware rejects requests without a valid bearer token.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := a.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// Authenticate parses an Authorization header value.
func (a *Authenticator) Authenticate(header string) (ports.Principal, error) {
	if header == "" {
		return ports.Principal{}, errors.New("authorization header is required")
	}

	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(tokenString) == "" {
		return ports.Principal{}, errors.New("invalid token format")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ports.Principal{}, errors.New("invalid or expired token")
	}

	principal := ports.Principal{
		UserID: claims.Subject,
		Role:   claims.Role,
		Token:  tokenString,
	}
	if err = principal.Validate(); err != nil {
		return ports.Principal{}, errors.New("token has no subject")
	}
	return principal, nil
}

func principalFrom(c echo.Context) ports.Principal {
	p, _ := c.Get(principalKey).(ports.Principal)
	return p
}
