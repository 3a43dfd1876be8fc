package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/roamsim/roamsim/internal/config"
	ierr "github.com/roamsim/roamsim/internal/errors"
)

// AdminAuthMiddleware guards operator endpoints with a bearer JWT signed
// using the configured admin secret.
func AdminAuthMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err == nil {
			err = validateAdminToken(token, cfg.Auth.AdminSecret)
		}
		if err != nil {
			status, body := ierr.NewErrorResponse(err)
			c.AbortWithStatusJSON(status, body)
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ierr.NewError("missing bearer token").
			WithHint("Provide an Authorization: Bearer token").
			Mark(ierr.ErrPermissionDenied)
	}
	return parts[1], nil
}

func validateAdminToken(token, secret string) error {
	if secret == "" {
		return ierr.NewError("admin secret is not configured").
			Mark(ierr.ErrConfiguration)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	if role, _ := claims["role"].(string); role != "admin" {
		return ierr.NewError("token lacks the admin role").
			WithHint("Token lacks the admin role").
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}
