package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/roamsim/roamsim/internal/types"
)

// RequestIDMiddleware attaches a request id to the request context and echoes
// it back in the X-Request-ID header. An incoming id is kept so retries stay
// correlated.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = types.GenerateID(types.RequestIDPrefix)
	}

	ctx := context.WithValue(c.Request.Context(), types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Header("X-Request-ID", requestID)
	c.Next()
}

// LocaleMiddleware resolves the storefront locale from the query string or
// the Accept-Language header and stores it on the request context.
func LocaleMiddleware(c *gin.Context) {
	locale := c.Query("locale")
	if locale == "" {
		locale = parseAcceptLanguage(c.GetHeader("Accept-Language"))
	}
	if locale == "" {
		locale = types.DefaultLocale
	}

	ctx := context.WithValue(c.Request.Context(), types.CtxLocale, locale)
	c.Request = c.Request.WithContext(ctx)
	c.Set("locale", locale)
	c.Next()
}

// parseAcceptLanguage returns the primary language tag of the first entry,
// lowercased, e.g. "de-DE,de;q=0.9" yields "de".
func parseAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}
	end := len(header)
	for i, r := range header {
		if r == ',' || r == ';' || r == '-' {
			end = i
			break
		}
	}
	tag := header[:end]
	out := make([]byte, 0, len(tag))
	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		if ch == ' ' || ch == '*' {
			continue
		}
		out = append(out, ch)
	}
	return string(out)
}
