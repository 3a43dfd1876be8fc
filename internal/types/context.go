package types

import "context"

// ContextKey is the type used for all context keys set by the service.
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxLocale    ContextKey = "ctx_locale"
)

// GetRequestID returns the request id from the context, if set.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxRequestID).(string); ok {
		return id
	}
	return ""
}

// GetLocale returns the storefront locale from the context, falling back to
// the default locale when none was resolved by the middleware.
func GetLocale(ctx context.Context) string {
	if locale, ok := ctx.Value(CtxLocale).(string); ok && locale != "" {
		return locale
	}
	return DefaultLocale
}

// DefaultLocale is used when a request carries no locale.
const DefaultLocale = "en"
