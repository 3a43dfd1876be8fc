package types

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefixes for generated entity ids.
const (
	OrderIDPrefix    = "ord"
	CustomerIDPrefix = "cust"
	RequestIDPrefix  = "req"
)

// GenerateID returns a new prefixed ULID, e.g. "ord_01J8ZQ3...".
func GenerateID(prefix string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader)
	return strings.Join([]string{prefix, id.String()}, "_")
}
