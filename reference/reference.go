// Package reference generates the public identifiers of orders.
package reference

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TrackingTokenLength is the length of generated tracking tokens.
const TrackingTokenLength = 12

// OrderID returns an id of the form ORD-<unix millis>-<6 hex chars>.
func OrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), code(6))
}

// TrackingToken returns a random upper-case hex token.
func TrackingToken() string {
	return code(TrackingTokenLength)
}

func code(n int) string {
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(strings.ReplaceAll(uuid.NewString(), "-", ""))
	}
	return strings.ToUpper(b.String()[:n])
}
