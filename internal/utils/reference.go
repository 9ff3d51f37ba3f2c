package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateReference produces a client-side transaction reference in the
// REF-<unix millis>-<9 alphanumerics> form the backend expects.
func GenerateReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	return fmt.Sprintf("REF-%d-%s", time.Now().UnixMilli(), suffix)
}
