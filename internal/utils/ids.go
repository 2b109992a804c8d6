package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUserID builds a user id from a millisecond timestamp and a random suffix.
// Uniqueness is best effort.
func NewUserID(now time.Time) string {
	return fmt.Sprintf("user_%d_%s", now.UnixMilli(), randomSuffix(9))
}

func randomSuffix(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
