package utils

import (
	"regexp"
	"testing"
	"time"
)

func TestNewUserIDFormat(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id := NewUserID(now)

	pattern := regexp.MustCompile(`^user_1700000000123_[0-9a-f]{9}$`)
	if !pattern.MatchString(id) {
		t.Errorf("Expected id matching %s, got %s", pattern, id)
	}

	if other := NewUserID(now); other == id {
		t.Error("Expected random suffix to differ between calls")
	}
}

func TestISO8601(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 6, 7_000_000, time.FixedZone("BRT", -3*60*60))
	if got := ISO8601(ts); got != "2024-03-09T17:05:06.007Z" {
		t.Errorf("Expected 2024-03-09T17:05:06.007Z, got %s", got)
	}
}
