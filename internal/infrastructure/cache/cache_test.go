package cache

import (
	"testing"
	"time"
)

func TestCacheExpires(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Set("report", 42)

	if v, ok := c.Get("report"); !ok || v != 42 {
		t.Fatalf("Expected cached value 42, got %v (found %v)", v, ok)
	}

	time.Sleep(40 * time.Millisecond)
	if _, ok := c.Get("report"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	if c.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d", c.Len())
	}
}
