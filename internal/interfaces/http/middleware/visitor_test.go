package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func TestVisitorTokenRoundTrip(t *testing.T) {
	key := []byte("secret")
	id := uuid.NewString()

	token, err := NewVisitorToken(id, key, time.Now())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, err := ParseVisitorToken(token, key)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != id {
		t.Errorf("Expected visitor %s, got %s", id, got)
	}

	if _, err := ParseVisitorToken(token, []byte("other")); err == nil {
		t.Error("Expected error for token signed with another key")
	}
	expired, _ := NewVisitorToken(id, key, time.Now().Add(-2*visitorTTL))
	if _, err := ParseVisitorToken(expired, key); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestVisitorMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(Visitor("secret"))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(VisitorID(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == VisitorCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("Expected visitor cookie to be set")
	}
	id, err := ParseVisitorToken(cookie.Value, []byte("secret"))
	if err != nil {
		t.Fatalf("Expected valid visitor cookie, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	if string(body[:n]) != id {
		t.Errorf("Expected visitor %s to be kept, got %s", id, string(body[:n]))
	}
	for _, c := range resp.Cookies() {
		if c.Name == VisitorCookie {
			t.Error("Expected no new cookie for a known visitor")
		}
	}
}
