package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	VisitorCookie = "atly_visitor"
	visitorIDKey  = "visitor_id"
	visitorTTL    = 365 * 24 * time.Hour
	visitorIssuer = "atly-quiz-funnel"
)

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// VisitorClaims identify a browser across visits. The subject is the visitor
// id that scopes its stored answers.
type VisitorClaims struct {
	jwt.RegisteredClaims
}

// Visitor makes sure every request carries a signed visitor cookie and
// exposes the visitor id through VisitorID.
func Visitor(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		if raw := c.Cookies(VisitorCookie); raw != "" {
			id, err := ParseVisitorToken(raw, key)
			if err == nil {
				c.Locals(visitorIDKey, id)
				return c.Next()
			}
			log.Debug().Err(err).Msg("Replacing invalid visitor cookie")
		}

		id := uuid.NewString()
		token, err := NewVisitorToken(id, key, time.Now())
		if err != nil {
			return err
		}
		c.Cookie(&fiber.Cookie{
			Name:     VisitorCookie,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(visitorTTL),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(visitorIDKey, id)
		return c.Next()
	}
}

// VisitorID returns the id set by Visitor, empty outside of it.
func VisitorID(c *fiber.Ctx) string {
	id, _ := c.Locals(visitorIDKey).(string)
	return id
}

func NewVisitorToken(visitorID string, key []byte, now time.Time) (string, error) {
	claims := VisitorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   visitorID,
			Issuer:    visitorIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(visitorTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func ParseVisitorToken(raw string, key []byte) (string, error) {
	claims := &VisitorClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return key, nil
	}, jwt.WithIssuer(visitorIssuer))
	if err != nil {
		return "", err
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", err
	}
	return claims.Subject, nil
}
