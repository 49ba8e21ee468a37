package actor

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the anonymous session token.
const SessionCookie = "cart_session"

const sessionTTL = 30 * 24 * time.Hour

// Middleware resolves the request's actor. A verifiable bearer token wins;
// otherwise the anonymous session cookie is used, minting a fresh token the
// first time a browser shows up without one. The minted cookie is HTTP-only
// and SameSite=Lax so client scripts cannot read it.
func Middleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := accountFromBearer(c, jwtSecret); ok {
			c.Locals(localsKey, Account(id))
			return c.Next()
		}

		sessionID := c.Cookies(SessionCookie)
		if sessionID == "" {
			sessionID = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Expires:  time.Now().Add(sessionTTL),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localsKey, Anonymous(sessionID))
		return c.Next()
	}
}

func accountFromBearer(c *fiber.Ctx, secret string) (int, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, false
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 {
		return 0, false
	}
	return int(raw), true
}
