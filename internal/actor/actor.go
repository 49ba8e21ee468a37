package actor

import "github.com/gofiber/fiber/v2"

// Actor identifies who is shopping on a request: a signed-in account or an
// anonymous browser session. Exactly one of the two fields is set.
type Actor struct {
	AccountID int
	SessionID string
}

// IsAccount reports whether the actor is an authenticated account.
func (a Actor) IsAccount() bool {
	return a.AccountID > 0
}

// Account builds an account-owned actor.
func Account(id int) Actor {
	return Actor{AccountID: id}
}

// Anonymous builds a session-owned actor.
func Anonymous(sessionID string) Actor {
	return Actor{SessionID: sessionID}
}

const localsKey = "actor"

// FromCtx returns the actor resolved by the middleware for this request.
func FromCtx(c *fiber.Ctx) (Actor, error) {
	v := c.Locals(localsKey)
	if v == nil {
		return Actor{}, fiber.ErrUnauthorized
	}
	act, ok := v.(Actor)
	if !ok || (act.AccountID <= 0 && act.SessionID == "") {
		return Actor{}, fiber.ErrUnauthorized
	}
	return act, nil
}
