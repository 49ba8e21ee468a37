package user

import (
	"log"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/pattarapol-w/storefront-backend/internal/actor"
)

// CartMerger folds an anonymous cart into an account cart. Implemented by
// the cart service; declared here so the auth handler does not import it.
type CartMerger interface {
	Merge(accountID int, sessionID string) error
}

type Handler struct {
	service   ServiceInterface
	merger    CartMerger
	jwtSecret string
}

func NewHandler(service ServiceInterface, merger CartMerger, jwtSecret string) *Handler {
	return &Handler{service: service, merger: merger, jwtSecret: jwtSecret}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/auth/register", h.register)
	app.Post("/api/auth/login", h.login)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/auth/me", h.getProfile)
	app.Put("/api/auth/me", h.updateProfile)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Username == "" || payload.Address == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "username and address are required"})
	}
	if !validEmail(payload.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "a valid email is required"})
	}
	if !validPassword(payload.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "password must be at least 8 characters long, and contain at least one lowercase letter, one uppercase letter, one number, and one special character"})
	}

	acc, err := h.service.Register(payload.Username, payload.Email, payload.Password, payload.Address)
	if err != nil {
		switch err {
		case ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "username or email already exists"})
		default:
			log.Printf("register failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
		}
	}

	h.mergeGuestCart(c, acc.ID)

	token, err := h.issueToken(acc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email and password are required"})
	}

	acc, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid email or password"})
	}

	h.mergeGuestCart(c, acc.ID)

	token, err := h.issueToken(acc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	return c.JSON(fiber.Map{"token": token})
}

// mergeGuestCart runs the one-time cart reconciliation when a browser that
// shopped anonymously signs in. A failed merge must not block the login; the
// guest cart stays around for the next attempt.
func (h *Handler) mergeGuestCart(c *fiber.Ctx, accountID int) {
	sessionID := c.Cookies(actor.SessionCookie)
	if sessionID == "" || h.merger == nil {
		return
	}
	if err := h.merger.Merge(accountID, sessionID); err != nil {
		log.Printf("warning: could not merge guest cart for account %d: %v", accountID, err)
	}
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	accountID, err := GetAccountIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	acc, err := h.service.GetByID(accountID)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "account not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
	}

	return c.JSON(acc)
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	accountID, err := GetAccountIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(ProfileUpdate)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email != nil && !validEmail(*payload.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "a valid email is required"})
	}

	acc, err := h.service.UpdateProfile(accountID, *payload)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "account not found"})
		case ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "email already in use"})
		default:
			log.Printf("profile update failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
		}
	}

	return c.JSON(acc)
}

func (h *Handler) issueToken(acc Account) (string, error) {
	claims := jwt.MapClaims{
		"user_id": acc.ID,
		"email":   acc.Email,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

const passwordSpecials = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// validPassword enforces the registration password policy: at least 8
// characters with a lowercase letter, an uppercase letter, a digit and a
// special character each present.
func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

// GetAccountIDFromCtx reads the account id from the JWT that the jwtware
// middleware stored in the request locals.
func GetAccountIDFromCtx(c *fiber.Ctx) (int, error) {
	u := c.Locals("user")
	if u == nil {
		return 0, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	raw, ok := claims["user_id"]
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	default:
		return 0, fiber.ErrUnauthorized
	}
}
