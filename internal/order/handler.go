package order

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pattarapol-w/storefront-backend/internal/actor"
	"github.com/pattarapol-w/storefront-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterCheckoutRoute mounts the checkout endpoint, open to both bearer
// and anonymous-cookie actors.
func (h *Handler) RegisterCheckoutRoute(app *fiber.App) {
	app.Post("/api/orders", h.checkout)
}

// RegisterProtectedRoutes mounts the order history endpoint; it requires a
// bearer token and is registered behind the JWT middleware.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/orders", h.listOrders)
}

type checkoutRequest struct {
	BuyerName       string `json:"buyerName"`
	BuyerEmail      string `json:"buyerEmail"`
	ShippingAddress string `json:"shippingAddress"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	act, err := actor.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.Checkout(act, CheckoutInput{
		BuyerName:       payload.BuyerName,
		BuyerEmail:      payload.BuyerEmail,
		ShippingAddress: payload.ShippingAddress,
	})
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ve.Msg})
		case err == ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "your cart is empty"})
		case err == user.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "account not found"})
		default:
			log.Printf("checkout failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
		}
	}

	view, err := h.service.View(ord)
	if err != nil {
		log.Printf("order view failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	accountID, err := user.GetAccountIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListForAccount(accountID)
	if err != nil {
		log.Printf("list orders failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
	}

	views, err := h.service.ViewAll(orders)
	if err != nil {
		log.Printf("order view failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
	}
	return c.JSON(views)
}
