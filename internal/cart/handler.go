package cart

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pattarapol-w/storefront-backend/internal/actor"
	"github.com/pattarapol-w/storefront-backend/internal/product"
)

// Handler exposes the cart over HTTP. Routes accept either a bearer token
// or the anonymous session cookie; the actor middleware has already decided
// which before these run.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/cart", h.getCart)
	app.Post("/api/cart", h.addToCart)
	app.Post("/api/cart/clear", h.clearCart)
	app.Delete("/api/cart/:lineId", h.removeLine)
}

type addToCartRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	act, err := actor.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.Get(act)
	if err != nil {
		log.Printf("get cart failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
	}

	return h.respondView(c, crt)
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	act, err := actor.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addToCartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}

	crt, err := h.service.AddOrSetLine(act, payload.ProductID, payload.Quantity)
	if err != nil {
		switch err {
		case ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be at least 1"})
		case product.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			log.Printf("add to cart failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
		}
	}

	return h.respondView(c, crt)
}

func (h *Handler) removeLine(c *fiber.Ctx) error {
	act, err := actor.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.RemoveLine(act, c.Params("lineId"))
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart not found"})
		default:
			log.Printf("remove cart line failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
		}
	}

	return h.respondView(c, crt)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	act, err := actor.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.Clear(act)
	if err != nil {
		log.Printf("clear cart failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
	}

	return h.respondView(c, crt)
}

func (h *Handler) respondView(c *fiber.Ctx, crt Cart) error {
	view, err := h.service.View(crt)
	if err != nil {
		log.Printf("cart view failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "server error"})
	}
	return c.JSON(view)
}
