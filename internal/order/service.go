package order

import (
	"errors"
	"log"
	"net/mail"
	"time"

	"github.com/pattarapol-w/storefront-backend/internal/actor"
	"github.com/pattarapol-w/storefront-backend/internal/cart"
	"github.com/pattarapol-w/storefront-backend/internal/product"
	"github.com/pattarapol-w/storefront-backend/internal/user"
)

var ErrEmptyCart = errors.New("cart is empty")

// ValidationError reports bad buyer or shipping input. Checkout raises it
// before any mutation, so a validation failure has no side effects.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// CartSource is the slice of the cart service checkout needs.
type CartSource interface {
	Get(act actor.Actor) (cart.Cart, error)
	Clear(act actor.Actor) (cart.Cart, error)
}

// CheckoutInput carries the buyer fields from the request. Empty fields may
// be defaulted from the account profile for signed-in actors.
type CheckoutInput struct {
	BuyerName       string
	BuyerEmail      string
	ShippingAddress string
}

type Service struct {
	repo     Repository
	carts    CartSource
	accounts user.ServiceInterface
	products product.ServiceInterface
}

func NewService(repo Repository, carts CartSource, accounts user.ServiceInterface, products product.ServiceInterface) *Service {
	return &Service{repo: repo, carts: carts, accounts: accounts, products: products}
}

// Checkout converts the actor's cart into an immutable order.
//
// The total comes from the stored price snapshots only; current catalog
// prices are never consulted. The order is persisted before the cart is
// emptied. A failed clear after a durable order is logged and the checkout
// still succeeds.
func (s *Service) Checkout(act actor.Actor, in CheckoutInput) (Order, error) {
	var accountID *int
	if act.IsAccount() {
		acc, err := s.accounts.GetByID(act.AccountID)
		if err != nil {
			return Order{}, err
		}
		id := acc.ID
		accountID = &id
		if in.BuyerName == "" {
			in.BuyerName = acc.Username
		}
		if in.BuyerEmail == "" {
			in.BuyerEmail = acc.Email
		}
		if in.ShippingAddress == "" {
			in.ShippingAddress = acc.Address
		}
	}

	if err := validate(in); err != nil {
		return Order{}, err
	}

	crt, err := s.carts.Get(act)
	if err != nil {
		return Order{}, err
	}
	if len(crt.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	items := make([]Line, 0, len(crt.Items))
	for _, line := range crt.Items {
		items = append(items, Line{
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			PriceSnapshot: line.PriceSnapshot,
		})
	}

	ord := Order{
		AccountID:       accountID,
		BuyerName:       in.BuyerName,
		BuyerEmail:      in.BuyerEmail,
		ShippingAddress: in.ShippingAddress,
		Items:           items,
		Total:           crt.Total(),
		Currency:        DefaultCurrency,
		Status:          StatusMockPaid,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	created, err := s.repo.Insert(ord)
	if err != nil {
		return Order{}, err
	}

	// the order is durable from here on; never fail the checkout over
	// a stale cart
	if _, err := s.carts.Clear(act); err != nil {
		log.Printf("warning: could not clear cart after order %d: %v", created.ID, err)
	}

	return created, nil
}

func (s *Service) ListForAccount(accountID int) ([]Order, error) {
	return s.repo.ListByAccount(accountID)
}

// View resolves an order's lines against the catalog for display. The join
// is read-through only; the stored lines keep their snapshots.
func (s *Service) View(ord Order) (View, error) {
	ids := make([]int, 0, len(ord.Items))
	for _, line := range ord.Items {
		ids = append(ids, line.ProductID)
	}

	byID := map[int]product.Product{}
	if len(ids) > 0 {
		products, err := s.products.ListByIDs(ids)
		if err != nil {
			return View{}, err
		}
		for _, p := range products {
			byID[p.ID] = p
		}
	}

	items := make([]ItemView, 0, len(ord.Items))
	for _, line := range ord.Items {
		item := ItemView{Line: line}
		if p, ok := byID[line.ProductID]; ok {
			prod := p
			item.Product = &prod
		}
		items = append(items, item)
	}

	return View{Order: ord, Items: items}, nil
}

// ViewAll resolves a list of orders, preserving their order.
func (s *Service) ViewAll(orders []Order) ([]View, error) {
	views := make([]View, 0, len(orders))
	for _, ord := range orders {
		view, err := s.View(ord)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func validate(in CheckoutInput) error {
	if in.BuyerName == "" || in.BuyerEmail == "" {
		return &ValidationError{Msg: "buyer name and email are required"}
	}
	if _, err := mail.ParseAddress(in.BuyerEmail); err != nil {
		return &ValidationError{Msg: "a valid buyer email is required"}
	}
	if in.ShippingAddress == "" {
		return &ValidationError{Msg: "shipping address is required"}
	}
	return nil
}
