package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/pattarapol-w/storefront-backend/internal/actor"
	"github.com/pattarapol-w/storefront-backend/internal/product"
)

// Service owns all cart mutations. Every operation is scoped to the actor
// resolved for the request; there is no ambient "current user" state.
type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) find(act actor.Actor) (Cart, error) {
	if act.IsAccount() {
		return s.repo.FindByAccount(act.AccountID)
	}
	return s.repo.FindBySession(act.SessionID)
}

// Get returns the actor's cart, or a synthetic empty cart when none exists.
// Reading never creates a row.
func (s *Service) Get(act actor.Actor) (Cart, error) {
	c, err := s.find(act)
	if err == ErrNotFound {
		return Cart{Items: []Line{}}, nil
	}
	return c, err
}

// AddOrSetLine puts a product into the cart. An existing line for the same
// product gets its quantity replaced, not incremented; a new line captures
// the current catalog price as its snapshot. The cart row is created lazily
// on the first add.
func (s *Service) AddOrSetLine(act actor.Actor, productID, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	p, err := s.products.GetByID(productID)
	if err != nil {
		return Cart{}, err
	}

	c, err := s.find(act)
	if err == ErrNotFound {
		c = newCartFor(act)
		c.Items = append(c.Items, newLine(p, quantity))
		c.UpdatedAt = now()
		return s.repo.Insert(c)
	}
	if err != nil {
		return Cart{}, err
	}

	if i := c.findLine(productID); i >= 0 {
		c.Items[i].Quantity = quantity
	} else {
		c.Items = append(c.Items, newLine(p, quantity))
	}
	c.UpdatedAt = now()
	return s.repo.Update(c)
}

// RemoveLine drops the line with the given id. A missing line on an
// existing cart is a no-op; a missing cart is ErrNotFound.
func (s *Service) RemoveLine(act actor.Actor, lineID string) (Cart, error) {
	c, err := s.find(act)
	if err != nil {
		return Cart{}, err
	}

	kept := c.Items[:0]
	removed := false
	for _, line := range c.Items {
		if line.ID == lineID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return c, nil
	}

	c.Items = kept
	c.UpdatedAt = now()
	return s.repo.Update(c)
}

// Clear empties the cart in place. No cart is a no-op.
func (s *Service) Clear(act actor.Actor) (Cart, error) {
	c, err := s.find(act)
	if err == ErrNotFound {
		return Cart{Items: []Line{}}, nil
	}
	if err != nil {
		return Cart{}, err
	}

	c.Items = []Line{}
	c.UpdatedAt = now()
	return s.repo.Update(c)
}

// View resolves the cart's lines against the catalog for display. The join
// is read-through only; the stored lines keep identifiers and snapshots.
func (s *Service) View(c Cart) (View, error) {
	ids := make([]int, 0, len(c.Items))
	for _, line := range c.Items {
		ids = append(ids, line.ProductID)
	}

	items := make([]ItemView, 0, len(c.Items))
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

	for _, line := range c.Items {
		item := ItemView{Line: line}
		if p, ok := byID[line.ProductID]; ok {
			prod := p
			item.Product = &prod
		}
		items = append(items, item)
	}

	return View{Items: items, Total: c.Total()}, nil
}

func newCartFor(act actor.Actor) Cart {
	c := Cart{Items: []Line{}}
	if act.IsAccount() {
		id := act.AccountID
		c.AccountID = &id
	} else {
		sid := act.SessionID
		c.SessionID = &sid
	}
	return c
}

func newLine(p product.Product, quantity int) Line {
	return Line{
		ID:            uuid.NewString(),
		ProductID:     p.ID,
		Quantity:      quantity,
		PriceSnapshot: p.Price,
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
