package cart

import (
	"errors"
	"sync"
)

var (
	ErrNotFound        = errors.New("cart not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

type Repository interface {
	FindByAccount(accountID int) (Cart, error)
	FindBySession(sessionID string) (Cart, error)
	Insert(c Cart) (Cart, error)
	Update(c Cart) (Cart, error)
	Delete(cartID int) error
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	carts  []Cart
	nextID int
}

func NewInMemoryRepository(seed []Cart) *InMemoryRepository {
	r := &InMemoryRepository{
		carts:  make([]Cart, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, c := range seed {
		r.carts = append(r.carts, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) FindByAccount(accountID int) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.carts {
		if c.AccountID != nil && *c.AccountID == accountID {
			return clone(c), nil
		}
	}
	return Cart{}, ErrNotFound
}

func (r *InMemoryRepository) FindBySession(sessionID string) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.carts {
		if c.SessionID != nil && *c.SessionID == sessionID {
			return clone(c), nil
		}
	}
	return Cart{}, ErrNotFound
}

func (r *InMemoryRepository) Insert(c Cart) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	r.carts = append(r.carts, clone(c))
	return c, nil
}

func (r *InMemoryRepository) Update(c Cart) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.carts {
		if existing.ID == c.ID {
			r.carts[i] = clone(c)
			return c, nil
		}
	}
	return Cart{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(cartID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.carts {
		if existing.ID == cartID {
			r.carts = append(r.carts[:i], r.carts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func clone(c Cart) Cart {
	items := make([]Line, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
