package order

import (
	"sort"
	"sync"
)

type Repository interface {
	Insert(ord Order) (Order, error)
	// ListByAccount returns the account's orders, newest first.
	ListByAccount(accountID int) ([]Order, error)
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Insert(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.ID = r.nextID
	r.nextID++

	items := make([]Line, len(ord.Items))
	copy(items, ord.Items)
	ord.Items = items

	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) ListByAccount(accountID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.AccountID != nil && *ord.AccountID == accountID {
			out = append(out, ord)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
