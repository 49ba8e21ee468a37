package user

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrConflict           = errors.New("username or email already exists")
)

type Repository interface {
	GetByID(id int) (Account, error)
	GetByEmail(email string) (Account, error)
	GetByUsername(username string) (Account, error)
	Create(acc Account) (Account, error)
	Update(id int, acc Account) (Account, error)
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts []Account
	nextID   int
}

func NewInMemoryRepository(seed []Account) *InMemoryRepository {
	repo := &InMemoryRepository{
		accounts: make([]Account, 0, len(seed)),
		nextID:   1,
	}

	maxID := 0
	for _, acc := range seed {
		repo.accounts = append(repo.accounts, acc)
		if acc.ID > maxID {
			maxID = acc.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByID(id int) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, acc := range r.accounts {
		if acc.ID == id {
			return acc, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, acc := range r.accounts {
		if acc.Email == email {
			return acc, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *InMemoryRepository) GetByUsername(username string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, acc := range r.accounts {
		if acc.Username == username {
			return acc, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *InMemoryRepository) Create(acc Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if acc.ID == 0 {
		acc.ID = r.nextID
		r.nextID++
	}
	r.accounts = append(r.accounts, acc)
	return acc, nil
}

func (r *InMemoryRepository) Update(id int, update Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, acc := range r.accounts {
		if acc.ID == id {
			acc.Email = update.Email
			acc.Address = update.Address
			if update.PasswordDigest != "" {
				acc.PasswordDigest = update.PasswordDigest
			}
			if update.UpdatedAt != "" {
				acc.UpdatedAt = update.UpdatedAt
			}
			r.accounts[i] = acc
			return acc, nil
		}
	}
	return Account{}, ErrNotFound
}
