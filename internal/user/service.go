package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface lets other packages depend on account operations without
// the concrete service.
type ServiceInterface interface {
	GetByID(id int) (Account, error)
	Register(username, email, password, address string) (Account, error)
	Authenticate(email, password string) (Account, error)
	UpdateProfile(id int, update ProfileUpdate) (Account, error)
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (Account, error) {
	if id <= 0 {
		return Account{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

// Register creates a new account. Username and email are uniqueness keys;
// the email is lowercased before storage so lookups stay case-insensitive.
func (s *Service) Register(username, email, password, address string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.GetByEmail(email); err == nil {
		return Account{}, ErrConflict
	} else if err != ErrNotFound {
		return Account{}, err
	}
	if _, err := s.repo.GetByUsername(username); err == nil {
		return Account{}, ErrConflict
	} else if err != ErrNotFound {
		return Account{}, err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(Account{
		Username:       username,
		Email:          email,
		PasswordDigest: string(digest),
		Address:        address,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

// Authenticate returns the matching account or ErrInvalidCredentials. The
// same error covers unknown emails and wrong passwords so callers cannot
// probe for registered addresses.
func (s *Service) Authenticate(email, password string) (Account, error) {
	acc, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return Account{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordDigest), []byte(password)) != nil {
		return Account{}, ErrInvalidCredentials
	}

	return acc, nil
}

// UpdateProfile changes email and/or default shipping address. A changed
// email must not collide with a different account.
func (s *Service) UpdateProfile(id int, update ProfileUpdate) (Account, error) {
	acc, err := s.repo.GetByID(id)
	if err != nil {
		return Account{}, err
	}

	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if email != acc.Email {
			if other, err := s.repo.GetByEmail(email); err == nil && other.ID != id {
				return Account{}, ErrConflict
			} else if err != nil && err != ErrNotFound {
				return Account{}, err
			}
			acc.Email = email
		}
	}
	if update.Address != nil {
		acc.Address = *update.Address
	}

	acc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, acc)
}
