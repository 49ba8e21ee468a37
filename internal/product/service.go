package product

// ServiceInterface is consumed by the cart and order packages for price
// snapshots and display joins.
type ServiceInterface interface {
	List() ([]Product, error)
	GetByID(id int) (Product, error)
	ListByIDs(ids []int) ([]Product, error)
}

type Service struct {
	repo  Repository
	cache Cache
}

var _ ServiceInterface = (*Service)(nil)

// NewService builds the catalog service. cache may be nil when no Redis is
// configured.
func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) List() ([]Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.GetProducts(); ok {
			return products, nil
		}
	}

	products, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetProducts(products)
	}
	return products, nil
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}
