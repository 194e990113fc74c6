package product

// ServiceInterface lets other packages depend on the product service
// without importing its concrete type.
type ServiceInterface interface {
	List(f Filter) (ListResult, error)
	GetByID(id int) (Product, error)
	Create(p Product) (Product, error)
	Categories() ([]string, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(f Filter) (ListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 100
	}

	products, total, err := s.repo.List(f)
	if err != nil {
		return ListResult{}, err
	}

	pages := total / f.Limit
	if total%f.Limit != 0 {
		pages++
	}

	return ListResult{
		Products:      products,
		TotalProducts: total,
		TotalPages:    pages,
		CurrentPage:   f.Page,
	}, nil
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Categories() ([]string, error) {
	return s.repo.Categories()
}
