package wishlist

import "time"

type Service struct {
	repo     Repository
	products ProductGetter
}

func NewService(repo Repository, products ProductGetter) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) List(userID int) ([]Entry, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) Add(userID, productID int) (Entry, error) {
	p, err := s.products.GetByID(productID)
	if err != nil {
		return Entry{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	e, err := s.repo.Add(userID, productID, now)
	if err != nil {
		return Entry{}, err
	}
	e.Product = p
	return e, nil
}

func (s *Service) Remove(userID, productID int) error {
	return s.repo.Remove(userID, productID)
}

func (s *Service) Contains(userID, productID int) (bool, error) {
	return s.repo.Exists(userID, productID)
}
