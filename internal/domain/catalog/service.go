// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/agrimart-client/internal/infrastructure/localstore"
)

// Product represents a catalog product as reported by the backend
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	InStock     bool    `json:"in_stock"`
}

// Backend is the remote catalog read surface
type Backend interface {
	GetProducts(ctx context.Context, category string) ([]Product, error)
	GetCategories(ctx context.Context) ([]string, error)
}

// Service reads the catalog, keeping the admin category list cached
// locally so the admin screens keep working against a flaky backend.
type Service struct {
	store   localstore.Store
	backend Backend
	log     *logrus.Logger

	mu sync.Mutex
}

// NewService creates a catalog service
func NewService(store localstore.Store, backend Backend, log *logrus.Logger) *Service {
	return &Service{
		store:   store,
		backend: backend,
		log:     log,
	}
}

// Products lists products, optionally filtered by category
func (s *Service) Products(ctx context.Context, category string) ([]Product, error) {
	products, err := s.backend.GetProducts(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// Categories returns the cached category list, fetching and caching it
// from the backend on a cache miss.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cached []string
	err := localstore.GetJSON(ctx, s.store, localstore.KeyCategories, &cached)
	if err == nil {
		return cached, nil
	}
	if err != localstore.ErrNotFound {
		s.log.WithError(err).Warn("Failed to read category cache")
	}

	return s.refreshLocked(ctx)
}

// RefreshCategories replaces the cached category list with the
// backend's current one.
func (s *Service) RefreshCategories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Service) refreshLocked(ctx context.Context) ([]string, error) {
	categories, err := s.backend.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	if err := localstore.SetJSON(ctx, s.store, localstore.KeyCategories, categories); err != nil {
		// A stale cache is acceptable; the fetched list still serves
		// this call.
		s.log.WithError(err).Warn("Failed to cache categories")
	}

	return categories, nil
}
