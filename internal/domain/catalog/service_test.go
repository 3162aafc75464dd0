// internal/domain/catalog/service_test.go
package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/agrimart-client/internal/infrastructure/localstore"
)

type fakeCatalogBackend struct {
	products      []Product
	categories    []string
	fail          bool
	categoryCalls int
}

func (f *fakeCatalogBackend) GetProducts(ctx context.Context, category string) ([]Product, error) {
	if f.fail {
		return nil, errors.New("backend unavailable")
	}
	return f.products, nil
}

func (f *fakeCatalogBackend) GetCategories(ctx context.Context) ([]string, error) {
	f.categoryCalls++
	if f.fail {
		return nil, errors.New("backend unavailable")
	}
	return f.categories, nil
}

func newTestService(t *testing.T, backend *fakeCatalogBackend) (*Service, localstore.Store) {
	t.Helper()
	store := localstore.NewMemoryStore()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(store, backend, log), store
}

func TestCategoriesFetchesAndCaches(t *testing.T) {
	backend := &fakeCatalogBackend{categories: []string{"Seeds", "Groceries"}}
	s, store := newTestService(t, backend)
	ctx := context.Background()

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Seeds", "Groceries"}, categories)
	assert.Equal(t, 1, backend.categoryCalls)

	var cached []string
	require.NoError(t, localstore.GetJSON(ctx, store, localstore.KeyCategories, &cached))
	assert.Equal(t, categories, cached)

	// The second read is served from cache
	_, err = s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.categoryCalls)
}

func TestCategoriesCacheSurvivesBackendOutage(t *testing.T) {
	backend := &fakeCatalogBackend{categories: []string{"Seeds"}}
	s, _ := newTestService(t, backend)
	ctx := context.Background()

	_, err := s.Categories(ctx)
	require.NoError(t, err)

	backend.fail = true
	categories, err := s.Categories(ctx)
	require.NoError(t, err, "cached categories serve reads while the backend is down")
	assert.Equal(t, []string{"Seeds"}, categories)
}

func TestRefreshCategoriesReplacesCache(t *testing.T) {
	backend := &fakeCatalogBackend{categories: []string{"Seeds"}}
	s, _ := newTestService(t, backend)
	ctx := context.Background()

	_, err := s.Categories(ctx)
	require.NoError(t, err)

	backend.categories = []string{"Seeds", "Equipment"}
	refreshed, err := s.RefreshCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Seeds", "Equipment"}, refreshed)

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, refreshed, categories)
}

func TestCategoriesErrorsWithoutCacheOrBackend(t *testing.T) {
	s, _ := newTestService(t, &fakeCatalogBackend{fail: true})

	_, err := s.Categories(context.Background())
	assert.Error(t, err)
}

func TestProductsPassThrough(t *testing.T) {
	backend := &fakeCatalogBackend{products: []Product{{ID: "p1", Name: "Tomato Seeds"}}}
	s, _ := newTestService(t, backend)

	products, err := s.Products(context.Background(), "Seeds")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tomato Seeds", products[0].Name)

	backend.fail = true
	_, err = s.Products(context.Background(), "Seeds")
	assert.Error(t, err)
}
