// internal/domain/cart/manager.go
package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/agrimart-client/internal/infrastructure/localstore"
)

// Backend is the remote cart mirror. Calls against it are best-effort:
// the manager never fails a user-visible operation on a mirror error.
type Backend interface {
	GetCart(ctx context.Context, userID string) ([]Item, error)
	SmartOperation(ctx context.Context, productID string, quantity int, isNew bool) error
	DeleteItem(ctx context.Context, productID string) error
}

// Sessions resolves the currently authenticated user. An empty user id
// means nobody is logged in.
type Sessions interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// Manager reconciles the locally persisted cart with the remote cart.
// The local store is the source of truth; the backend is an
// eventually-consistent mirror that must never block the cart.
type Manager struct {
	store    localstore.Store
	backend  Backend
	sessions Sessions
	log      *logrus.Logger

	// Serializes read-modify-write cycles on the cart namespace so
	// concurrent operations cannot lose updates.
	mu sync.Mutex
}

// NewManager creates a cart reconciliation manager
func NewManager(store localstore.Store, backend Backend, sessions Sessions, log *logrus.Logger) *Manager {
	return &Manager{
		store:    store,
		backend:  backend,
		sessions: sessions,
		log:      log,
	}
}

// Items returns the locally persisted cart. A missing key is an empty
// cart, not an error.
func (m *Manager) Items(ctx context.Context) ([]Item, error) {
	var items []Item
	err := localstore.GetJSON(ctx, m.store, localstore.KeyCartItems, &items)
	if err == localstore.ErrNotFound {
		return []Item{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read local cart: %w", err)
	}
	return items, nil
}

// AddOrUpdate sets the cart line for item.ID to item.Quantity. The
// quantity is absolute, not a delta: callers compute the new quantity
// before calling. The local write happens first and is the operation's
// outcome; the remote mirror is updated best-effort afterwards.
//
// Concurrent calls on the same product id resolve last-write-wins;
// there is no per-item versioning.
func (m *Manager) AddOrUpdate(ctx context.Context, item Item, isNew bool) error {
	if err := validateProductID(item.ID); err != nil {
		return err
	}
	if item.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", item.Quantity)
	}

	m.mu.Lock()
	items, err := m.Items(ctx)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	found := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity = item.Quantity
			found = true
			break
		}
	}

	if !found {
		if !isNew {
			// Caller computed a quantity for an entry that no longer
			// exists; nothing to update.
			m.mu.Unlock()
			m.log.WithField("product_id", item.ID).Warn("Cart update for missing item skipped")
			return nil
		}
		items = append(items, item)
	}

	if err := localstore.SetJSON(ctx, m.store, localstore.KeyCartItems, items); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to persist local cart: %w", err)
	}
	m.mu.Unlock()

	// Mirror the change. A failure here never rolls back the local
	// write; it only becomes a log line.
	if err := m.backend.SmartOperation(ctx, item.ID, item.Quantity, isNew); err != nil {
		m.log.WithFields(logrus.Fields{
			"product_id": item.ID,
			"quantity":   item.Quantity,
		}).WithError(err).Warn("Cart mirror update failed, local cart kept")
	}

	return nil
}

// Remove decrements the cart line for productID by one, deleting the
// entry when the quantity would drop to zero. Removing an id that is
// not in the cart is a no-op.
func (m *Manager) Remove(ctx context.Context, productID string) error {
	if err := validateProductID(productID); err != nil {
		return err
	}

	m.mu.Lock()
	items, err := m.Items(ctx)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	index := -1
	for i := range items {
		if items[i].ID == productID {
			index = i
			break
		}
	}
	if index == -1 {
		m.mu.Unlock()
		return nil
	}

	if items[index].Quantity > 1 {
		items[index].Quantity--
		newQuantity := items[index].Quantity

		if err := localstore.SetJSON(ctx, m.store, localstore.KeyCartItems, items); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("failed to persist local cart: %w", err)
		}
		m.mu.Unlock()

		if err := m.backend.SmartOperation(ctx, productID, newQuantity, false); err != nil {
			m.log.WithField("product_id", productID).WithError(err).
				Warn("Cart mirror decrement failed, local cart kept")
		}
		return nil
	}

	// Last unit: drop the entry entirely. Quantity zero is never stored.
	items = append(items[:index], items[index+1:]...)
	if err := localstore.SetJSON(ctx, m.store, localstore.KeyCartItems, items); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to persist local cart: %w", err)
	}
	m.mu.Unlock()

	if err := m.backend.DeleteItem(ctx, productID); err != nil {
		m.log.WithField("product_id", productID).WithError(err).
			Warn("Cart mirror delete failed, falling back to zero-quantity update")

		// Fallback: set the remote quantity to zero. If that fails too,
		// the local removal is still final.
		if err := m.backend.SmartOperation(ctx, productID, 0, false); err != nil {
			m.log.WithField("product_id", productID).WithError(err).
				Warn("Cart mirror zero-quantity fallback failed, local removal kept")
		}
	}

	return nil
}

// Clear drops the whole local cart
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Delete(ctx, localstore.KeyCartItems)
}

// Sync runs a full reconciliation pass: read local, read remote,
// compare as (productId, quantity) pairs, and push every local item to
// the backend when they differ. A fetch failure on the remote side is
// treated as an empty remote cart. Per-item push failures are recorded
// as issues without stopping the pass.
//
// The returned error is non-nil only when the local store itself could
// not be read; network-level failures never surface as errors.
func (m *Manager) Sync(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	userID, err := m.sessions.CurrentUserID(ctx)
	if err != nil || userID == "" {
		result.Issues = append(result.Issues, "No user logged in")
		return result, nil
	}

	m.mu.Lock()
	localItems, err := m.Items(ctx)
	m.mu.Unlock()
	if err != nil {
		result.Issues = append(result.Issues, fmt.Sprintf("Local cart read failed: %v", err))
		return result, err
	}

	backendItems, err := m.backend.GetCart(ctx, userID)
	if err != nil {
		// Remote unavailability is routine: reconcile against an empty
		// remote cart and push everything local.
		m.log.WithField("user_id", userID).WithError(err).
			Warn("Remote cart fetch failed, treating remote cart as empty")
		backendItems = []Item{}
	}

	result.LocalItems = localItems
	result.BackendItems = backendItems

	sortByID(result.LocalItems)
	sortByID(result.BackendItems)

	if !sameContents(result.LocalItems, result.BackendItems) {
		backendIDs := make(map[string]bool, len(result.BackendItems))
		for _, item := range result.BackendItems {
			backendIDs[item.ID] = true
		}

		for _, item := range result.LocalItems {
			isNew := !backendIDs[item.ID]
			if err := m.backend.SmartOperation(ctx, item.ID, item.Quantity, isNew); err != nil {
				result.Issues = append(result.Issues,
					fmt.Sprintf("Failed to push %s: %v", item.ID, err))
			}
		}
	}

	result.Synced = true
	result.Success = true
	return result, nil
}

// nilProductID is the sentinel some screens send for an unresolved product
var nilProductID = uuid.Nil.String()

func validateProductID(productID string) error {
	if productID == "" || productID == nilProductID {
		return fmt.Errorf("invalid product id %q", productID)
	}
	return nil
}
