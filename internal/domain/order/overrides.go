// internal/domain/order/overrides.go
package order

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/agrimart-client/internal/infrastructure/localstore"
)

// StatusBackend mirrors an override to the authoritative order record.
// The call is best-effort: the override stays local until the backend
// catches up.
type StatusBackend interface {
	UpdateOrderStatus(ctx context.Context, orderID string, statusID int, notes string) error
}

// OverrideStore maintains the local orderId -> last-known-status map
// that shadows server-reported order status. It is advisory UI state,
// not a system of record: reads degrade to the fallback instead of
// failing.
type OverrideStore struct {
	store   localstore.Store
	backend StatusBackend
	log     *logrus.Logger

	// Serializes read-modify-write cycles on the override map.
	mu sync.Mutex
}

// NewOverrideStore creates an order status override store
func NewOverrideStore(store localstore.Store, backend StatusBackend, log *logrus.Logger) *OverrideStore {
	return &OverrideStore{
		store:   store,
		backend: backend,
		log:     log,
	}
}

// Save records status as the live override for orderID, overwriting
// any previous entry, and mirrors the change to the backend
// best-effort. Only a local store failure is returned.
func (o *OverrideStore) Save(ctx context.Context, orderID, status, notes string) error {
	if orderID == "" {
		return fmt.Errorf("order id is required")
	}
	if status == "" {
		return fmt.Errorf("status is required")
	}

	o.mu.Lock()
	overrides, err := o.load(ctx)
	if err != nil {
		o.mu.Unlock()
		return err
	}

	overrides[orderID] = StatusUpdate{
		OrderID:   orderID,
		Status:    status,
		UpdatedAt: time.Now().UTC(),
	}

	if err := localstore.SetJSON(ctx, o.store, localstore.KeyOrderOverrides, overrides); err != nil {
		o.mu.Unlock()
		return fmt.Errorf("failed to persist status overrides: %w", err)
	}
	o.mu.Unlock()

	if err := o.backend.UpdateOrderStatus(ctx, orderID, StatusID(status), notes); err != nil {
		o.log.WithFields(logrus.Fields{
			"order_id": orderID,
			"status":   status,
		}).WithError(err).Warn("Order status mirror update failed, local override kept")
	}

	return nil
}

// Get returns the live override for orderID, if any. Store failures
// are logged and reported as "not set".
func (o *OverrideStore) Get(ctx context.Context, orderID string) (string, bool) {
	o.mu.Lock()
	overrides, err := o.load(ctx)
	o.mu.Unlock()
	if err != nil {
		o.log.WithField("order_id", orderID).WithError(err).Warn("Failed to read status overrides")
		return "", false
	}

	update, ok := overrides[orderID]
	if !ok {
		return "", false
	}
	return update.Status, true
}

// EffectiveStatus computes the status a screen should display: the
// local override when present, else the server-reported status, else
// the default. This is the only sanctioned way to read an order's
// status for display.
func (o *OverrideStore) EffectiveStatus(ctx context.Context, ord Order) string {
	if status, ok := o.Get(ctx, ord.ID); ok {
		return status
	}
	if ord.Status != "" {
		return ord.Status
	}
	return DefaultStatus
}

// Clear removes the override for one order
func (o *OverrideStore) Clear(ctx context.Context, orderID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	overrides, err := o.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := overrides[orderID]; !ok {
		return nil
	}

	delete(overrides, orderID)
	if err := localstore.SetJSON(ctx, o.store, localstore.KeyOrderOverrides, overrides); err != nil {
		return fmt.Errorf("failed to persist status overrides: %w", err)
	}
	return nil
}

// ClearAll removes every override
func (o *OverrideStore) ClearAll(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.store.Delete(ctx, localstore.KeyOrderOverrides)
}

// FilterByStatus returns the orders whose effective status matches
// targetStatus (case-insensitive), each annotated with the computed
// EffectiveStatus so downstream screens never recompute it.
func (o *OverrideStore) FilterByStatus(ctx context.Context, orders []Order, targetStatus string) []Order {
	matched := make([]Order, 0, len(orders))
	for _, ord := range orders {
		effective := o.EffectiveStatus(ctx, ord)
		if strings.EqualFold(effective, targetStatus) {
			ord.EffectiveStatus = effective
			matched = append(matched, ord)
		}
	}
	return matched
}

// Annotate fills EffectiveStatus on every order in place
func (o *OverrideStore) Annotate(ctx context.Context, orders []Order) {
	for i := range orders {
		orders[i].EffectiveStatus = o.EffectiveStatus(ctx, orders[i])
	}
}

func (o *OverrideStore) load(ctx context.Context) (map[string]StatusUpdate, error) {
	overrides := make(map[string]StatusUpdate)
	err := localstore.GetJSON(ctx, o.store, localstore.KeyOrderOverrides, &overrides)
	if err == localstore.ErrNotFound {
		return overrides, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read status overrides: %w", err)
	}
	return overrides, nil
}
