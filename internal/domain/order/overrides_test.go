// internal/domain/order/overrides_test.go
package order

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/agrimart-client/internal/infrastructure/localstore"
)

// fakeStatusBackend records mirrored status updates
type fakeStatusBackend struct {
	fail    bool
	updates []statusUpdateCall
}

type statusUpdateCall struct {
	orderID  string
	statusID int
	notes    string
}

func (f *fakeStatusBackend) UpdateOrderStatus(ctx context.Context, orderID string, statusID int, notes string) error {
	if f.fail {
		return errors.New("backend unavailable")
	}
	f.updates = append(f.updates, statusUpdateCall{orderID, statusID, notes})
	return nil
}

func newTestOverrideStore(t *testing.T, backend *fakeStatusBackend) *OverrideStore {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewOverrideStore(localstore.NewMemoryStore(), backend, log)
}

func TestSaveAndGet(t *testing.T) {
	backend := &fakeStatusBackend{}
	o := newTestOverrideStore(t, backend)
	ctx := context.Background()

	require.NoError(t, o.Save(ctx, "ord-1", StatusShipped, "packed and handed over"))

	status, ok := o.Get(ctx, "ord-1")
	require.True(t, ok)
	assert.Equal(t, StatusShipped, status)

	require.Len(t, backend.updates, 1)
	assert.Equal(t, statusUpdateCall{"ord-1", 3, "packed and handed over"}, backend.updates[0])
}

func TestSaveLastWriteWins(t *testing.T) {
	o := newTestOverrideStore(t, &fakeStatusBackend{})
	ctx := context.Background()

	require.NoError(t, o.Save(ctx, "ord-1", StatusShipped, ""))
	require.NoError(t, o.Save(ctx, "ord-1", StatusDelivered, ""))

	status, ok := o.Get(ctx, "ord-1")
	require.True(t, ok)
	assert.Equal(t, StatusDelivered, status)
}

func TestSaveSucceedsWhenMirrorFails(t *testing.T) {
	o := newTestOverrideStore(t, &fakeStatusBackend{fail: true})
	ctx := context.Background()

	require.NoError(t, o.Save(ctx, "ord-1", StatusProcessing, ""))

	status, ok := o.Get(ctx, "ord-1")
	require.True(t, ok)
	assert.Equal(t, StatusProcessing, status)
}

func TestSaveValidatesArguments(t *testing.T) {
	o := newTestOverrideStore(t, &fakeStatusBackend{})
	ctx := context.Background()

	assert.Error(t, o.Save(ctx, "", StatusShipped, ""))
	assert.Error(t, o.Save(ctx, "ord-1", "", ""))
}

func TestGetUnsetOrder(t *testing.T) {
	o := newTestOverrideStore(t, &fakeStatusBackend{})

	_, ok := o.Get(context.Background(), "ord-9")
	assert.False(t, ok)
}

func TestEffectiveStatusPrecedence(t *testing.T) {
	o := newTestOverrideStore(t, &fakeStatusBackend{})
	ctx := context.Background()

	ord := Order{ID: "ord-1", Status: StatusProcessing}
	assert.Equal(t, StatusProcessing, o.EffectiveStatus(ctx, ord),
		"server status shows when no override exists")

	require.NoError(t, o.Save(ctx, "ord-1", StatusShipped, ""))
	assert.Equal(t, StatusShipped, o.EffectiveStatus(ctx, ord),
		"the local override wins over the server status")

	assert.Equal(t, DefaultStatus, o.EffectiveStatus(ctx, Order{ID: "ord-2"}),
		"no override and no server status falls back to the default")
}

func TestClearAndClearAll(t *testing.T) {
	o := newTestOverrideStore(t, &fakeStatusBackend{})
	ctx := context.Background()

	require.NoError(t, o.Save(ctx, "ord-1", StatusShipped, ""))
	require.NoError(t, o.Save(ctx, "ord-2", StatusCancelled, ""))

	require.NoError(t, o.Clear(ctx, "ord-1"))
	_, ok := o.Get(ctx, "ord-1")
	assert.False(t, ok)
	_, ok = o.Get(ctx, "ord-2")
	assert.True(t, ok)

	require.NoError(t, o.ClearAll(ctx))
	_, ok = o.Get(ctx, "ord-2")
	assert.False(t, ok)

	// Clearing an unset order is a no-op
	require.NoError(t, o.Clear(ctx, "ord-9"))
}

func TestFilterByStatus(t *testing.T) {
	o := newTestOverrideStore(t, &fakeStatusBackend{})
	ctx := context.Background()

	orders := []Order{
		{ID: "ord-1", Status: StatusProcessing},
		{ID: "ord-2", Status: StatusShipped},
		{ID: "ord-3", Status: StatusProcessing},
	}

	// Override moves ord-1 out of processing
	require.NoError(t, o.Save(ctx, "ord-1", StatusShipped, ""))

	matched := o.FilterByStatus(ctx, orders, "processing")
	require.Len(t, matched, 1)
	assert.Equal(t, "ord-3", matched[0].ID)
	assert.Equal(t, StatusProcessing, matched[0].EffectiveStatus,
		"matches carry the computed effective status")

	shipped := o.FilterByStatus(ctx, orders, "SHIPPED")
	assert.Len(t, shipped, 2, "matching is case-insensitive")
}

func TestAnnotate(t *testing.T) {
	o := newTestOverrideStore(t, &fakeStatusBackend{})
	ctx := context.Background()

	require.NoError(t, o.Save(ctx, "ord-1", StatusDelivered, ""))

	orders := []Order{
		{ID: "ord-1", Status: StatusShipped},
		{ID: "ord-2", Status: StatusConfirmed},
	}
	o.Annotate(ctx, orders)

	assert.Equal(t, StatusDelivered, orders[0].EffectiveStatus)
	assert.Equal(t, StatusConfirmed, orders[1].EffectiveStatus)
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		status   string
		category string
	}{
		{StatusConfirmed, CategoryNew},
		{"confirmed", CategoryNew},
		{StatusProcessing, CategoryProcessing},
		{StatusShipped, CategoryCompleted},
		{StatusDelivered, CategoryCompleted},
		{StatusCancelled, CategoryCancelled},
		{"something else", CategoryAll},
		{"", CategoryAll},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.category, CategoryFor(tt.status), "status %q", tt.status)
	}
}

func TestStatusID(t *testing.T) {
	assert.Equal(t, 1, StatusID("Confirmed"))
	assert.Equal(t, 1, StatusID("confirmed"))
	assert.Equal(t, 5, StatusID(StatusCancelled))
	assert.Equal(t, 0, StatusID("unknown"), "unknown statuses map to pending")
}
