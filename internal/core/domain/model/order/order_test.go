package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress(t *testing.T) order.Address {
	t.Helper()
	address, err := order.NewAddress(
		"Jordan Baker", "+15550100", "12 Harbor St", "4", "", "", "Downtown", "Springfield", "")
	require.NoError(t, err)
	return address
}

func validItems(t *testing.T) []order.Item {
	t.Helper()
	first, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Ceramic mug", 2, 450)
	require.NoError(t, err)
	second, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Pour-over kettle", 1, 3100)
	require.NoError(t, err)
	return []order.Item{first, second}
}

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-TEST-0001", kernel.NewUUID(), validItems(t),
		4000, 500, 300, 4800,
		validAddress(t), order.PaymentCard,
		time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

// advanceTo walks the order through the forward chain up to target.
func advanceTo(t *testing.T, o *order.Order, target order.Status, at time.Time) {
	t.Helper()
	for o.Status() != target {
		next, ok := o.Status().Next()
		require.True(t, ok)
		_, err := o.Advance(next, "", at)
		require.NoError(t, err)
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should create valid pending order with initial tracking entry", func(t *testing.T) {
		o := placedOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "ORD-TEST-0001", o.Number())
		assert.Len(t, o.Items(), 2)
		assert.Equal(t, int64(4800), o.Total())

		tracking := o.Tracking()
		require.Len(t, tracking, 1)
		assert.Equal(t, order.Pending, tracking[0].Status())
		assert.Equal(t, "order placed", tracking[0].Message())
		assert.Equal(t, o.CreatedAt(), tracking[0].OccurredAt())
	})

	t.Run("should fail when total does not add up", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "ORD-TEST-0002", kernel.NewUUID(), validItems(t),
			4000, 500, 300, 5000,
			validAddress(t), order.PaymentCard,
			time.Now().UTC(),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "total")
	})

	t.Run("should fail with negative amounts", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "ORD-TEST-0003", kernel.NewUUID(), validItems(t),
			-100, 500, 300, 700,
			validAddress(t), order.PaymentCard,
			time.Now().UTC(),
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "ORD-TEST-0004", kernel.NewUUID(), nil,
			0, 0, 0, 0,
			validAddress(t), order.PaymentCashOnDelivery,
			time.Now().UTC(),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should fail with empty number and invalid customer", func(t *testing.T) {
		var invalidCustomer kernel.UUID

		o, err := order.NewOrder(
			kernel.NewUUID(), "", invalidCustomer, validItems(t),
			4000, 500, 300, 4800,
			validAddress(t), order.PaymentCard,
			time.Now().UTC(),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "number")
		assert.Contains(t, err.Error(), "UUID")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should pass for constructed order", func(t *testing.T) {
		require.NoError(t, placedOrder(t).Validate())
	})

	t.Run("should fail for directly instantiated struct", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should fail for nil order", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Advance(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	t.Run("should append tracking entry and update status", func(t *testing.T) {
		o := placedOrder(t)

		event, err := o.Advance(order.Confirmed, "payment verified", now)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, order.Confirmed, event.Status())
		assert.Equal(t, "payment verified", event.Message())
		assert.Equal(t, now, event.OccurredAt())

		tracking := o.Tracking()
		require.Len(t, tracking, 2)
		assert.Equal(t, event, tracking[1])
		assert.Equal(t, o.Status(), o.LastTrackingEvent().Status())
	})

	t.Run("should walk the full chain to delivered", func(t *testing.T) {
		o := placedOrder(t)

		advanceTo(t, o, order.Delivered, now)

		assert.Equal(t, order.Delivered, o.Status())
		assert.Len(t, o.Tracking(), 5)

		deliveredAt, ok := o.DeliveredAt()
		require.True(t, ok)
		assert.Equal(t, now, deliveredAt)
	})

	t.Run("should not mutate on rejected transition", func(t *testing.T) {
		o := placedOrder(t)

		_, err := o.Advance(order.Shipping, "", now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Len(t, o.Tracking(), 1)
	})

	t.Run("should not mutate on no-op request", func(t *testing.T) {
		o := placedOrder(t)

		_, err := o.Advance(order.Pending, "", now)

		require.ErrorIs(t, err, order.ErrTransitionNoOp)
		assert.Len(t, o.Tracking(), 1)
	})

	t.Run("should clamp timestamps to keep the log monotonic", func(t *testing.T) {
		o := placedOrder(t)
		behind := o.CreatedAt().Add(-time.Hour)

		event, err := o.Advance(order.Confirmed, "", behind)

		require.NoError(t, err)
		assert.Equal(t, o.CreatedAt(), event.OccurredAt())

		tracking := o.Tracking()
		for i := 1; i < len(tracking); i++ {
			assert.False(t, tracking[i].OccurredAt().Before(tracking[i-1].OccurredAt()))
		}
	})
}

func TestOrder_Cancel(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	t.Run("should cancel pending order", func(t *testing.T) {
		o := placedOrder(t)

		event, err := o.Cancel("changed my mind", now)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.Cancelled, event.Status())
		assert.Equal(t, "changed my mind", event.Message())
	})

	t.Run("should cancel confirmed order", func(t *testing.T) {
		o := placedOrder(t)
		advanceTo(t, o, order.Confirmed, now)

		_, err := o.Cancel("", now)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should reject cancellation once preparation started", func(t *testing.T) {
		for _, status := range []order.Status{order.Preparing, order.Shipping, order.Delivered} {
			o := placedOrder(t)
			advanceTo(t, o, status, now)

			_, err := o.Cancel("too late", now)

			require.ErrorIs(t, err, order.ErrInvalidTransition, status.String())
			assert.Equal(t, status, o.Status())
		}
	})
}

func TestRestoreOrder(t *testing.T) {
	restore := func(t *testing.T, status order.Status, tracking []order.TrackingEvent) (*order.Order, error) {
		t.Helper()
		return order.RestoreOrder(
			kernel.NewUUID(), "ORD-TEST-0005", kernel.NewUUID(), validItems(t),
			4000, 500, 300, 4800,
			validAddress(t), order.PaymentWallet,
			status, tracking,
			time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		)
	}

	event := func(t *testing.T, status order.Status, at time.Time) order.TrackingEvent {
		t.Helper()
		e, err := order.NewTrackingEvent(status, "", at)
		require.NoError(t, err)
		return e
	}

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	t.Run("should restore order with consistent tracking", func(t *testing.T) {
		tracking := []order.TrackingEvent{
			event(t, order.Pending, base),
			event(t, order.Confirmed, base.Add(time.Hour)),
		}

		o, err := restore(t, order.Confirmed, tracking)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, tracking, o.Tracking())
	})

	t.Run("should reject empty tracking log", func(t *testing.T) {
		_, err := restore(t, order.Pending, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tracking")
	})

	t.Run("should reject log not starting with pending", func(t *testing.T) {
		tracking := []order.TrackingEvent{event(t, order.Confirmed, base)}

		_, err := restore(t, order.Confirmed, tracking)
		require.Error(t, err)
	})

	t.Run("should reject log whose last entry disagrees with status", func(t *testing.T) {
		tracking := []order.TrackingEvent{
			event(t, order.Pending, base),
			event(t, order.Confirmed, base.Add(time.Hour)),
		}

		_, err := restore(t, order.Preparing, tracking)
		require.Error(t, err)
	})

	t.Run("should reject decreasing timestamps", func(t *testing.T) {
		tracking := []order.TrackingEvent{
			event(t, order.Pending, base),
			event(t, order.Confirmed, base.Add(-time.Minute)),
		}

		_, err := restore(t, order.Confirmed, tracking)
		require.Error(t, err)
	})
}

func TestOrder_HasItem(t *testing.T) {
	items := validItems(t)
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-TEST-0006", kernel.NewUUID(), items,
		4000, 500, 300, 4800,
		validAddress(t), order.PaymentCard,
		time.Now().UTC(),
	)
	require.NoError(t, err)

	assert.True(t, o.HasItem(items[0].ID()))
	assert.True(t, o.HasItem(items[1].ID()))
	assert.False(t, o.HasItem(kernel.NewUUID()))
}
