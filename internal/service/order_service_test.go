package service

import (
	"context"
	"errors"
	"testing"

	"bakery-service/internal/models"
	"bakery-service/internal/store"
	"bakery-service/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSubmission() *transport.OrderSubmission {
	return &transport.OrderSubmission{
		Items: []transport.OrderItemSubmission{
			{ProductID: 1, Name: "단팥빵", NameEn: "Red Bean Bread", Quantity: 2, Price: 3500},
			{ProductID: 2, Name: "크림빵", NameEn: "Cream Bread", Quantity: 1, Price: 4000},
		},
		CustomerInfo: transport.CustomerSubmission{
			Name:          "김민수",
			Phone:         "010-1234-5678",
			ZipCode:       "06236",
			Address:       "서울특별시 강남구 테헤란로 123",
			DetailAddress: "101동 202호",
		},
	}
}

func sampleItems() models.OrderItems {
	return models.OrderItems{
		{ProductID: 1, Name: "단팥빵", NameEn: "Red Bean Bread", Quantity: 2, Price: 3500},
		{ProductID: 2, Name: "크림빵", NameEn: "Cream Bread", Quantity: 1, Price: 4000},
	}
}

func TestBuildOrder(t *testing.T) {
	order := buildOrder(sampleSubmission(), sampleItems(), 3000)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(11000), order.Subtotal)
	assert.Equal(t, int64(3000), order.ShippingFee)
	assert.Equal(t, int64(14000), order.Total)
	assert.Equal(t, "김민수", order.Customer.Name)
	assert.Len(t, order.Items, 2)

	// The number is assigned at persist time, not here.
	assert.Empty(t, order.OrderNumber)
}

func TestBuildOrderIgnoresClientTotals(t *testing.T) {
	// Snapshotted items are the only money input; the submission carries no
	// totals at all, so a tampered price only matters if the snapshot kept it.
	items := sampleItems()
	items[0].Price = 1

	order := buildOrder(sampleSubmission(), items, 3000)
	assert.Equal(t, int64(4002), order.Subtotal)
	assert.Equal(t, int64(7002), order.Total)
}

func newPersistTestService(createFn func(context.Context, *models.Order) error) *OrderService {
	s := NewOrderService(nil, nil, nil, 3000)
	s.createFn = createFn
	return s
}

func TestPersistRetriesOnNumberCollision(t *testing.T) {
	var attempts int
	var numbers []string
	s := newPersistTestService(func(ctx context.Context, order *models.Order) error {
		attempts++
		numbers = append(numbers, order.OrderNumber)
		if attempts <= 2 {
			return store.ErrDuplicateOrderNumber
		}
		order.ID = 42
		return nil
	})

	order := buildOrder(sampleSubmission(), sampleItems(), 3000)
	require.NoError(t, s.persistWithFreshNumber(context.Background(), order))

	assert.Equal(t, 3, attempts)
	assert.Equal(t, int64(42), order.ID)
	// A fresh number on every attempt.
	require.Len(t, numbers, 3)
	assert.NotEqual(t, numbers[0], numbers[1])
	assert.NotEqual(t, numbers[1], numbers[2])
	assert.Equal(t, numbers[2], order.OrderNumber)
}

func TestPersistGivesUpAfterBoundedRetries(t *testing.T) {
	var attempts int
	s := newPersistTestService(func(ctx context.Context, order *models.Order) error {
		attempts++
		return store.ErrDuplicateOrderNumber
	})

	order := buildOrder(sampleSubmission(), sampleItems(), 3000)
	err := s.persistWithFreshNumber(context.Background(), order)

	assert.Equal(t, orderNumberAttempts, attempts)
	assert.True(t, errors.Is(err, store.ErrDuplicateOrderNumber))
}

func TestPersistWrapsStoreFailure(t *testing.T) {
	s := newPersistTestService(func(ctx context.Context, order *models.Order) error {
		return errors.New("connection refused")
	})

	err := s.persistWithFreshNumber(context.Background(), buildOrder(sampleSubmission(), sampleItems(), 3000))
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
}

func TestItemsSubtotal(t *testing.T) {
	items := models.OrderItems{
		{ProductID: 1, Name: "단팥빵", Quantity: 2, Price: 3500},
		{ProductID: 2, Name: "크림빵", Quantity: 1, Price: 4000},
	}

	assert.Equal(t, int64(11000), itemsSubtotal(items))

	// With the default shipping fee the order total comes out to 14000.
	assert.Equal(t, int64(14000), itemsSubtotal(items)+3000)
}

func TestItemsSubtotalEmpty(t *testing.T) {
	assert.Equal(t, int64(0), itemsSubtotal(nil))
}

func TestCanTransitionForward(t *testing.T) {
	forward := []string{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusPreparing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	}

	for i := 0; i < len(forward); i++ {
		for j := i + 1; j < len(forward); j++ {
			assert.True(t, canTransition(forward[i], forward[j]),
				"%s -> %s should be allowed", forward[i], forward[j])
		}
	}
}

func TestCanTransitionRejectsBackward(t *testing.T) {
	cases := [][2]string{
		{models.OrderStatusConfirmed, models.OrderStatusPending},
		{models.OrderStatusShipped, models.OrderStatusPreparing},
		{models.OrderStatusDelivered, models.OrderStatusPending},
		{models.OrderStatusDelivered, models.OrderStatusShipped},
	}

	for _, c := range cases {
		assert.False(t, canTransition(c[0], c[1]),
			"%s -> %s should be rejected", c[0], c[1])
	}
}

func TestCanTransitionCancellation(t *testing.T) {
	for _, from := range []string{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusPreparing,
		models.OrderStatusShipped,
	} {
		assert.True(t, canTransition(from, models.OrderStatusCancelled),
			"%s should be cancellable", from)
	}

	assert.False(t, canTransition(models.OrderStatusDelivered, models.OrderStatusCancelled))
	assert.False(t, canTransition(models.OrderStatusCancelled, models.OrderStatusPending))
}

func TestCanTransitionSameStatus(t *testing.T) {
	// Re-asserting the current status is allowed so an admin can amend the
	// tracking number or notes without changing state, but terminal orders
	// stay frozen even for that.
	assert.True(t, canTransition(models.OrderStatusShipped, models.OrderStatusShipped))
	assert.False(t, canTransition(models.OrderStatusDelivered, models.OrderStatusDelivered))
	assert.False(t, canTransition(models.OrderStatusCancelled, models.OrderStatusCancelled))
}
