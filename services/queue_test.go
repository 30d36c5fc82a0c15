package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrelmbraga/barraquinha/models"
)

func orderWith(id uint, status models.OrderStatus, updatedAt time.Time) models.Order {
	return models.Order{
		ID:        id,
		Status:    status,
		UpdatedAt: updatedAt,
	}
}

func TestComputeQueueTwoTierOrdering(t *testing.T) {
	base := time.Date(2025, 11, 8, 20, 0, 0, 0, time.UTC)

	a := orderWith(1, models.StatusInPreparation, base)
	b := orderWith(2, models.StatusInPreparation, base.Add(2*time.Minute))
	c := orderWith(3, models.StatusVoucherDelivered, base.Add(1*time.Minute))

	// Entrada embaralhada de propósito
	queue := ComputeQueue([]models.Order{c, b, a})

	assert.Len(t, queue, 3)
	assert.Equal(t, uint(1), queue[0].ID, "em preparo mais antigo vem primeiro")
	assert.Equal(t, uint(2), queue[1].ID)
	assert.Equal(t, uint(3), queue[2].ID, "fila de espera vem depois dos em preparo")
}

func TestComputeQueueExcludesNonQueueStatuses(t *testing.T) {
	base := time.Now()

	orders := []models.Order{
		orderWith(1, models.StatusAwaitingPayment, base),
		orderWith(2, models.StatusReady, base),
		orderWith(3, models.StatusDelivered, base),
		orderWith(4, models.StatusVoucherDelivered, base),
	}

	queue := ComputeQueue(orders)

	assert.Len(t, queue, 1)
	assert.Equal(t, uint(4), queue[0].ID)
}

func TestComputeQueueWaitingIsFIFOByStatusEntry(t *testing.T) {
	base := time.Now()

	// O pedido 1 foi criado antes, mas voltou para a fila depois do 2:
	// quem manda é o updated_at, não o created_at.
	older := orderWith(1, models.StatusVoucherDelivered, base.Add(5*time.Minute))
	older.CreatedAt = base.Add(-1 * time.Hour)
	newer := orderWith(2, models.StatusVoucherDelivered, base)
	newer.CreatedAt = base

	queue := ComputeQueue([]models.Order{older, newer})

	assert.Equal(t, uint(2), queue[0].ID)
	assert.Equal(t, uint(1), queue[1].ID)
}

func TestComputeQueueIsIdempotent(t *testing.T) {
	base := time.Now()
	orders := []models.Order{
		orderWith(1, models.StatusVoucherDelivered, base.Add(time.Minute)),
		orderWith(2, models.StatusInPreparation, base),
		orderWith(3, models.StatusVoucherDelivered, base),
	}

	first := ComputeQueue(orders)
	second := ComputeQueue(orders)

	assert.Equal(t, first, second)
}

func TestComputeQueueEmpty(t *testing.T) {
	assert.Empty(t, ComputeQueue(nil))
	assert.Empty(t, ComputeQueue([]models.Order{}))
}
