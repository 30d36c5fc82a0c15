package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/andrelmbraga/barraquinha/models"
)

// feedPageSize limita quantos eventos saem por poll.
const feedPageSize = 100

// recordEvent grava o evento na mesma transação da mutação, garantindo que
// o cursor nunca aponte para um pedido que não foi de fato gravado.
func recordEvent(tx *gorm.DB, order *models.Order, eventType models.OrderEventType) error {
	event := models.OrderEvent{
		OrderID:   order.ID,
		EventType: eventType,
		Status:    order.Status,
		CreatedAt: time.Now(),
	}
	return tx.Create(&event).Error
}

// OrderFeed é a resposta do changefeed: os eventos após o cursor pedido e o
// cursor mais novo para o próximo poll.
type OrderFeed struct {
	Events []models.OrderEvent `json:"events"`
	Cursor uint                `json:"cursor"`
}

// Feed devolve os eventos de pedido com id maior que after, do mais antigo
// para o mais novo. O consumidor guarda o cursor devolvido e o repassa no
// próximo poll, em vez de comparar snapshots completos.
func (s *OrderService) Feed(after uint) (*OrderFeed, error) {
	var events []models.OrderEvent
	if err := s.DB.Where("id > ?", after).
		Order("id asc").
		Limit(feedPageSize).
		Find(&events).Error; err != nil {
		return nil, &StorageError{Op: "buscar feed de pedidos", Err: err}
	}

	cursor := after
	if len(events) > 0 {
		cursor = events[len(events)-1].ID
	}
	return &OrderFeed{Events: events, Cursor: cursor}, nil
}
