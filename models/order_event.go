package models

import "time"

// OrderEvent registra cada mutação de pedido. O ID auto-incremental serve de
// cursor monotônico para os painéis que fazem polling: o cliente guarda o
// último ID visto e pede só o que veio depois, em vez de comparar snapshots.
type OrderEvent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	EventType OrderEventType `gorm:"type:varchar(20);not null" json:"event_type"`
	Status    OrderStatus    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

type OrderEventType string

const (
	EventOrderCreated       OrderEventType = "created"
	EventOrderStatusChanged OrderEventType = "status_changed"
	EventOrderDeleted       OrderEventType = "deleted"
)
