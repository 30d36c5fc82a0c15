package models

import "time"

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	ClientName string      `gorm:"type:varchar(255);not null" json:"client_name"`
	Note       string      `gorm:"type:text" json:"note"`
	Total      float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'awaiting_payment'" json:"status"`
	CreatedAt  time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"not null" json:"updated_at"`
	Items      []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}
