package models

import "time"

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ImageUrl    *string   `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	SoldOut     bool      `gorm:"not null;default:false" json:"sold_out"`
	LowStock    bool      `gorm:"not null;default:false" json:"low_stock"`
	IsNew       bool      `gorm:"not null;default:false" json:"is_new"`
	Featured    bool      `gorm:"not null;default:false" json:"featured"`
	ChefsPick   bool      `gorm:"not null;default:false" json:"chefs_pick"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// IsOrderable diz se o item pode entrar em um pedido novo.
// Item inativo, indisponível ou esgotado nunca é vendável; se tiver
// categoria, ela precisa estar ativa e visível no cardápio.
func (m *MenuItem) IsOrderable() bool {
	if !m.Active || !m.Available || m.SoldOut {
		return false
	}
	if m.CategoryID != nil {
		if m.Category == nil {
			return false
		}
		return m.Category.Active && m.Category.Visible
	}
	return true
}
