package model

import "time"

// CartItem is one pending (user, medicine, quantity) reservation.
// At most one row exists per (user, medicine); re-adding the same
// medicine increments the quantity instead of duplicating the row.
// Nothing is committed against inventory until checkout.
type CartItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_medicine"`
	MedicineID uint      `json:"medicine_id" gorm:"not null;uniqueIndex:idx_cart_user_medicine"`
	Quantity   int       `json:"quantity" gorm:"not null;default:1"`
	AddedAt    time.Time `json:"added_at" gorm:"not null;autoCreateTime"`

	User     User     `json:"-" gorm:"foreignKey:UserID"`
	Medicine Medicine `json:"medicine,omitempty" gorm:"foreignKey:MedicineID"`
}
