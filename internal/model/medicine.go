package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine is the single source of truth for stock on hand.
// Quantity must stay >= 0 at all times; every change to it goes through
// the inventory service so a StockLog entry is written in the same
// transaction.
type Medicine struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"size:255;not null;index"`
	Description    string          `json:"description,omitempty" gorm:"type:text"`
	Manufacturer   string          `json:"manufacturer,omitempty" gorm:"size:255"`
	DosageForm     string          `json:"dosage_form,omitempty" gorm:"size:100"` // tablet, capsule, syrup
	Strength       string          `json:"strength,omitempty" gorm:"size:50"`     // e.g. 500mg
	Quantity       int             `json:"quantity" gorm:"not null;default:0"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty" gorm:"type:date"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null;default:0"`
	TypeID         uint            `json:"type_id" gorm:"not null;index"`
	SupplierID     *uint           `json:"supplier_id,omitempty" gorm:"index"`
	ImagePath      string          `json:"image_path,omitempty" gorm:"size:255"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relations
	Type      MedicineType `json:"type,omitempty" gorm:"foreignKey:TypeID"`
	Supplier  *Supplier    `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	StockLogs []StockLog   `json:"-" gorm:"foreignKey:MedicineID;constraint:OnDelete:CASCADE"`
	CartItems []CartItem   `json:"-" gorm:"foreignKey:MedicineID;constraint:OnDelete:CASCADE"`
}

// StockLog is an append-only audit record of a quantity change.
// Entries are only ever created inside the transaction that applied the
// change, so the trail can never disagree with the ledger.
type StockLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	MedicineID uint      `json:"medicine_id" gorm:"not null;index"`
	Change     int       `json:"change" gorm:"not null"` // signed delta
	Reason     string    `json:"reason,omitempty" gorm:"size:255"`
	CreatedAt  time.Time `json:"created_at"`

	Medicine Medicine `json:"-" gorm:"foreignKey:MedicineID"`
}
