package model

// MedicineType is a lookup category for medicines (analgesic, antibiotic, ...).
type MedicineType struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

// Supplier is a lookup record for medicine suppliers.
type Supplier struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Address string `json:"address,omitempty" gorm:"size:255"`
	Phone   string `json:"phone,omitempty" gorm:"size:50"`
	Email   string `json:"email,omitempty" gorm:"size:255"`
}
