package model

import (
	"time"
)

// Role classifies what a user may do in the system.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleTechnician    Role = "technician"
	RoleCustomer      Role = "customer"
)

// EmployeeStatus tracks staff availability. Customers carry no status.
type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "active"
	StatusOnLeave  EmployeeStatus = "on_leave"
	StatusVacation EmployeeStatus = "vacation"
)

// User represents an account in the pharmacy: staff or customer.
type User struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	FirstName    string          `json:"first_name" gorm:"size:255;not null"`
	LastName     string          `json:"last_name" gorm:"size:255;not null"`
	Username     string          `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email        string          `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string          `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role            `json:"role" gorm:"type:varchar(20);not null;default:'customer';index"`
	Status       *EmployeeStatus `json:"status,omitempty" gorm:"type:varchar(20)"`
	Active       bool            `json:"active" gorm:"default:true"`
	Address      string          `json:"address,omitempty" gorm:"size:255"`
	Phone        string          `json:"phone,omitempty" gorm:"size:50"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations. The user owns all of these; deleting the user removes them.
	Tasks         []Task         `json:"tasks,omitempty" gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	WorkHours     []WorkHour     `json:"work_hours,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Notifications []Notification `json:"notifications,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CartItems     []CartItem     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
