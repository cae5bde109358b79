package model

import "time"

// TaskStatus represents the lifecycle of a staff task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Task is a unit of work assigned to a staff member.
type Task struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title" gorm:"size:255;not null"`
	Description  string     `json:"description,omitempty" gorm:"type:text"`
	Status       TaskStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	AssignedToID *uint      `json:"assigned_to_id,omitempty" gorm:"index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	AssignedTo    *User          `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToID"`
	Notifications []Notification `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// Notification is a short message for a user, optionally tied to a task.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	TaskID    *uint     `json:"task_id,omitempty" gorm:"index"`
	Message   string    `json:"message" gorm:"size:250;not null"`
	IsRead    bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`

	User User  `json:"-" gorm:"foreignKey:UserID"`
	Task *Task `json:"-" gorm:"foreignKey:TaskID"`
}

// WorkHour records hours worked by a staff member on a given date.
type WorkHour struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Date      time.Time `json:"date" gorm:"not null"`
	Hours     float64   `json:"hours" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
