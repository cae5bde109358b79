package model

import "time"

// TemperatureHumidityLog is one environmental reading from the storage room.
type TemperatureHumidityLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Temperature float64   `json:"temperature" gorm:"not null"`
	Humidity    float64   `json:"humidity" gorm:"not null"`
	RecordedAt  time.Time `json:"recorded_at" gorm:"not null;index"`
}
