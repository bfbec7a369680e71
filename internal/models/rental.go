package models

import "time"

type Rental struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null;index" json:"client_id"`

	CopyID uint `gorm:"not null;index" json:"copy_id"`
	Copy   Copy `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"copy"`

	RentalDate time.Time  `gorm:"not null" json:"rental_date"`
	DueDate    time.Time  `gorm:"not null" json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	FineValue  float64    `gorm:"default:0" json:"fine_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
