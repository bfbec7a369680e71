package models

import "time"

// Client é o leitor (patrono) da biblioteca. CPF e e-mail são únicos.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Email     string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	CPF       string `gorm:"size:11;uniqueIndex;not null" json:"cpf"`
	Telephone string `gorm:"size:20;not null" json:"telephone"`
	Address   string `gorm:"size:255;not null" json:"address"`

	Rentals []Rental `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"rentals,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
