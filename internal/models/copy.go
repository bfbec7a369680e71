package models

import "time"

type Copy struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookID uint `gorm:"not null;index" json:"book_id"`
	Book   Book `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"book"`

	Code   string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Status string `gorm:"size:20;default:'available'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
