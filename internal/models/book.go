package models

import "time"

type Book struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ISBN            string `gorm:"size:13;uniqueIndex;not null" json:"isbn"`
	Title           string `gorm:"size:200;not null" json:"title"`
	PublicationYear int    `json:"publication_year"`
	Publisher       string `gorm:"size:100" json:"publisher"`

	AuthorID *uint  `json:"author_id"`
	Author   Author `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"author"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
