package course

import "gorm.io/gorm"

// Course represents a learning course owned by an instructor
type Course struct {
	gorm.Model
	UserID      uint     `json:"user_id" gorm:"index;not null"` // Owning instructor
	Title       string   `json:"title" gorm:"not null"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Price       *float64 `json:"price"`       // nil until set; 0 means free, otherwise >= 1
	CategoryID  *uint    `json:"category_id"` // nil until set
	IsPublished bool     `json:"is_published" gorm:"default:false"`
	IsDeleted   bool     `gorm:"default:false"`
}

// IsFree reports whether the course can be enrolled without payment
func (c *Course) IsFree() bool {
	return c.Price == nil || *c.Price == 0
}
