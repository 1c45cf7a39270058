package course

import "gorm.io/gorm"

// Chapter represents a single lesson within a course
type Chapter struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Position    int    `json:"position" gorm:"default:0"` // Zero-based, dense within a course
	IsFree      bool   `json:"is_free" gorm:"default:false"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
