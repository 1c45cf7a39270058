package course

import "gorm.io/gorm"

// Attachment is a downloadable file linked to a course
type Attachment struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Name      string `json:"name"`
	URL       string `json:"url" gorm:"not null"`
	IsDeleted bool   `gorm:"default:false"`
}
