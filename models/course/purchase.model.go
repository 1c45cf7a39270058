package course

import "gorm.io/gorm"

// Purchase is a permanent access grant for a (user, course) pair.
// Rows are only ever created, never updated or deleted.
type Purchase struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_purchase_user_course"`
	CourseID uint `json:"course_id" gorm:"index;not null;uniqueIndex:idx_purchase_user_course"`
}
