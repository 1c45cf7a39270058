package course

import "gorm.io/gorm"

// UserProgress tracks a user's completion of a single chapter
type UserProgress struct {
	gorm.Model
	UserID      uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_progress_user_chapter"`
	ChapterID   uint `json:"chapter_id" gorm:"index;not null;uniqueIndex:idx_progress_user_chapter"`
	IsCompleted bool `json:"is_completed" gorm:"default:false"`
}
