package model

import "time"

// コース＋セクション単位のコメント。parent_comment_idで1階層だけスレッド化できる。
type Comment struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID        string    `gorm:"type:uuid;not null;index:idx_comments_scope" json:"course_id"`
	SectionID       string    `gorm:"type:uuid;not null;index:idx_comments_scope" json:"section_id"`
	UserID          string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ParentCommentID *string   `gorm:"type:uuid;index" json:"parent_comment_id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	IsAnonymous     bool      `gorm:"not null;default:false" json:"is_anonymous"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
