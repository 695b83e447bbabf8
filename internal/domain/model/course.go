package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         *int64         `json:"price"`
	DurationHours *int64         `json:"duration_hours"`
	IsActive      bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// コースの1つの学習セクション。order_indexで表示順を持つ。
type CourseSection struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID   string    `gorm:"type:uuid;not null;index" json:"course_id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	VideoURL   string    `gorm:"type:varchar(500)" json:"video_url"`
	OrderIndex int       `gorm:"not null;default:0;index" json:"order_index"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
