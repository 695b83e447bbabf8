package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusExpired   EnrollmentStatus = "expired"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

// (user_id, course_id) につき1行。再購入はupsertで既存行を更新する。
type Enrollment struct {
	ID              string           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string           `gorm:"type:uuid;not null;uniqueIndex:ux_enrollments_user_course,priority:1" json:"user_id"`
	CourseID        string           `gorm:"type:uuid;not null;uniqueIndex:ux_enrollments_user_course,priority:2" json:"course_id"`
	WooOrderID      *string          `gorm:"type:uuid" json:"woo_order_id"`
	Status          EnrollmentStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	AccessGrantedAt time.Time        `gorm:"not null" json:"access_granted_at"`
	AccessUntil     *time.Time       `json:"access_until"`
	CreatedAt       time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
