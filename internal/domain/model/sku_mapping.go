package model

import "time"

// WooCommerceのSKUと社内コースの対応表。取り込み時はis_active=trueのみ参照する。
type SkuMapping struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Sku         string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"sku"`
	CourseID    string    `gorm:"type:uuid;not null;index" json:"course_id"`
	ProductName string    `gorm:"type:varchar(255)" json:"product_name"`
	Price       *int64    `json:"price"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
