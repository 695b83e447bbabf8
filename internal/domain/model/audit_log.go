package model

import "time"

// コース更新、ユーザー作成など。
type AuditAction string

const (
	AuditActionCreateCourse  AuditAction = "CREATE_COURSE"
	AuditActionUpdateCourse  AuditAction = "UPDATE_COURSE"
	AuditActionDeleteCourse  AuditAction = "DELETE_COURSE"
	AuditActionPublishCourse AuditAction = "PUBLISH_COURSE"
	AuditActionCreateUser    AuditAction = "CREATE_USER"
	AuditActionDeleteUser    AuditAction = "DELETE_USER"
	AuditActionUpdateMapping AuditAction = "UPDATE_SKU_MAPPING"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceCourse     AuditResourceType = "course"
	AuditResourceSection    AuditResourceType = "section"
	AuditResourceUser       AuditResourceType = "user"
	AuditResourceSkuMapping AuditResourceType = "sku_mapping"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」行ったかを残す。
type AuditLog struct {
	ID           string            `gorm:"type:uuid;primaryKey" json:"id"`
	ActorUserID  string            `gorm:"type:uuid;not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"type:varchar(100);not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	DetailJSON string `gorm:"type:text" json:"detail_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
