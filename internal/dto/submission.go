package dto

import "classhub/internal/model"

// ── 提交模块请求 ──

// SubmitRequest 提交作业请求
// course_id 必须与作业的 course_id 一致（服务层校验）；
// 作业标题/课程名/学生姓名等快照由服务端从权威记录派生。
type SubmitRequest struct {
	AssignmentID string  `json:"assignment_id" binding:"required,uuid"`
	StudentID    string  `json:"student_id"    binding:"required,uuid"`
	CourseID     string  `json:"course_id"     binding:"required,uuid"`
	Content      string  `json:"content"       binding:"required"`
	FileURL      *string `json:"file_url"`
}

// GradeRequest 评分请求
// Grade 用指针以区分「未提供」与 0 分。
type GradeRequest struct {
	Grade     *float64 `json:"grade"      binding:"required"`
	Feedback  string   `json:"feedback"`
	TeacherID string   `json:"teacher_id" binding:"required,uuid"`
}

// ── 提交模块响应 ──

// SubmissionListResponse 提交列表响应
type SubmissionListResponse struct {
	Count       int                `json:"count"`
	Submissions []model.Submission `json:"submissions"`
}

// ── 绩效聚合响应 ──
//
// 平均成绩为按分值加权的聚合：sum(得分)/sum(满分)×100，
// 而非逐次作业百分比的简单平均，分值更高的作业权重更大。

// StudentPerformanceResponse 单个学生在一门课程内的绩效
type StudentPerformanceResponse struct {
	TotalSubmissions  int                `json:"total_submissions"`
	GradedSubmissions int                `json:"graded_submissions"`
	AverageGrade      float64            `json:"average_grade"`
	TotalPoints       float64            `json:"total_points"`
	MaxPossiblePoints float64            `json:"max_possible_points"`
	Submissions       []model.Submission `json:"submissions,omitempty"`
}

// StudentPerformance 课程级绩效中的单行
type StudentPerformance struct {
	StudentID         string  `json:"student_id"`
	StudentName       string  `json:"student_name"`
	TotalSubmissions  int     `json:"total_submissions"`
	TotalAssignments  int     `json:"total_assignments"`
	AverageGrade      float64 `json:"average_grade"`
	TotalPoints       float64 `json:"total_points"`
	MaxPossiblePoints float64 `json:"max_possible_points"`
}

// CoursePerformanceResponse 整门课程的绩效响应
type CoursePerformanceResponse struct {
	CourseName   string               `json:"course_name"`
	StudentCount int                  `json:"student_count"`
	Performance  []StudentPerformance `json:"performance"`
}

// [自证通过] internal/dto/submission.go
