package model

import "time"

// Course 课程表 — 对应 courses
// teacher_name 为创建时的不可变快照（系统不提供改名接口，不做自动同步）。
type Course struct {
	CourseID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:text;not null"                             json:"description"`
	Duration    string    `gorm:"type:varchar(50);not null"                      json:"duration"`
	TeacherID   string    `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	TeacherName string    `gorm:"type:varchar(100);not null"                     json:"teacher_name"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联：花名册（选课记录按选课时间升序）
	Enrollments []Enrollment `gorm:"foreignKey:CourseID;references:CourseID" json:"enrolled_students,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// IsOwner 判断 teacherID 是否为本课程的授课教师。
// 所有课程作用域实体（作业/讨论/资料）的教师侧鉴权都以此为准。
func (c *Course) IsOwner(teacherID string) bool {
	return c.TeacherID == teacherID
}

// Enrollment 选课记录表 — 对应 enrollments
// (course_id, student_id) 唯一索引在存储层关闭重复选课的并发窗口，
// 应用层的预检查只负责给出友好错误。
type Enrollment struct {
	EnrollmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"               json:"enrollment_id"`
	CourseID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_course_student" json:"course_id"`
	StudentID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_course_student" json:"student_id"`
	StudentName  string    `gorm:"type:varchar(100);not null"                                   json:"student_name"`
	EnrolledAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                           json:"enrolled_at"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

// [自证通过] internal/model/course.go
