package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"classhub/internal/model"
	"classhub/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.users[id]; !ok {
		return 0, nil
	}
	delete(m.users, id)
	return 1, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments []*model.Enrollment
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	for _, e := range m.enrollments {
		if e.CourseID == enrollment.CourseID && e.StudentID == enrollment.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	if enrollment.EnrollmentID == "" {
		enrollment.EnrollmentID = uuid.NewString()
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now()
	}
	m.enrollments = append(m.enrollments, enrollment)
	return nil
}

func (m *mockEnrollmentRepo) Exists(_ context.Context, courseID, studentID string) (bool, error) {
	for _, e := range m.enrollments {
		if e.CourseID == courseID && e.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEnrollmentRepo) Get(_ context.Context, courseID, studentID string) (*model.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.CourseID == courseID && e.StudentID == studentID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByCourse(_ context.Context, courseID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.CourseID == courseID {
			result = append(result, *e)
		}
	}
	return result, nil
}

// ── Mock CourseRepository ──
//
// GetByID 与真实实现一样带花名册返回，因此持有 enrollment mock 的引用。

type mockCourseRepo struct {
	courses     map[string]*model.Course
	enrollments *mockEnrollmentRepo
}

func newMockCourseRepo(enrollments *mockEnrollmentRepo) *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course), enrollments: enrollments}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		course.CourseID = uuid.NewString()
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now()
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	result := *c
	roster, _ := m.enrollments.ListByCourse(ctx, id)
	result.Enrollments = roster
	return &result, nil
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.TeacherID == teacherID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if ok, _ := m.enrollments.Exists(ctx, c.CourseID, studentID); ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	var kept []*model.Enrollment
	for _, e := range m.enrollments.enrollments {
		if e.CourseID != id {
			kept = append(kept, e)
		}
	}
	m.enrollments.enrollments = kept
	return nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	submissions []*model.Submission
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{}
}

func (m *mockSubmissionRepo) Create(_ context.Context, submission *model.Submission) error {
	for _, s := range m.submissions {
		if s.AssignmentID == submission.AssignmentID && s.StudentID == submission.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	if submission.SubmissionID == "" {
		submission.SubmissionID = uuid.NewString()
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}
	m.submissions = append(m.submissions, submission)
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	for _, s := range m.submissions {
		if s.SubmissionID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) ListByAssignment(_ context.Context, assignmentID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListByStudent(_ context.Context, studentID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.StudentID == studentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListByStudentAndCourse(_ context.Context, studentID, courseID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.StudentID == studentID && s.CourseID == courseID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListGradedByStudentAndCourse(_ context.Context, studentID, courseID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.StudentID == studentID && s.CourseID == courseID && s.Status == model.SubmissionStatusGraded {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListGradedByCourse(_ context.Context, courseID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.CourseID == courseID && s.Status == model.SubmissionStatusGraded {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) Update(_ context.Context, submission *model.Submission) error {
	for i, s := range m.submissions {
		if s.SubmissionID == submission.SubmissionID {
			m.submissions[i] = submission
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock AssignmentRepository ──
//
// DeleteWithSubmissions 与真实实现一样连带提交，因此持有 submission mock 的引用。

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	submissions *mockSubmissionRepo
}

func newMockAssignmentRepo(submissions *mockSubmissionRepo) *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment), submissions: submissions}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		assignment.AssignmentID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now()
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByCourse(_ context.Context, courseID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.CourseID == courseID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDate.Before(result[j].DueDate) })
	return result, nil
}

func (m *mockAssignmentRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.TeacherID == teacherID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) DeleteWithSubmissions(_ context.Context, id string) error {
	delete(m.assignments, id)
	var kept []*model.Submission
	for _, s := range m.submissions.submissions {
		if s.AssignmentID != id {
			kept = append(kept, s)
		}
	}
	m.submissions.submissions = kept
	return nil
}

// ── Mock DiscussionRepository ──

type mockDiscussionRepo struct {
	discussions map[string]*model.Discussion
	replies     map[string][]model.DiscussionReply
}

func newMockDiscussionRepo() *mockDiscussionRepo {
	return &mockDiscussionRepo{
		discussions: make(map[string]*model.Discussion),
		replies:     make(map[string][]model.DiscussionReply),
	}
}

func (m *mockDiscussionRepo) Create(_ context.Context, discussion *model.Discussion) error {
	if discussion.DiscussionID == "" {
		discussion.DiscussionID = uuid.NewString()
	}
	if discussion.CreatedAt.IsZero() {
		discussion.CreatedAt = time.Now()
	}
	m.discussions[discussion.DiscussionID] = discussion
	return nil
}

func (m *mockDiscussionRepo) GetByID(_ context.Context, id string) (*model.Discussion, error) {
	d, ok := m.discussions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	result := *d
	result.Replies = append([]model.DiscussionReply(nil), m.replies[id]...)
	return &result, nil
}

func (m *mockDiscussionRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Discussion, error) {
	var result []model.Discussion
	for id, d := range m.discussions {
		if d.CourseID == courseID {
			full, _ := m.GetByID(ctx, id)
			result = append(result, *full)
		}
	}
	return result, nil
}

func (m *mockDiscussionRepo) AddReply(_ context.Context, reply *model.DiscussionReply) error {
	if _, ok := m.discussions[reply.DiscussionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if reply.ReplyID == "" {
		reply.ReplyID = uuid.NewString()
	}
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now()
	}
	m.replies[reply.DiscussionID] = append(m.replies[reply.DiscussionID], *reply)
	return nil
}

func (m *mockDiscussionRepo) Delete(_ context.Context, id string) error {
	delete(m.discussions, id)
	delete(m.replies, id)
	return nil
}

// ── Mock MaterialRepository ──

type mockMaterialRepo struct {
	materials map[string]*model.Material
}

func newMockMaterialRepo() *mockMaterialRepo {
	return &mockMaterialRepo{materials: make(map[string]*model.Material)}
}

func (m *mockMaterialRepo) Create(_ context.Context, material *model.Material) error {
	if material.MaterialID == "" {
		material.MaterialID = uuid.NewString()
	}
	if material.UploadedAt.IsZero() {
		material.UploadedAt = time.Now()
	}
	m.materials[material.MaterialID] = material
	return nil
}

func (m *mockMaterialRepo) GetByID(_ context.Context, id string) (*model.Material, error) {
	if mat, ok := m.materials[id]; ok {
		return mat, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMaterialRepo) ListByCourse(_ context.Context, courseID string) ([]model.Material, error) {
	var result []model.Material
	for _, mat := range m.materials {
		if mat.CourseID == courseID {
			result = append(result, *mat)
		}
	}
	return result, nil
}

func (m *mockMaterialRepo) Delete(_ context.Context, id string) error {
	delete(m.materials, id)
	return nil
}

// ── Mock NotificationRepository ──
//
// failFor 注入指定收件人的写入失败，用于验证尽力而为的扇出。

type mockNotificationRepo struct {
	notifications []*model.Notification
	failFor       map[string]bool
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{failFor: make(map[string]bool)}
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	if m.failFor[notification.UserID] {
		return fmt.Errorf("通知写入失败: %s", notification.UserID)
	}
	if notification.NotificationID == "" {
		notification.NotificationID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	m.notifications = append(m.notifications, notification)
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	for _, n := range m.notifications {
		if n.NotificationID == id {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string) ([]model.Notification, error) {
	var result []model.Notification
	// 新的在前
	for i := len(m.notifications) - 1; i >= 0; i-- {
		if m.notifications[i].UserID == userID {
			result = append(result, *m.notifications[i])
		}
		if len(result) == repository.NotificationPageSize {
			break
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) Update(_ context.Context, notification *model.Notification) error {
	for i, n := range m.notifications {
		if n.NotificationID == notification.NotificationID {
			m.notifications[i] = notification
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) Delete(_ context.Context, id string) error {
	for i, n := range m.notifications {
		if n.NotificationID == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return nil
		}
	}
	// 幂等：不存在也不报错
	return nil
}

// countFor 指定收件人的通知总数（测试断言用）
func (m *mockNotificationRepo) countFor(userID string) int {
	count := 0
	for _, n := range m.notifications {
		if n.UserID == userID {
			count++
		}
	}
	return count
}

// ── 测试用仓储聚合 ──

type testRepos struct {
	repo          *repository.Repository
	users         *mockUserRepo
	courses       *mockCourseRepo
	enrollments   *mockEnrollmentRepo
	assignments   *mockAssignmentRepo
	submissions   *mockSubmissionRepo
	discussions   *mockDiscussionRepo
	materials     *mockMaterialRepo
	notifications *mockNotificationRepo
}

func newTestRepos() *testRepos {
	enrollments := newMockEnrollmentRepo()
	submissions := newMockSubmissionRepo()
	t := &testRepos{
		users:         newMockUserRepo(),
		courses:       newMockCourseRepo(enrollments),
		enrollments:   enrollments,
		assignments:   newMockAssignmentRepo(submissions),
		submissions:   submissions,
		discussions:   newMockDiscussionRepo(),
		materials:     newMockMaterialRepo(),
		notifications: newMockNotificationRepo(),
	}
	t.repo = &repository.Repository{
		User:         t.users,
		Course:       t.courses,
		Enrollment:   t.enrollments,
		Assignment:   t.assignments,
		Submission:   t.submissions,
		Discussion:   t.discussions,
		Material:     t.materials,
		Notification: t.notifications,
	}
	return t
}

// [自证通过] internal/service/mock_repos_test.go
