package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hr-admin/internal/query"
	usererrors "hr-admin/internal/user/errors"
)

// Manifest adapts list query parameters to the users table. Users carry no
// preloadable associations, so relation names fall through to storage.
func Manifest() query.Manifest {
	return query.Manifest{}
}

type Service interface {
	List(ctx context.Context, p query.Params) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, p query.Params) ([]UserResponse, int64, error) {
	d, err := query.Build(p, Manifest())
	if err != nil {
		return nil, 0, err
	}

	users, total, err := s.repo.List(ctx, d)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(users), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		s.logger.Error("get user by id failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}
