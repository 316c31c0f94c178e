package employee

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hr-admin/internal/query"
	"hr-admin/internal/schema"
	"hr-admin/internal/shared/contextutil"
	"hr-admin/internal/shared/listcache"
)

const cacheKind = "employee"

// Manifest maps list query relation names onto the entity's associations.
func Manifest() query.Manifest {
	return query.Manifest{
		Relations: map[string]string{
			"user":             "User",
			"vacation_request": "VacationRequests",
		},
	}
}

type listResult struct {
	Data  []EmployeeResponse `json:"data"`
	Total int64              `json:"total"`
}

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context, p query.Params) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id string, p query.Params) (EmployeeResponse, error)
	Update(ctx context.Context, id string, patch schema.Payload) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	cache  *listcache.Cache
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, cache *listcache.Cache, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		cache:  cache,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("first_name", req.FirstName),
		zap.String("last_name", req.LastName),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	empl := &Employee{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		VacationDays: req.VacationDays,
		Payroll:      req.Payroll,
		UserID:       parseUUIDPtr(req.UserID),
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.cache.Invalidate(ctx, cacheKind)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) List(ctx context.Context, p query.Params) ([]EmployeeResponse, int64, error) {
	d, err := query.Build(p, Manifest())
	if err != nil {
		return nil, 0, err
	}

	result, err := listcache.GetOrLoad(ctx, s.cache, cacheKind, p.CacheKey(), func() (listResult, error) {
		employees, total, err := s.repo.List(ctx, d)
		if err != nil {
			s.logger.Error("list employees failed", zap.Error(err))
			return listResult{}, mapRepositoryError(err)
		}
		resp := mapToListResponse(employees)
		if d.Preloaded("VacationRequests") {
			for i := range resp {
				attachVacationRequestCount(&resp[i], employees[i])
			}
		}
		return listResult{Data: resp, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	return result.Data, result.Total, nil
}

func (s *service) GetByID(ctx context.Context, id string, p query.Params) (EmployeeResponse, error) {
	d, err := query.Build(p, Manifest())
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByID(ctx, id, d)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	resp := mapToResponse(*empl)
	if d.Preloaded("VacationRequests") {
		attachVacationRequestCount(&resp, *empl)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, id string, patch schema.Payload) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id, query.Descriptor{})
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	applyPatch(empl, patch)

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.cache.Invalidate(ctx, cacheKind)

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	return mapToResponse(*empl), nil
}

// Delete removes the record and returns the state it had before removal.
func (s *service) Delete(ctx context.Context, id string) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id, query.Descriptor{})
	if err != nil {
		s.logger.Error("delete employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.cache.Invalidate(ctx, cacheKind)

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	return mapToResponse(*empl), nil
}

// applyPatch merges the supplied fields onto the entity; absent keys leave
// existing values untouched.
func applyPatch(e *Employee, patch schema.Payload) {
	if v, ok := patch["first_name"].(string); ok {
		e.FirstName = v
	}
	if v, ok := patch["last_name"].(string); ok {
		e.LastName = v
	}
	if v, ok := patch["vacation_days"].(float64); ok {
		e.VacationDays = int(v)
	}
	if v, ok := patch["payroll"].(float64); ok {
		e.Payroll = int(v)
	}
	if v, present := patch["user_id"]; present {
		if v == nil {
			e.UserID = nil
		} else if s, ok := v.(string); ok {
			e.UserID = parseUUIDPtr(&s)
		}
	}
}

func parseUUIDPtr(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}
