package vacation

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hr-admin/internal/events"
	"hr-admin/internal/messaging/kafka"
	"hr-admin/internal/query"
	"hr-admin/internal/schema"
	"hr-admin/internal/shared/contextutil"
	"hr-admin/internal/shared/listcache"
)

const cacheKind = "vacation_request"

func Manifest() query.Manifest {
	return query.Manifest{
		Relations: map[string]string{
			"employee": "Employee",
		},
	}
}

type listResult struct {
	Data  []VacationRequestResponse `json:"data"`
	Total int64                     `json:"total"`
}

type Service interface {
	Create(ctx context.Context, req CreateVacationRequestRequest) (VacationRequestResponse, error)
	List(ctx context.Context, p query.Params) ([]VacationRequestResponse, int64, error)
	GetByID(ctx context.Context, id string, p query.Params) (VacationRequestResponse, error)
	Update(ctx context.Context, id string, patch schema.Payload) (VacationRequestResponse, error)
	Delete(ctx context.Context, id string) (VacationRequestResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	cache  *listcache.Cache
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, cache *listcache.Cache, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, cache, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	cache *listcache.Cache,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("vacation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacation.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		cache:  cache,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateVacationRequestRequest) (VacationRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create vacation request requested",
		zap.String("request_id", rid),
		zap.String("status", req.Status),
	)

	startDate, ok := schema.ParseDate(req.StartDate)
	if !ok {
		return VacationRequestResponse{}, vacationDateError("start_date")
	}
	endDate, ok := schema.ParseDate(req.EndDate)
	if !ok {
		return VacationRequestResponse{}, vacationDateError("end_date")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create vacation request begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return VacationRequestResponse{}, err
	}
	defer tx.Rollback()

	vreq := &VacationRequest{
		ID:         uuid.New(),
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     req.Status,
		EmployeeID: parseUUIDPtr(req.EmployeeID),
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, vreq); err != nil {
		s.logger.Error("create vacation request persist failed", zap.Error(err))
		return VacationRequestResponse{}, mapRepositoryError(err)
	}

	if err := s.queueLifecycleEvent(ctx, tx, rid, events.VacationRequestCreated, vreq); err != nil {
		return VacationRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return VacationRequestResponse{}, err
	}

	s.cache.Invalidate(ctx, cacheKind)

	s.logger.Info("create vacation request success",
		zap.String("request_id", rid),
		zap.String("vacation_request_id", vreq.ID.String()),
	)

	return mapToResponse(*vreq), nil
}

func (s *service) List(ctx context.Context, p query.Params) ([]VacationRequestResponse, int64, error) {
	d, err := query.Build(p, Manifest())
	if err != nil {
		return nil, 0, err
	}

	result, err := listcache.GetOrLoad(ctx, s.cache, cacheKind, p.CacheKey(), func() (listResult, error) {
		requests, total, err := s.repo.List(ctx, d)
		if err != nil {
			s.logger.Error("list vacation requests failed", zap.Error(err))
			return listResult{}, mapRepositoryError(err)
		}
		return listResult{Data: mapToListResponse(requests), Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	return result.Data, result.Total, nil
}

func (s *service) GetByID(ctx context.Context, id string, p query.Params) (VacationRequestResponse, error) {
	d, err := query.Build(p, Manifest())
	if err != nil {
		return VacationRequestResponse{}, err
	}

	vreq, err := s.repo.FindByID(ctx, id, d)
	if err != nil {
		s.logger.Error("get vacation request by id failed", zap.String("vacation_request_id", id), zap.Error(err))
		return VacationRequestResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*vreq), nil
}

func (s *service) Update(ctx context.Context, id string, patch schema.Payload) (VacationRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update vacation request requested",
		zap.String("request_id", rid),
		zap.String("vacation_request_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update vacation request begin tx failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	vreq, err := qtx.FindByID(ctx, id, query.Descriptor{})
	if err != nil {
		s.logger.Error("update vacation request fetch existing failed", zap.Error(err))
		return VacationRequestResponse{}, mapRepositoryError(err)
	}

	applyPatch(vreq, patch)

	if err := qtx.Update(ctx, vreq); err != nil {
		s.logger.Error("update vacation request persist failed", zap.Error(err))
		return VacationRequestResponse{}, mapRepositoryError(err)
	}

	if err := s.queueLifecycleEvent(ctx, tx, rid, events.VacationRequestUpdated, vreq); err != nil {
		return VacationRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return VacationRequestResponse{}, err
	}

	s.cache.Invalidate(ctx, cacheKind)

	s.logger.Info("update vacation request success",
		zap.String("request_id", rid),
		zap.String("vacation_request_id", id),
	)

	return mapToResponse(*vreq), nil
}

// Delete removes the record and returns its prior state.
func (s *service) Delete(ctx context.Context, id string) (VacationRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete vacation request requested",
		zap.String("request_id", rid),
		zap.String("vacation_request_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete vacation request begin tx failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	vreq, err := qtx.FindByID(ctx, id, query.Descriptor{})
	if err != nil {
		s.logger.Error("delete vacation request fetch existing failed", zap.Error(err))
		return VacationRequestResponse{}, mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete vacation request persist failed", zap.Error(err))
		return VacationRequestResponse{}, mapRepositoryError(err)
	}

	if err := s.queueLifecycleEvent(ctx, tx, rid, events.VacationRequestDeleted, vreq); err != nil {
		return VacationRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return VacationRequestResponse{}, err
	}

	s.cache.Invalidate(ctx, cacheKind)

	s.logger.Info("delete vacation request success",
		zap.String("request_id", rid),
		zap.String("vacation_request_id", id),
	)

	return mapToResponse(*vreq), nil
}

// queueLifecycleEvent appends the outbox record inside the same transaction
// as the data change, so the event publishes only if the change commits.
func (s *service) queueLifecycleEvent(
	ctx context.Context,
	tx *sql.Tx,
	rid string,
	eventType string,
	vreq *VacationRequest,
) error {
	if s.outbox == nil {
		return nil
	}

	employeeID := ""
	if vreq.EmployeeID != nil {
		employeeID = vreq.EmployeeID.String()
	}

	event := events.VacationRequestEvent{
		EventType:         eventType,
		RequestID:         rid,
		VacationRequestID: vreq.ID.String(),
		EmployeeID:        employeeID,
		Status:            vreq.Status,
		OccurredAt:        time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "vacation_request",
		AggregateID:   vreq.ID.String(),
		EventType:     eventType,
		Topic:         events.VacationRequestTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("vacation request outbox persist failed",
			zap.String("vacation_request_id", vreq.ID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func applyPatch(v *VacationRequest, patch schema.Payload) {
	if raw, ok := patch["start_date"].(string); ok {
		if t, ok := schema.ParseDate(raw); ok {
			v.StartDate = t
		}
	}
	if raw, ok := patch["end_date"].(string); ok {
		if t, ok := schema.ParseDate(raw); ok {
			v.EndDate = t
		}
	}
	if status, ok := patch["status"].(string); ok {
		v.Status = status
	}
	if raw, present := patch["employee_id"]; present {
		if raw == nil {
			v.EmployeeID = nil
		} else if s, ok := raw.(string); ok {
			v.EmployeeID = parseUUIDPtr(&s)
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
