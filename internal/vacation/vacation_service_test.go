package vacation

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hr-admin/internal/events"
	"hr-admin/internal/messaging/kafka"
	"hr-admin/internal/query"
	"hr-admin/internal/schema"
	vacationerrors "hr-admin/internal/vacation/errors"
)

type fakeRepo struct {
	withTxFn   func(tx *sql.Tx) Repository
	createFn   func(ctx context.Context, req *VacationRequest) error
	listFn     func(ctx context.Context, d query.Descriptor) ([]VacationRequest, int64, error)
	findByIDFn func(ctx context.Context, id string, d query.Descriptor) (*VacationRequest, error)
	updateFn   func(ctx context.Context, req *VacationRequest) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, req *VacationRequest) error {
	return f.createFn(ctx, req)
}
func (f *fakeRepo) List(ctx context.Context, d query.Descriptor) ([]VacationRequest, int64, error) {
	return f.listFn(ctx, d)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string, d query.Descriptor) (*VacationRequest, error) {
	return f.findByIDFn(ctx, id, d)
}
func (f *fakeRepo) Update(ctx context.Context, req *VacationRequest) error {
	return f.updateFn(ctx, req)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPublishable(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkPublished(ctx context.Context, id string) error             { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func selfTx(f *fakeRepo) {
	f.withTxFn = func(tx *sql.Tx) Repository { return f }
}

func TestVacationService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	t.Run("success - persists and queues the lifecycle event in one transaction", func(t *testing.T) {
		employeeID := uuid.New().String()
		var saved VacationRequest
		repo := &fakeRepo{}
		selfTx(repo)
		repo.createFn = func(ctx context.Context, req *VacationRequest) error {
			saved = *req
			return nil
		}
		outbox := &fakeOutbox{}

		svc := NewServiceWithOutbox(db, repo, outbox, nil)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Create(ctx, CreateVacationRequestRequest{
			StartDate:  "2026-03-10",
			EndDate:    "2026-03-14",
			Status:     "pending",
			EmployeeID: &employeeID,
		})

		require.NoError(t, err)
		assert.Equal(t, saved.ID.String(), resp.ID)
		assert.Equal(t, "pending", resp.Status)

		require.Len(t, outbox.created, 1)
		queued := outbox.created[0]
		assert.Equal(t, events.VacationRequestTopic, queued.Topic)
		assert.Equal(t, "vacation_request", queued.AggregateType)
		assert.Equal(t, saved.ID.String(), queued.AggregateID)
		assert.Equal(t, kafka.OutboxStatusPending, queued.Status)

		var event events.VacationRequestEvent
		require.NoError(t, json.Unmarshal(queued.Payload, &event))
		assert.Equal(t, events.VacationRequestCreated, event.EventType)
		assert.Equal(t, employeeID, event.EmployeeID)
		assert.Equal(t, "pending", event.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - without outbox nothing is queued", func(t *testing.T) {
		repo := &fakeRepo{}
		selfTx(repo)
		repo.createFn = func(ctx context.Context, req *VacationRequest) error { return nil }

		svc := NewService(db, repo, nil)

		mock.ExpectBegin()
		mock.ExpectCommit()
		_, err := svc.Create(ctx, CreateVacationRequestRequest{
			StartDate: "2026-03-10",
			EndDate:   "2026-03-14",
			Status:    "pending",
		})
		require.NoError(t, err)
	})

	t.Run("negative - malformed start date fails before any storage work", func(t *testing.T) {
		repo := &fakeRepo{}
		repo.createFn = func(ctx context.Context, req *VacationRequest) error {
			t.Fatal("create must not run for malformed dates")
			return nil
		}

		svc := NewService(db, repo, nil)
		_, err := svc.Create(ctx, CreateVacationRequestRequest{
			StartDate: "10/03/2026",
			EndDate:   "2026-03-14",
			Status:    "pending",
		})
		assert.Error(t, err)
	})
}

func TestVacationService_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	t.Run("success - status-only patch changes nothing else", func(t *testing.T) {
		employeeID := uuid.New()
		existing := VacationRequest{
			ID:         uuid.New(),
			StartDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Status:     "pending",
			EmployeeID: &employeeID,
		}

		var saved VacationRequest
		repo := &fakeRepo{}
		selfTx(repo)
		repo.findByIDFn = func(ctx context.Context, id string, d query.Descriptor) (*VacationRequest, error) {
			v := existing
			return &v, nil
		}
		repo.updateFn = func(ctx context.Context, req *VacationRequest) error {
			saved = *req
			return nil
		}
		outbox := &fakeOutbox{}

		svc := NewServiceWithOutbox(db, repo, outbox, nil)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Update(ctx, existing.ID.String(), schema.Payload{"status": "approved"})

		require.NoError(t, err)
		assert.Equal(t, "approved", saved.Status)
		assert.Equal(t, existing.StartDate, saved.StartDate)
		assert.Equal(t, existing.EndDate, saved.EndDate)
		require.NotNil(t, saved.EmployeeID)
		assert.Equal(t, employeeID, *saved.EmployeeID)
		assert.Equal(t, "approved", resp.Status)

		require.Len(t, outbox.created, 1)
		var event events.VacationRequestEvent
		require.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
		assert.Equal(t, events.VacationRequestUpdated, event.EventType)
		assert.Equal(t, "approved", event.Status)
	})

	t.Run("negative - missing record", func(t *testing.T) {
		repo := &fakeRepo{}
		selfTx(repo)
		repo.findByIDFn = func(ctx context.Context, id string, d query.Descriptor) (*VacationRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := NewService(db, repo, nil)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Update(ctx, uuid.New().String(), schema.Payload{"status": "approved"})
		assert.ErrorIs(t, err, vacationerrors.ErrVacationRequestNotFound)
	})
}

func TestVacationService_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	t.Run("success - returns prior state and queues the deleted event", func(t *testing.T) {
		existing := VacationRequest{
			ID:        uuid.New(),
			StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Status:    "pending",
		}

		repo := &fakeRepo{}
		selfTx(repo)
		repo.findByIDFn = func(ctx context.Context, id string, d query.Descriptor) (*VacationRequest, error) {
			v := existing
			return &v, nil
		}
		repo.deleteFn = func(ctx context.Context, id string) error { return nil }
		outbox := &fakeOutbox{}

		svc := NewServiceWithOutbox(db, repo, outbox, nil)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Delete(ctx, existing.ID.String())

		require.NoError(t, err)
		assert.Equal(t, existing.ID.String(), resp.ID)
		assert.Equal(t, "pending", resp.Status)

		require.Len(t, outbox.created, 1)
		var event events.VacationRequestEvent
		require.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
		assert.Equal(t, events.VacationRequestDeleted, event.EventType)
	})
}

func TestVacationService_List(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	t.Run("success - status search builds a contains condition", func(t *testing.T) {
		var gotDesc query.Descriptor
		repo := &fakeRepo{}
		repo.listFn = func(ctx context.Context, d query.Descriptor) ([]VacationRequest, int64, error) {
			gotDesc = d
			return []VacationRequest{{ID: uuid.New(), Status: "pending"}}, 1, nil
		}

		svc := NewService(db, repo, nil)

		_, total, err := svc.List(ctx, query.Params{
			SearchTerm: "pend",
			SearchKeys: []string{"status.contains"},
			Relations:  []string{"employee"},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, gotDesc.Search, 1)
		assert.Equal(t, "status LIKE ?", gotDesc.Search[0].Expr)
		assert.Equal(t, []any{"%pend%"}, gotDesc.Search[0].Args)
		assert.Equal(t, []string{"Employee"}, gotDesc.Preloads)
	})
}
