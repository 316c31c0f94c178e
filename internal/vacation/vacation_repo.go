package vacation

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"hr-admin/internal/query"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *VacationRequest) error
	List(ctx context.Context, d query.Descriptor) ([]VacationRequest, int64, error)
	FindByID(ctx context.Context, id string, d query.Descriptor) (*VacationRequest, error)
	Update(ctx context.Context, req *VacationRequest) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds every repository call onto an already open transaction, so
// the entity write commits or rolls back together with whatever else the
// caller put on tx. gorm detects the bound *sql.Tx and skips its own
// per-statement transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true, Context: r.db.Statement.Context})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, req *VacationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) List(ctx context.Context, d query.Descriptor) ([]VacationRequest, int64, error) {
	var total int64
	if err := d.ApplyFilter(r.db.WithContext(ctx).Model(&VacationRequest{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []VacationRequest
	if err := d.Apply(r.db.WithContext(ctx).Model(&VacationRequest{})).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *repository) FindByID(ctx context.Context, id string, d query.Descriptor) (*VacationRequest, error) {
	db := r.db.WithContext(ctx)
	for _, name := range d.Preloads {
		db = db.Preload(name)
	}

	var req VacationRequest
	err := db.First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) Update(ctx context.Context, req *VacationRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&VacationRequest{}, "id = ?", id).Error
}
