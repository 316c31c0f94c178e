package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"hr-admin/internal/query"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	List(ctx context.Context, d query.Descriptor) ([]Employee, int64, error)
	FindByID(ctx context.Context, id string, d query.Descriptor) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

// List runs the count query on the filters alone and the data query on the
// full descriptor; both come from the same parse.
func (r *repository) List(ctx context.Context, d query.Descriptor) ([]Employee, int64, error) {
	var total int64
	if err := d.ApplyFilter(r.db.WithContext(ctx).Model(&Employee{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []Employee
	if err := d.Apply(r.db.WithContext(ctx).Model(&Employee{})).Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *repository) FindByID(ctx context.Context, id string, d query.Descriptor) (*Employee, error) {
	db := r.db.WithContext(ctx)
	for _, name := range d.Preloads {
		db = db.Preload(name)
	}

	var empl Employee
	err := db.First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
