package user

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hr-admin/internal/query"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	List(ctx context.Context, d query.Descriptor) ([]User, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// List runs the count and data queries from one descriptor; the count
// ignores order and page bounds.
func (r *repository) List(ctx context.Context, d query.Descriptor) ([]User, int64, error) {
	var total int64
	if err := d.ApplyFilter(r.db.WithContext(ctx).Model(&User{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	if err := d.Apply(r.db.WithContext(ctx).Model(&User{})).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return &user, err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}
