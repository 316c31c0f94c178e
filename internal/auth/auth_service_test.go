package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "hr-admin/internal/auth/errors"
	"hr-admin/internal/query"
	"hr-admin/internal/user"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	createFn     func(ctx context.Context, u *user.User) error
	listFn       func(ctx context.Context, d query.Descriptor) ([]user.User, int64, error)
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*user.User, error)
	getByEmailFn func(ctx context.Context, email string) (*user.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return f.createFn(ctx, u) }
func (f *fakeUserRepo) List(ctx context.Context, d query.Descriptor) ([]user.User, int64, error) {
	return f.listFn(ctx, d)
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.getByEmailFn(ctx, email)
}

func storedUser(t *testing.T, password string) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &user.User{
		ID:       uuid.New(),
		Email:    "ana@example.com",
		Name:     "Ana Silva",
		Password: string(hashed),
		Roles:    []string{"HR Manager"},
	}
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success - tokens carry identity and roles", func(t *testing.T) {
		u := storedUser(t, "s3cret")
		repo := &fakeUserRepo{
			getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				assert.Equal(t, u.Email, email)
				return u, nil
			},
		}

		svc := NewService(repo, testSecret)
		access, refresh, resp, err := svc.Login(ctx, u.Email, "s3cret")

		require.NoError(t, err)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, u.Email, resp.Email)
		assert.Equal(t, []string{"HR Manager"}, resp.Roles)

		claims := parseClaims(t, access)
		assert.Equal(t, u.ID.String(), claims["user_id"])
		assert.Equal(t, u.Email, claims["email"])
		assert.Equal(t, []any{"HR Manager"}, claims["roles"])
	})

	t.Run("negative - wrong password", func(t *testing.T) {
		u := storedUser(t, "s3cret")
		repo := &fakeUserRepo{
			getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}

		svc := NewService(repo, testSecret)
		_, _, _, err := svc.Login(ctx, u.Email, "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative - unknown email gets the same error as a bad password", func(t *testing.T) {
		repo := &fakeUserRepo{
			getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := NewService(repo, testSecret)
		_, _, _, err := svc.Login(ctx, "nobody@example.com", "s3cret")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success - issues a fresh token pair", func(t *testing.T) {
		u := storedUser(t, "s3cret")
		repo := &fakeUserRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
				assert.Equal(t, u.ID, id)
				return u, nil
			},
		}

		svc := NewService(repo, testSecret)
		refresh, err := svc.(*service).generateToken(u, time.Hour)
		require.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, u.ID.String(), resp.ID)
	})

	t.Run("negative - expired token", func(t *testing.T) {
		u := storedUser(t, "s3cret")
		repo := &fakeUserRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
				t.Fatal("lookup must not run for expired tokens")
				return nil, nil
			},
		}

		svc := NewService(repo, testSecret)
		expired, err := svc.(*service).generateToken(u, -time.Minute)
		require.NoError(t, err)

		_, _, _, err = svc.RefreshToken(ctx, expired)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative - garbage token", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{}, testSecret)
		_, _, _, err := svc.RefreshToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		u := storedUser(t, "s3cret")
		repo := &fakeUserRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
				return u, nil
			},
		}

		svc := NewService(repo, testSecret)
		resp, err := svc.GetMe(ctx, u.ID.String())

		require.NoError(t, err)
		assert.Equal(t, u.Email, resp.Email)
		assert.Equal(t, u.Name, resp.Name)
	})

	t.Run("negative - malformed id", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{}, testSecret)
		_, err := svc.GetMe(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success - hashes the password and assigns the starter role", func(t *testing.T) {
		var saved *user.User
		repo := &fakeUserRepo{
			createFn: func(ctx context.Context, u *user.User) error {
				saved = u
				return nil
			},
		}

		svc := NewService(repo, testSecret)
		resp, err := svc.Register(ctx, RegisterRequest{
			Email:    "bo@example.com",
			Name:     "Bo",
			Password: "s3cret",
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.NotEqual(t, "s3cret", saved.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("s3cret")))
		assert.Equal(t, []string{"Employee"}, saved.Roles)
		assert.Equal(t, []string{"Employee"}, resp.Roles)
	})

	t.Run("negative - repo failure surfaces", func(t *testing.T) {
		repo := &fakeUserRepo{
			createFn: func(ctx context.Context, u *user.User) error {
				return gorm.ErrDuplicatedKey
			},
		}

		svc := NewService(repo, testSecret)
		_, err := svc.Register(ctx, RegisterRequest{Email: "bo@example.com", Password: "s3cret"})
		assert.Error(t, err)
	})
}
