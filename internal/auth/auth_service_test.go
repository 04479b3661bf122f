package auth_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/auth"
	autherrors "github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/auth/errors"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type fakeUserRepository struct {
	createFn      func(ctx context.Context, u *auth.User) error
	getByEmailFn  func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn     func(ctx context.Context, id string) (*auth.User, error)
	emailExistsFn func(ctx context.Context, email string) (bool, error)
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) auth.Repository {
	return f
}

func (f *fakeUserRepository) Create(ctx context.Context, u *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id string) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	if f.emailExistsFn != nil {
		return f.emailExistsFn(ctx, email)
	}
	return false, nil
}

func hashedPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	activeUser := func(t *testing.T) *auth.User {
		return &auth.User{
			ID:       userID,
			Name:     "Ana Admin",
			Email:    "ana@example.com",
			Password: hashedPassword(t, "s3cretpass"),
			Role:     rbac.RoleAdmin,
			IsActive: true,
		}
	}

	t.Run("success issues both tokens", func(t *testing.T) {
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return activeUser(t), nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		pair, err := svc.Login(ctx, auth.LoginRequest{Email: "ana@example.com", Password: "s3cretpass"})

		assert.NoError(t, err)
		assert.Equal(t, userID.String(), pair.User.ID)
		assert.Equal(t, rbac.RoleAdmin, pair.User.Role)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		token, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (any, error) {
			return []byte(testSecret), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, userID.String(), claims["user_id"])
		assert.Equal(t, rbac.RoleAdmin, claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return activeUser(t), nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ana@example.com", Password: "wrong"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email gives the same error", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, testSecret)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "s3cretpass"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("disabled user", func(t *testing.T) {
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				u := activeUser(t)
				u.IsActive = false
				return u, nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ana@example.com", Password: "s3cretpass"})

		assert.ErrorIs(t, err, autherrors.ErrUserDisabled)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	user := &auth.User{
		ID:       userID,
		Email:    "ana@example.com",
		Role:     rbac.RoleHR,
		IsActive: true,
	}

	signToken := func(t *testing.T, secret string, exp time.Time) string {
		t.Helper()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": userID.String(),
			"role":    rbac.RoleHR,
			"exp":     exp.Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		assert.NoError(t, err)
		return signed
	}

	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		repo := &fakeUserRepository{
			getByIDFn: func(ctx context.Context, id string) (*auth.User, error) {
				assert.Equal(t, userID.String(), id)
				return user, nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		pair, err := svc.Refresh(ctx, signToken(t, testSecret, time.Now().Add(time.Hour)))

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("expired token", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, testSecret)

		_, err := svc.Refresh(ctx, signToken(t, testSecret, time.Now().Add(-time.Hour)))

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, testSecret)

		_, err := svc.Refresh(ctx, signToken(t, "other-secret", time.Now().Add(time.Hour)))

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to employee role and hashes the password", func(t *testing.T) {
		var created *auth.User
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *auth.User) error {
				created = u
				return nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Name:     "Bruno Souza",
			Email:    "bruno@example.com",
			Password: "longenough",
		})

		assert.NoError(t, err)
		assert.Equal(t, rbac.RoleEmployee, resp.Role)
		assert.NotNil(t, created)
		assert.NotEqual(t, "longenough", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("longenough")))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, testSecret)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Name:     "Bruno Souza",
			Email:    "bruno@example.com",
			Password: "longenough",
			Role:     "superuser",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &fakeUserRepository{
			emailExistsFn: func(ctx context.Context, email string) (bool, error) {
				return true, nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Name:     "Bruno Souza",
			Email:    "bruno@example.com",
			Password: "longenough",
		})

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}
