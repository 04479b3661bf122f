package auth

import (
	"context"
	"errors"
	"time"

	autherrors "github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/auth/errors"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	GetMe(ctx context.Context, userID string) (UserResponse, error)
}

type service struct {
	repo   Repository
	secret string
	logger *zap.Logger
}

func NewService(repo Repository, secret string, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, secret: secret, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same error for unknown email and bad password.
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return TokenPairResponse{}, autherrors.ErrUserDisabled
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return TokenPairResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return pair, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return TokenPairResponse{}, autherrors.ErrUserDisabled
	}

	return s.issueTokens(user)
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	role := req.Role
	if role == "" {
		role = rbac.RoleEmployee
	}
	if !IsValidRole(role) {
		return UserResponse{}, autherrors.ErrInvalidRole
	}

	taken, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return UserResponse{}, err
	}
	if taken {
		return UserResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	user := &User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if req.EmployeeID != nil {
		employeeID, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return UserResponse{}, autherrors.ErrInvalidUserID
		}
		user.EmployeeID = &employeeID
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("register persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("register success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return mapToUserResponse(*user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (UserResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return UserResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, autherrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToUserResponse(*user), nil
}

func (s *service) issueTokens(user *User) (TokenPairResponse, error) {
	access, err := s.signToken(user, accessTokenTTL)
	if err != nil {
		return TokenPairResponse{}, err
	}
	refresh, err := s.signToken(user, refreshTokenTTL)
	if err != nil {
		return TokenPairResponse{}, err
	}

	return TokenPairResponse{
		User:         mapToUserResponse(*user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *service) signToken(user *User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func mapToUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	if u.EmployeeID != nil {
		v := u.EmployeeID.String()
		resp.EmployeeID = &v
	}
	return resp
}
