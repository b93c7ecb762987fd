package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-cabinet/internal/auth/errors"
	"go-cabinet/internal/employee"
	"go-cabinet/internal/shared/apperror"
	"go-cabinet/internal/shared/clock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock

type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Register(ctx context.Context, companyID string, req RegisterRequest) (AuthResponse, error)
}

// RoleCatalog tells whether a role label exists in the access policy.
type RoleCatalog interface {
	HasRole(role string) bool
}

type EmployeeDirectory interface {
	GetByID(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
}

type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

const tokenTypeRefresh = "refresh"

type service struct {
	repo      Repository
	roles     RoleCatalog
	employees EmployeeDirectory
	tokens    TokenConfig
	clock     clock.Clock
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	roles RoleCatalog,
	employees EmployeeDirectory,
	tokens TokenConfig,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		repo:      repo,
		roles:     roles,
		employees: employees,
		tokens:    tokens,
		clock:     clk,
		logger:    l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return TokenPair{}, AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.String("user_id", user.ID.String()))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return pair, toAuthResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.tokens.Secret), nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, AuthResponse{}, autherrors.ErrTokenExpired
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != tokenTypeRefresh {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return pair, toAuthResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toAuthResponse(u)
	return &resp, nil
}

// Register creates an account in the caller's office. The role label must be
// one the access policy knows.
func (s *service) Register(ctx context.Context, companyID string, req RegisterRequest) (AuthResponse, error) {
	cID, err := uuid.Parse(companyID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCompanyID
	}

	role := strings.TrimSpace(req.Role)
	if !s.roles.HasRole(role) {
		return AuthResponse{}, autherrors.ErrUnknownRole
	}

	var employeeID *uuid.UUID
	if req.EmployeeID != "" {
		emp, err := s.employees.GetByID(ctx, companyID, req.EmployeeID)
		if err != nil {
			return AuthResponse{}, err
		}
		id, err := uuid.Parse(emp.ID)
		if err != nil {
			return AuthResponse{}, apperror.InvalidField("employee_id")
		}
		employeeID = &id
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, apperror.ErrInternal.HTTPStatus)
	}

	user := &User{
		ID:         uuid.New(),
		CompanyID:  cID,
		EmployeeID: employeeID,
		Name:       strings.TrimSpace(req.Name),
		Email:      normalizeEmail(req.Email),
		Password:   string(hashed),
		Role:       role,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", companyID),
		zap.String("role", role),
	)
	return toAuthResponse(user), nil
}

func (s *service) issueTokens(user *User) (TokenPair, error) {
	access, err := s.generateToken(user, "", s.tokens.AccessTTL)
	if err != nil {
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(user, tokenTypeRefresh, s.tokens.RefreshTTL)
	if err != nil {
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) generateToken(user *User, typ string, expiry time.Duration) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"user_id":    user.ID.String(),
		"company_id": user.CompanyID.String(),
		"role":       user.Role,
		"iat":        now.Unix(),
		"exp":        now.Add(expiry).Unix(),
	}
	if user.EmployeeID != nil {
		claims["employee_id"] = user.EmployeeID.String()
	}
	if typ != "" {
		claims["typ"] = typ
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.tokens.Secret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toAuthResponse(u *User) AuthResponse {
	resp := AuthResponse{
		ID:        u.ID.String(),
		CompanyID: u.CompanyID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
	}
	if u.EmployeeID != nil {
		resp.EmployeeID = u.EmployeeID.String()
	}
	return resp
}
