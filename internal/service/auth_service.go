package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/auth"
	"github.com/spec-kit/triage-service/internal/config"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/repository"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// AuthService authenticates approvers for the approval boundary.
type AuthService struct {
	approvers repository.ApproverRepository
	tokens    *auth.TokenManager
	cfg       config.AuthConfig
	logger    *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, approvers repository.ApproverRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		approvers: approvers,
		tokens:    auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		cfg:       cfg,
		logger:    logger,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login verifies approver credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.Approver, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", time.Time{}, nil, apperrors.NewValidationError("email and password required", nil)
	}

	approver, err := s.approvers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return "", time.Time{}, nil, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(approver.PasswordHash, password); err != nil {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(approver.ID)
	if err != nil {
		return "", time.Time{}, nil, apperrors.MapError(err)
	}
	return token, expiresAt, approver, nil
}

// EnsureBootstrapApprover upserts the approver account configured via env so
// a fresh deployment always has someone able to resolve approvals.
func (s *AuthService) EnsureBootstrapApprover(ctx context.Context) error {
	email := strings.ToLower(strings.TrimSpace(s.cfg.BootstrapEmail))
	if email == "" || s.cfg.BootstrapPassword == "" {
		s.logger.Warn("no bootstrap approver configured; approval endpoints will reject all logins until an approver exists")
		return nil
	}

	hash, err := auth.HashPassword(s.cfg.BootstrapPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	approver := &domain.Approver{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         s.cfg.BootstrapName,
		PasswordHash: hash,
	}
	if err := s.approvers.Create(ctx, approver); err != nil {
		return err
	}
	s.logger.Info("bootstrap approver ready", zap.String("email", email))
	return nil
}
