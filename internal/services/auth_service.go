package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/eventtickets/internal/helpers"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/joshua-takyi/eventtickets/internal/monitoring"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

var errBadCredentials = fmt.Errorf("%w: invalid credentials", models.ErrUnauthorized)

type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      *models.StaffUser `json:"user"`
}

type AuthService struct {
	users  models.UserRepository
	signer *helpers.TokenSigner
	logger *slog.Logger
	now    clock
}

func NewAuthService(users models.UserRepository, signer *helpers.TokenSigner, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		signer: signer,
		logger: logger,
	}
}

// Login returns the same error for an unknown user and a wrong password and
// only records last_login on success.
func (as *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		monitoring.TrackLogin(false)
		return nil, errBadCredentials
	}

	u, err := as.users.GetUserByUsername(ctx, username)
	if err != nil {
		monitoring.TrackLogin(false)
		if errors.Is(err, models.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, internal(ctx, as.logger, "load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		monitoring.TrackLogin(false)
		as.logger.WarnContext(ctx, "login rejected", "username", username)
		return nil, errBadCredentials
	}

	now := as.now.now()
	if err := as.users.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return nil, internal(ctx, as.logger, "update last login", err)
	}
	u.LastLogin = &now

	token, exp, err := as.signer.Issue(u.ID, u.Username, string(u.Role))
	if err != nil {
		return nil, internal(ctx, as.logger, "issue token", err)
	}
	monitoring.TrackLogin(true)
	as.logger.InfoContext(ctx, "staff logged in", "user_id", u.ID, "role", u.Role)
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// Authenticate verifies a bearer token. Any failure is ErrForbidden.
func (as *AuthService) Authenticate(token string) (*helpers.Claims, error) {
	claims, err := as.signer.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrForbidden, err)
	}
	return claims, nil
}

func (as *AuthService) ChangePassword(ctx context.Context, claims *helpers.Claims, current, next string) error {
	u, err := as.users.GetUserByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: user no longer exists", models.ErrUnauthorized)
		}
		return internal(ctx, as.logger, "load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", models.ErrUnauthorized)
	}
	if !helpers.IsPasswordAcceptable(next) {
		return fmt.Errorf("%w: new password must be at least %d characters", models.ErrValidation, helpers.MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return internal(ctx, as.logger, "hash password", err)
	}
	if err := as.users.UpdatePasswordHash(ctx, u.ID, string(hash)); err != nil {
		return internal(ctx, as.logger, "update password", err)
	}
	as.logger.InfoContext(ctx, "password changed", "user_id", u.ID)
	return nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist.
func (as *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	created, err := as.users.EnsureUser(ctx, &models.StaffUser{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    as.now.now(),
	})
	if err != nil {
		return internal(ctx, as.logger, "ensure admin", err)
	}
	if created {
		as.logger.WarnContext(ctx, "default admin created, change its password", "username", username)
	}
	return nil
}
