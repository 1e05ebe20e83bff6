package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quotation-backend/models"
	"quotation-backend/utils"
)

// AdminStore looks up admin accounts.
type AdminStore interface {
	FindAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	ListAdmins(ctx context.Context) ([]models.AdminUser, error)
}

type AuthService struct {
	admins   AdminStore
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(admins AdminStore, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{admins: admins, secret: secret, tokenTTL: tokenTTL}
}

// Login checks the credentials and returns a signed session token.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", models.ErrInvalidCredentials
	}

	admin, err := s.admins.FindAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: admin lookup: %v", models.ErrDatabase, err)
	}

	if !utils.CheckPassword(admin.Password, password) {
		return "", models.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(s.secret, admin.ID, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token for admin %d: %w", admin.ID, err)
	}
	return token, nil
}

// Authenticate validates a session token and returns the admin id in it.
func (s *AuthService) Authenticate(token string) (int, error) {
	parsed, err := utils.ValidateJWT(s.secret, token)
	if err != nil {
		return 0, err
	}
	return utils.AdminIDFromToken(parsed)
}

func (s *AuthService) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	return s.admins.ListAdmins(ctx)
}
