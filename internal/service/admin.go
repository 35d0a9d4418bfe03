package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/hash"
	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
)

// AdminService authenticates back-office logins and manages admin users.
// BootstrapUsername/Password come from the environment and work even with an
// empty admin_users table.
type AdminService struct {
	Repo              *repo.GormRepo
	BootstrapUsername string
	BootstrapPassword string
}

// Authenticate returns the admin username on success.
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (string, error) {
	if s.BootstrapUsername != "" && username == s.BootstrapUsername {
		if password == s.BootstrapPassword {
			return username, nil
		}
		return "", fmt.Errorf("%w: invalid credentials", ErrValidation)
	}

	admin, err := s.Repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", ErrValidation)
		}
		return "", err
	}

	if !hash.CheckPassword(admin.PasswordHash, password) {
		return "", fmt.Errorf("%w: invalid credentials", ErrValidation)
	}
	return admin.Username, nil
}

func (s *AdminService) CreateAdmin(ctx context.Context, username, password string) (*models.AdminUser, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	if _, err := s.Repo.GetAdminByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username %q already exists", ErrConflict, username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &models.AdminUser{Username: username, PasswordHash: pwHash}
	if err := s.Repo.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) DeleteAdmin(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteAdmin(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: admin %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
