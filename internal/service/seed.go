package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/repository"
)

type seedAccount struct {
	email    string
	password string
	role     domain.Role
}

var seedAccounts = []seedAccount{
	{email: "admin@test.com", password: "admin123", role: domain.RoleAdmin},
	{email: "engineer@test.com", password: "engineer123", role: domain.RoleEngineer},
	{email: "customer@test.com", password: "customer123", role: domain.RoleCustomer},
}

// SeedTestAccounts creates one fixed account per role on first run. It is a
// no-op whenever any user already exists, so existing data is never touched.
func SeedTestAccounts(ctx context.Context, users repository.UserRepository, bcryptCost int, logger *zap.Logger) error {
	count, err := users.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, account := range seedAccounts {
		hash, err := auth.HashPassword(account.password, bcryptCost)
		if err != nil {
			return err
		}
		user := &domain.User{
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		logger.Info("seeded account", zap.String("email", account.email), zap.String("role", string(account.role)))
	}
	return nil
}
