package user

import (
	"context"

	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

type UserService interface {
	// ResolveIdentity returns the account for a verified token identity,
	// creating an UNASSIGNED account on first sight.
	ResolveIdentity(ctx context.Context, identity *utils.Identity) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)
	SetFCMToken(ctx context.Context, userID, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}
