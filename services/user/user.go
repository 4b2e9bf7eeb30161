package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medibook/database/repository"
	"medibook/models"
	"medibook/services"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultUserService) ResolveIdentity(ctx context.Context, identity *utils.Identity) (*models.User, error) {
	if identity == nil || identity.ExternalID == "" {
		return nil, services.NewValidationError("sub", "token has no subject")
	}

	u, err := s.Repo.GetByExternalID(identity.ExternalID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	u = &models.User{
		ID:         uuid.New().String(),
		ExternalID: identity.ExternalID,
		Email:      strings.ToLower(identity.Email),
		Name:       identity.Name,
		Role:       models.RoleUnassigned,
	}
	if err := s.Repo.Create(u); err != nil {
		// Lost a race with a concurrent first request.
		if errors.Is(err, repository.ErrDuplicateReference) {
			return s.Repo.GetByExternalID(identity.ExternalID)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("user created", zap.String("userId", u.ID))
	}
	return u, nil
}

func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	return u, nil
}

func (s *DefaultUserService) SetFCMToken(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return services.NewValidationError("token", "must not be empty")
	}
	return services.FromRepo(s.Repo.SetFCMToken(userID, token))
}
