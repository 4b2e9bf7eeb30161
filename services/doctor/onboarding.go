package doctor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"medibook/models"
	"medibook/services"

	"go.uber.org/zap"
)

const credentialFolder = "medibook/credentials"

var credentialExtensions = map[string]bool{".pdf": true, ".png": true, ".jpg": true, ".jpeg": true}

// OnboardPatient makes an unassigned user a patient with the welcome credits.
func (s *DefaultDoctorService) OnboardPatient(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Users.OnboardPatient(ctx, userID, s.InitialCredits)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	s.logger().Info("patient onboarded", zap.String("userId", userID), zap.Int("credits", s.InitialCredits))
	return u, nil
}

// OnboardDoctor uploads the credential document and registers the doctor for
// verification.
func (s *DefaultDoctorService) OnboardDoctor(ctx context.Context, userID string, profile models.DoctorProfile, credential io.Reader, filename string) (*models.User, error) {
	specialty, ok := models.CanonicalSpecialty(profile.Specialty)
	if !ok {
		return nil, services.NewValidationError("specialty", fmt.Sprintf("unknown specialty %q", profile.Specialty))
	}
	profile.Specialty = specialty
	profile.Description = strings.TrimSpace(profile.Description)
	if profile.Experience < 1 {
		return nil, services.NewValidationError("experience", "must be at least one year")
	}
	if credential == nil {
		return nil, services.NewValidationError("credential", "document is required")
	}
	if !credentialExtensions[strings.ToLower(filepath.Ext(filename))] {
		return nil, services.NewValidationError("credential", "must be a PDF or image")
	}

	current, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, services.FromRepo(err)
	}
	if current.Role != models.RoleUnassigned {
		return nil, fmt.Errorf("%w: user already has role %s", services.ErrConflict, current.Role)
	}

	upload, err := s.Storage.UploadFile(ctx, credential, credentialFolder, userID)
	if err != nil {
		return nil, fmt.Errorf("upload credential: %w", err)
	}

	u, err := s.Users.OnboardDoctor(userID, profile, upload.URL)
	if err != nil {
		if delErr := s.Storage.DeleteFile(ctx, upload.PublicID); delErr != nil {
			s.logger().Warn("failed to remove orphaned credential", zap.String("publicId", upload.PublicID), zap.Error(delErr))
		}
		return nil, services.FromRepo(err)
	}
	s.logger().Info("doctor onboarded", zap.String("userId", userID), zap.String("specialty", specialty))
	return u, nil
}
