package userRepo

import (
	"context"

	"medibook/models"
)

// UserRepository defines methods for user and credit ledger data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByExternalID retrieves a user by the identity provider subject.
	GetByExternalID(externalID string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// SetFCMToken stores the device token used for push notifications.
	SetFCMToken(id, token string) error
	// ListDoctors returns doctors with the given verification status,
	// optionally filtered by specialty.
	ListDoctors(specialty string, status models.VerificationStatus) ([]models.User, error)
	// OnboardPatient turns an unassigned user into a patient holding the
	// initial credit grant.
	OnboardPatient(ctx context.Context, id string, credits int) (*models.User, error)
	// OnboardDoctor turns an unassigned user into a doctor pending verification.
	OnboardDoctor(id string, profile models.DoctorProfile, credentialURL string) (*models.User, error)
	// SetVerification updates a doctor's verification status.
	SetVerification(id string, status models.VerificationStatus) (*models.User, error)
	// GrantCredits adds credits and records the ledger entry in one
	// transaction. A reused reference yields repository.ErrDuplicateReference.
	GrantCredits(ctx context.Context, userID string, credits int, txType models.CreditTransactionType, reference string) error
	// Transactions lists a user's ledger entries, newest first.
	Transactions(userID string, limit int) ([]models.CreditTransaction, error)
}
