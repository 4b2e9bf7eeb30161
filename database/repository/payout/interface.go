package payoutRepo

import (
	"context"

	"medibook/models"
)

type PayoutRepository interface {
	GetByID(id string) (*models.Payout, error)
	// Create inserts a PROCESSING payout. A second PROCESSING payout for the
	// same doctor yields repository.ErrStateConflict.
	Create(payout *models.Payout) error
	ListByDoctor(doctorID string) ([]models.Payout, error)
	ListByStatus(status models.PayoutStatus) ([]models.Payout, error)
	// Approve debits the doctor's credits, records the adjustment and marks the
	// payout PROCESSED in one transaction.
	Approve(ctx context.Context, payoutID, adminID string) (*models.Payout, error)
}
