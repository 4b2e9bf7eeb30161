package payoutRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the payouts collection.
func (repo *MongoPayoutRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One PROCESSING payout per doctor
		{
			Keys: bson.D{{Key: "doctorId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_processing_doctor").
				SetPartialFilterExpression(bson.M{"status": models.PayoutProcessing}),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_created_idx"),
		},
	}

	if _, err := repo.payoutColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create payout indexes: %w", err)
	}
	return nil
}
