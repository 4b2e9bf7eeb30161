package userRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "externalId", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_external_id")},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "verificationStatus", Value: 1}, {Key: "specialty", Value: 1}},
			Options: options.Index().SetName("role_verification_specialty_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	ledgerIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_created_idx"),
		},
		// Only documents carrying a reference take part in uniqueness.
		{
			Keys: bson.D{{Key: "reference", Value: 1}, {Key: "userId", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_reference").
				SetPartialFilterExpression(bson.M{"reference": bson.M{"$type": "string"}}),
		},
	}
	if _, err := r.ledgerColl.Indexes().CreateMany(ctx, ledgerIndexes); err != nil {
		return fmt.Errorf("failed to create credit transaction indexes: %w", err)
	}
	return nil
}
