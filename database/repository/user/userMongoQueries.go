package userRepo

import (
	"fmt"
	"time"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, notFound(err))
	}
	return &user, nil
}

// GetByExternalID retrieves a user by the identity provider subject.
func (r *MongoUserRepo) GetByExternalID(externalID string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"externalId": externalID}).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to fetch user with external id %s: %w", externalID, notFound(err))
	}
	return &user, nil
}

// ListDoctors returns doctors with the given verification status, sorted by name.
func (r *MongoUserRepo) ListDoctors(specialty string, status models.VerificationStatus) ([]models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"role": models.RoleDoctor, "verificationStatus": status}
	if specialty != "" {
		filter["specialty"] = specialty
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	doctors := []models.User{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

// Transactions lists a user's ledger entries, newest first.
func (r *MongoUserRepo) Transactions(userID string, limit int) ([]models.CreditTransaction, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.ledgerColl.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit transactions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	txs := []models.CreditTransaction{}
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("failed to decode credit transactions: %w", err)
	}
	return txs, nil
}
