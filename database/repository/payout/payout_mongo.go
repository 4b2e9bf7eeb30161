package payoutRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/database"
	"medibook/database/repository"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoPayoutRepo struct {
	payoutColl *mongo.Collection
	userColl   *mongo.Collection
	ledgerColl *mongo.Collection
}

func NewMongoPayoutRepo() PayoutRepository {
	db := database.DB()
	repo := &MongoPayoutRepo{
		payoutColl: db.Collection("payouts"),
		userColl:   db.Collection("users"),
		ledgerColl: db.Collection("credit_transactions"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create payout indexes", zap.Error(err))
	}
	return repo
}

func (repo *MongoPayoutRepo) GetByID(id string) (*models.Payout, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var payout models.Payout
	if err := repo.payoutColl.FindOne(ctx, bson.M{"id": id}).Decode(&payout); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = repository.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching payout with id %s: %w", id, err)
	}
	return &payout, nil
}

func (repo *MongoPayoutRepo) Create(payout *models.Payout) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.payoutColl.InsertOne(ctx, payout); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("doctor %s already has a payout in progress: %w", payout.DoctorID, repository.ErrStateConflict)
		}
		return fmt.Errorf("failed to create payout: %w", err)
	}
	return nil
}

func (repo *MongoPayoutRepo) find(filter bson.M) ([]models.Payout, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.payoutColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching payouts: %w", err)
	}
	defer cursor.Close(ctx)

	payouts := []models.Payout{}
	if err := cursor.All(ctx, &payouts); err != nil {
		return nil, fmt.Errorf("error decoding payouts: %w", err)
	}
	return payouts, nil
}

func (repo *MongoPayoutRepo) ListByDoctor(doctorID string) ([]models.Payout, error) {
	return repo.find(bson.M{"doctorId": doctorID})
}

func (repo *MongoPayoutRepo) ListByStatus(status models.PayoutStatus) ([]models.Payout, error) {
	return repo.find(bson.M{"status": status})
}

func (repo *MongoPayoutRepo) Approve(ctx context.Context, payoutID, adminID string) (*models.Payout, error) {
	client := repo.payoutColl.Database().Client()

	var approved *models.Payout
	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now()
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		update := bson.M{"$set": bson.M{
			"status":      models.PayoutProcessed,
			"processedAt": now,
			"processedBy": adminID,
		}}

		var payout models.Payout
		err := repo.payoutColl.FindOneAndUpdate(sc,
			bson.M{"id": payoutID, "status": models.PayoutProcessing}, update, opts,
		).Decode(&payout)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("payout %s is not processing: %w", payoutID, repository.ErrStateConflict)
		}
		if err != nil {
			return fmt.Errorf("mark payout processed failed: %w", err)
		}

		res, err := repo.userColl.UpdateOne(sc,
			bson.M{"id": payout.DoctorID, "credits": bson.M{"$gte": payout.Credits}},
			bson.M{"$inc": bson.M{"credits": -payout.Credits}, "$set": bson.M{"updatedAt": now}},
		)
		if err != nil {
			return fmt.Errorf("debit doctor failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return repository.ErrInsufficientCredits
		}

		entry := models.CreditTransaction{
			ID:        uuid.New().String(),
			UserID:    payout.DoctorID,
			Amount:    -payout.Credits,
			Type:      models.CreditAdminAdjustment,
			Reference: payout.ID,
			CreatedAt: now,
		}
		if _, err := repo.ledgerColl.InsertOne(sc, entry); err != nil {
			return fmt.Errorf("insert payout transaction failed: %w", err)
		}
		approved = &payout
		return nil
	}

	if err := database.WithTransaction(ctx, client, txnFn); err != nil {
		return nil, fmt.Errorf("payout approval failed: %w", err)
	}
	return approved, nil
}
