package userRepo

import (
	"context"
	"errors"
	"time"

	"medibook/database"
	"medibook/database/repository"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll       *mongo.Collection
	ledgerColl *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	db := database.DB()
	repo := &MongoUserRepo{
		coll:       db.Collection("users"),
		ledgerColl: db.Collection("credit_transactions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create user indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

func (r *MongoUserRepo) client() *mongo.Client {
	return r.coll.Database().Client()
}
