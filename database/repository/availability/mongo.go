package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo returns an AvailabilityRepository backed by the
// availabilities collection.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	repo := &mongoAvailabilityRepo{coll: database.DB().Collection("availabilities")}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create availability indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoAvailabilityRepo) GetByDoctor(doctorID string) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var window models.Availability
	err := r.coll.FindOne(ctx, bson.M{"doctorId": doctorID}).Decode(&window)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability for doctor %s: %w", doctorID, err)
	}
	return &window, nil
}

func (r *mongoAvailabilityRepo) Upsert(window *models.Availability) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"doctorId": window.DoctorID}
	update := bson.M{
		"$set": bson.M{
			"startMinute": window.StartMinute,
			"endMinute":   window.EndMinute,
			"timeZone":    window.TimeZone,
			"status":      window.Status,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"doctorId":  window.DoctorID,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.Availability
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, fmt.Errorf("failed to save availability for doctor %s: %w", window.DoctorID, err)
	}
	return &saved, nil
}
