package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/database"
	"medibook/database/repository"
	"medibook/models"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoAppointmentRepo implements AppointmentRepository. It also writes to the
// users and credit_transactions collections inside its transactions.
type MongoAppointmentRepo struct {
	apptColl   *mongo.Collection
	userColl   *mongo.Collection
	ledgerColl *mongo.Collection
}

func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.DB()
	repo := &MongoAppointmentRepo{
		apptColl:   db.Collection("appointments"),
		userColl:   db.Collection("users"),
		ledgerColl: db.Collection("credit_transactions"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create appointment indexes", zap.Error(err))
	}
	return repo
}

func (repo *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := repo.apptColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = repository.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// overlapFilter matches SCHEDULED appointments of doctorID with
// startTime < to and endTime > from.
func overlapFilter(doctorID string, from, to time.Time) bson.M {
	return bson.M{
		"doctorId":  doctorID,
		"status":    models.AppointmentScheduled,
		"startTime": bson.M{"$lt": to},
		"endTime":   bson.M{"$gt": from},
	}
}

func (repo *MongoAppointmentRepo) ListOverlapping(doctorID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := repo.apptColl.Find(ctx, overlapFilter(doctorID, from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments for doctor %s: %w", doctorID, err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) ListScheduled(userID string, asDoctor bool) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	field := "patientId"
	if asDoctor {
		field = "doctorId"
	}
	filter := bson.M{field: userID, "status": models.AppointmentScheduled}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})

	cursor, err := repo.apptColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// updateScheduled applies set to a SCHEDULED appointment and returns the result.
func (repo *MongoAppointmentRepo) updateScheduled(ctx context.Context, id string, set bson.M) (*models.Appointment, error) {
	set["updatedAt"] = time.Now()
	filter := bson.M{"id": id, "status": models.AppointmentScheduled}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt models.Appointment
	err := repo.apptColl.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("appointment %s is not scheduled: %w", id, repository.ErrStateConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) UpdateNotes(id, notes string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return repo.updateScheduled(ctx, id, bson.M{"notes": notes})
}

func (repo *MongoAppointmentRepo) Complete(id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return repo.updateScheduled(ctx, id, bson.M{"status": models.AppointmentCompleted})
}
