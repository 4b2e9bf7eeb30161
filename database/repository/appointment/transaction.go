package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/database/repository"
	"medibook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func ledgerEntry(userID string, amount int, txType models.CreditTransactionType, ref string, at time.Time) models.CreditTransaction {
	return models.CreditTransaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    amount,
		Type:      txType,
		Reference: ref,
		CreatedAt: at,
	}
}

// bookingEntries moves appt.Credits from the patient to the doctor.
func bookingEntries(appt *models.Appointment, at time.Time) []interface{} {
	return []interface{}{
		ledgerEntry(appt.PatientID, -appt.Credits, models.CreditAppointment, appt.ID, at),
		ledgerEntry(appt.DoctorID, appt.Credits, models.CreditEarning, appt.ID, at),
	}
}

// refundEntries reverses bookingEntries.
func refundEntries(appt *models.Appointment, at time.Time) []interface{} {
	return []interface{}{
		ledgerEntry(appt.PatientID, appt.Credits, models.CreditRefund, appt.ID, at),
		ledgerEntry(appt.DoctorID, -appt.Credits, models.CreditRefund, appt.ID, at),
	}
}

func (repo *MongoAppointmentRepo) Book(ctx context.Context, appt *models.Appointment) error {
	client := repo.apptColl.Database().Client()

	txnFn := func(sc mongo.SessionContext) error {
		// Live recheck; the slot list the patient saw may be stale.
		n, err := repo.apptColl.CountDocuments(sc, overlapFilter(appt.DoctorID, appt.StartTime, appt.EndTime))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return repository.ErrSlotTaken
		}

		now := time.Now()
		res, err := repo.userColl.UpdateOne(sc,
			bson.M{"id": appt.PatientID, "credits": bson.M{"$gte": appt.Credits}},
			bson.M{"$inc": bson.M{"credits": -appt.Credits}, "$set": bson.M{"updatedAt": now}},
		)
		if err != nil {
			return fmt.Errorf("debit patient failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return repository.ErrInsufficientCredits
		}

		res, err = repo.userColl.UpdateOne(sc,
			bson.M{"id": appt.DoctorID},
			bson.M{"$inc": bson.M{"credits": appt.Credits}, "$set": bson.M{"updatedAt": now}},
		)
		if err != nil {
			return fmt.Errorf("credit doctor failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("doctor %s: %w", appt.DoctorID, repository.ErrNotFound)
		}

		if _, err := repo.ledgerColl.InsertMany(sc, bookingEntries(appt, now)); err != nil {
			return fmt.Errorf("insert credit transactions failed: %w", err)
		}

		appt.CreatedAt = now
		appt.UpdatedAt = now
		if _, err := repo.apptColl.InsertOne(sc, appt); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return repository.ErrSlotTaken
			}
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := database.WithTransaction(ctx, client, txnFn); err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) Cancel(ctx context.Context, id string) (*models.Appointment, error) {
	client := repo.apptColl.Database().Client()

	var cancelled *models.Appointment
	txnFn := func(sc mongo.SessionContext) error {
		appt, err := repo.updateScheduled(sc, id, bson.M{"status": models.AppointmentCancelled})
		if err != nil {
			return err
		}

		now := time.Now()
		if appt.Credits > 0 {
			if _, err := repo.userColl.UpdateOne(sc,
				bson.M{"id": appt.PatientID},
				bson.M{"$inc": bson.M{"credits": appt.Credits}, "$set": bson.M{"updatedAt": now}},
			); err != nil {
				return fmt.Errorf("refund patient failed: %w", err)
			}
			if _, err := repo.userColl.UpdateOne(sc,
				bson.M{"id": appt.DoctorID},
				bson.M{"$inc": bson.M{"credits": -appt.Credits}, "$set": bson.M{"updatedAt": now}},
			); err != nil {
				return fmt.Errorf("debit doctor failed: %w", err)
			}

			if _, err := repo.ledgerColl.InsertMany(sc, refundEntries(appt, now)); err != nil {
				return fmt.Errorf("insert refund transactions failed: %w", err)
			}
		}
		cancelled = appt
		return nil
	}

	if err := database.WithTransaction(ctx, client, txnFn); err != nil {
		return nil, fmt.Errorf("cancel transaction failed: %w", err)
	}
	return cancelled, nil
}
