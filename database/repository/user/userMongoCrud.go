package userRepo

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to create user: %w", repository.ErrDuplicateReference)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// SetFCMToken stores the device token used for push notifications.
func (r *MongoUserRepo) SetFCMToken(id, token string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"fcmToken": token, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set fcm token for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

// updateUnassigned applies set to a user still in the UNASSIGNED role.
func (r *MongoUserRepo) updateUnassigned(ctx context.Context, id string, update bson.M) (*models.User, error) {
	filter := bson.M{"id": id, "role": models.RoleUnassigned}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %s is not unassigned: %w", id, repository.ErrStateConflict)
		}
		return nil, fmt.Errorf("failed to onboard user %s: %w", id, err)
	}
	return &user, nil
}

// OnboardPatient assigns the patient role and records the initial grant.
func (r *MongoUserRepo) OnboardPatient(ctx context.Context, id string, credits int) (*models.User, error) {
	var user *models.User
	err := database.WithTransaction(ctx, r.client(), func(sc mongo.SessionContext) error {
		now := time.Now()
		u, err := r.updateUnassigned(sc, id, bson.M{
			"$set": bson.M{"role": models.RolePatient, "updatedAt": now},
			"$inc": bson.M{"credits": credits},
		})
		if err != nil {
			return err
		}
		if credits > 0 {
			tx := models.CreditTransaction{
				ID:        uuid.New().String(),
				UserID:    id,
				Amount:    credits,
				Type:      models.CreditAdminAdjustment,
				Reference: "onboard:" + id,
				CreatedAt: now,
			}
			if _, err := r.ledgerColl.InsertOne(sc, tx); err != nil {
				return fmt.Errorf("failed to record initial credits: %w", err)
			}
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// OnboardDoctor assigns the doctor role with a pending verification.
func (r *MongoUserRepo) OnboardDoctor(id string, profile models.DoctorProfile, credentialURL string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	return r.updateUnassigned(ctx, id, bson.M{"$set": bson.M{
		"role":               models.RoleDoctor,
		"specialty":          profile.Specialty,
		"experience":         profile.Experience,
		"description":        profile.Description,
		"credentialUrl":      credentialURL,
		"verificationStatus": models.VerificationPending,
		"updatedAt":          time.Now(),
	}})
}

// SetVerification updates a doctor's verification status.
func (r *MongoUserRepo) SetVerification(id string, status models.VerificationStatus) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "role": models.RoleDoctor}
	update := bson.M{"$set": bson.M{"verificationStatus": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to set verification for doctor %s: %w", id, notFound(err))
	}
	return &user, nil
}

// GrantCredits adds credits and records the ledger entry in one transaction.
func (r *MongoUserRepo) GrantCredits(ctx context.Context, userID string, credits int, txType models.CreditTransactionType, reference string) error {
	return database.WithTransaction(ctx, r.client(), func(sc mongo.SessionContext) error {
		now := time.Now()
		tx := models.CreditTransaction{
			ID:        uuid.New().String(),
			UserID:    userID,
			Amount:    credits,
			Type:      txType,
			Reference: reference,
			CreatedAt: now,
		}
		if _, err := r.ledgerColl.InsertOne(sc, tx); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return repository.ErrDuplicateReference
			}
			return fmt.Errorf("failed to record credit grant: %w", err)
		}

		update := bson.M{"$inc": bson.M{"credits": credits}, "$set": bson.M{"updatedAt": now}}
		res, err := r.coll.UpdateOne(sc, bson.M{"id": userID}, update)
		if err != nil {
			return fmt.Errorf("failed to grant credits to user %s: %w", userID, err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("user with id %s: %w", userID, repository.ErrNotFound)
		}
		return nil
	})
}
