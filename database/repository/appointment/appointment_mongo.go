package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonflow/config"
	"salonflow/database"
	"salonflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) FindByProvider(providerID string, excludeCompleted bool) ([]models.Appointment, error) {
	filter := bson.M{"providerId": providerID}
	if excludeCompleted {
		filter["completed"] = false
	}
	return r.find(filter)
}

func (r *MongoAppointmentRepo) FindByClient(clientID string, excludeCompleted bool) ([]models.Appointment, error) {
	filter := bson.M{"clientId": clientID}
	if excludeCompleted {
		filter["completed"] = false
	}
	return r.find(filter)
}

func (r *MongoAppointmentRepo) FindByProviderBetween(providerID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"providerId":      providerID,
		"appointmentTime": bson.M{"$gte": from, "$lt": to},
	}
	return r.find(filter)
}

func (r *MongoAppointmentRepo) find(filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)
	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, nil
}

// conflictFilter matches every non-completed appointment occupying the exact
// instant for either side of the candidate booking.
func conflictFilter(clientID, providerID string, at time.Time, excludeID string) bson.M {
	filter := bson.M{
		"appointmentTime": at,
		"completed":       false,
		"$or": bson.A{
			bson.M{"providerId": providerID},
			bson.M{"clientId": clientID},
		},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

// CreateExclusive inserts the appointment after re-checking, inside a single
// transaction, that no other non-completed appointment holds the same
// (provider, instant) or (client, instant) pair.
func (r *MongoAppointmentRepo) CreateExclusive(appt *models.Appointment) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		count, err := r.coll.CountDocuments(sc, conflictFilter(appt.ClientID, appt.ProviderID, appt.Time, ""))
		if err != nil {
			return nil, fmt.Errorf("conflict re-check failed: %w", err)
		}
		if count > 0 {
			return nil, ErrTimeSlotTaken
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return nil, fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil, nil
	}

	if _, err := sess.WithTransaction(ctx, txnFn); err != nil {
		return err
	}
	return nil
}

// UpdateTimeExclusive moves the appointment to newTime under the same
// transactional mutual-exclusion re-check, excluding the appointment's own
// prior slot by identity.
func (r *MongoAppointmentRepo) UpdateTimeExclusive(id string, clientID, providerID string, newTime, updatedAt time.Time) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		count, err := r.coll.CountDocuments(sc, conflictFilter(clientID, providerID, newTime, id))
		if err != nil {
			return nil, fmt.Errorf("conflict re-check failed: %w", err)
		}
		if count > 0 {
			return nil, ErrTimeSlotTaken
		}
		result, err := r.coll.UpdateOne(sc, bson.M{"id": id}, bson.M{"$set": bson.M{
			"appointmentTime": newTime,
			"updatedAt":       updatedAt,
		}})
		if err != nil {
			return nil, fmt.Errorf("update appointment time failed: %w", err)
		}
		if result.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		return nil, nil
	}

	if _, err := sess.WithTransaction(ctx, txnFn); err != nil {
		return err
	}
	return nil
}

func (r *MongoAppointmentRepo) Update(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": appt.ID}, bson.M{"$set": appt})
	if err != nil {
		return fmt.Errorf("failed to update appointment with id %s: %w", appt.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAppointmentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
