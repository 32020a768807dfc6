package workinghoursRepo

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

// MongoWorkingHoursRepo implements WorkingHoursRepository using MongoDB.
type MongoWorkingHoursRepo struct {
	coll *mongo.Collection
}

// NewMongoWorkingHoursRepo creates a new instance of WorkingHoursRepository using MongoDB.
func NewMongoWorkingHoursRepo() WorkingHoursRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("working_hours")
	repo := &MongoWorkingHoursRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoWorkingHoursRepo) GetByID(id string) (*models.WorkingHours, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var wh models.WorkingHours
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&wh); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch working hours with id %s: %w", id, err)
	}
	return &wh, nil
}

func (r *MongoWorkingHoursRepo) FindByProviderAndDay(providerID string, day time.Weekday) (*models.WorkingHours, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	filter := bson.M{
		"dayOfWeek":   day,
		"providerIds": providerID,
	}
	var wh models.WorkingHours
	if err := r.coll.FindOne(ctx, filter).Decode(&wh); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch working hours for provider %s on day %d: %w", providerID, day, err)
	}
	return &wh, nil
}

func (r *MongoWorkingHoursRepo) FindByWindow(window models.WorkingHoursWindow) (*models.WorkingHours, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	filter := bson.M{
		"dayOfWeek": window.DayOfWeek,
		"start":     window.Start,
		"end":       window.End,
	}
	var wh models.WorkingHours
	if err := r.coll.FindOne(ctx, filter).Decode(&wh); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch working hours for window %+v: %w", window, err)
	}
	return &wh, nil
}

func (r *MongoWorkingHoursRepo) ListByProvider(providerID string) ([]models.WorkingHours, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{"providerIds": providerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)
	var windows []models.WorkingHours
	for cursor.Next(ctx) {
		var wh models.WorkingHours
		if err := cursor.Decode(&wh); err != nil {
			return nil, fmt.Errorf("failed to decode working hours: %w", err)
		}
		windows = append(windows, wh)
	}
	return windows, nil
}

func (r *MongoWorkingHoursRepo) Create(wh *models.WorkingHours) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, wh); err != nil {
		return fmt.Errorf("failed to create working hours: %w", err)
	}
	return nil
}

func (r *MongoWorkingHoursRepo) AddProviderRef(id, providerID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	update := bson.M{"$addToSet": bson.M{"providerIds": providerID}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add provider ref to working hours %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoWorkingHoursRepo) RemoveProviderRef(id, providerID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	update := bson.M{"$pull": bson.M{"providerIds": providerID}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to remove provider ref from working hours %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteIfUnreferenced deletes the record only when its provider set is
// empty. The size predicate rides inside the delete filter, so a concurrent
// AddProviderRef can never race the check.
func (r *MongoWorkingHoursRepo) DeleteIfUnreferenced(id string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	filter := bson.M{"id": id, "providerIds": bson.M{"$size": 0}}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed conditional delete of working hours %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

// ReleaseProviderRefs removes one provider from the listed records and sweeps
// any record left with an empty provider set, in a single transaction so the
// whole cleanup either commits or rolls back.
func (r *MongoWorkingHoursRepo) ReleaseProviderRefs(providerID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.coll.UpdateMany(sc,
			bson.M{"id": bson.M{"$in": ids}},
			bson.M{"$pull": bson.M{"providerIds": providerID}},
		); err != nil {
			return nil, fmt.Errorf("failed to release provider refs: %w", err)
		}
		if _, err := r.coll.DeleteMany(sc,
			bson.M{"id": bson.M{"$in": ids}, "providerIds": bson.M{"$size": 0}},
		); err != nil {
			return nil, fmt.Errorf("failed to sweep unreferenced working hours: %w", err)
		}
		return nil, nil
	}

	if _, err := sess.WithTransaction(ctx, txnFn); err != nil {
		return err
	}
	return nil
}
