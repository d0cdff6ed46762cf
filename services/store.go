package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fittrack/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrMealNotFound = errors.New("meal entry not found")
	ErrDuplicate    = errors.New("user already registered")
)

const (
	usersCollection   = "users"
	bmiCollection     = "bmi_records"
	bmrCollection     = "bmr_records"
	bodyFatCollection = "bodyfat_records"
)

// Store wraps the Mongo client for the user aggregate and the snapshot
// collections. Meal mutations are single atomic update operations on
// the embedded array ($push, $pull, positional $set) so concurrent
// writers for the same user never lose updates to a read-modify-write
// race.
type Store struct {
	client *mongo.Client
	dbName string
}

func NewStore(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, dbName: dbName}
}

func (s *Store) users() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(usersCollection)
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// EnsureIndexes creates the unique indexes on firebase_uid and email.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "firebase_uid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

// FindUser resolves a user document by its external auth id.
func (s *Store) FindUser(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"firebase_uid": firebaseUID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// InsertUser creates the user document at signup. A uid or email that
// already exists yields ErrDuplicate. The lookup is only a fast path:
// two concurrent registrations can both pass it, so the loser's unique
// index violation on insert maps to ErrDuplicate as well.
func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	filter := bson.M{"$or": bson.A{
		bson.M{"firebase_uid": user.FirebaseUID},
		bson.M{"email": user.Email},
	}}
	if err := s.users().FindOne(ctx, filter).Err(); err == nil {
		return ErrDuplicate
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	if user.CalorieTracking.MealEntries == nil {
		user.CalorieTracking.MealEntries = []models.MealEntry{}
	}
	if _, err := s.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// UpdateProfile overwrites the profile subdocument for a user.
func (s *Store) UpdateProfile(ctx context.Context, firebaseUID string, profile models.Profile) error {
	res, err := s.users().UpdateOne(ctx,
		bson.M{"firebase_uid": firebaseUID},
		bson.M{"$set": bson.M{"profile": profile}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetCalorieTargets overwrites the three calorie_tracking scalars in one
// atomic $set, leaving the embedded meal list untouched.
func (s *Store) SetCalorieTargets(ctx context.Context, firebaseUID string, bmr, dailyNeeds float64, activityLevel string) error {
	res, err := s.users().UpdateOne(ctx,
		bson.M{"firebase_uid": firebaseUID},
		bson.M{"$set": bson.M{
			"calorie_tracking.bmr":                 bmr,
			"calorie_tracking.daily_calorie_needs": dailyNeeds,
			"calorie_tracking.activity_level":      activityLevel,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// PushMeal atomically appends a meal entry to the user's embedded list.
func (s *Store) PushMeal(ctx context.Context, firebaseUID string, entry models.MealEntry) error {
	res, err := s.users().UpdateOne(ctx,
		bson.M{"firebase_uid": firebaseUID},
		bson.M{"$push": bson.M{"calorie_tracking.meal_entries": entry}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateMeal overwrites name, calories and quantity of one embedded
// entry via the positional operator. The filter must match both the
// user and the entry id, so a missing meal surfaces as ErrMealNotFound.
func (s *Store) UpdateMeal(ctx context.Context, firebaseUID string, mealID primitive.ObjectID, name string, calories, quantity float64) (*models.MealEntry, error) {
	res, err := s.users().UpdateOne(ctx,
		bson.M{
			"firebase_uid":                      firebaseUID,
			"calorie_tracking.meal_entries._id": mealID,
		},
		bson.M{"$set": bson.M{
			"calorie_tracking.meal_entries.$.name":     name,
			"calorie_tracking.meal_entries.$.calories": calories,
			"calorie_tracking.meal_entries.$.quantity": quantity,
		}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.FindUser(ctx, firebaseUID); err != nil {
			return nil, err
		}
		return nil, ErrMealNotFound
	}

	user, err := s.FindUser(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}
	for i := range user.CalorieTracking.MealEntries {
		if user.CalorieTracking.MealEntries[i].ID == mealID {
			return &user.CalorieTracking.MealEntries[i], nil
		}
	}
	return nil, ErrMealNotFound
}

// PullMeal atomically removes one embedded entry by id.
func (s *Store) PullMeal(ctx context.Context, firebaseUID string, mealID primitive.ObjectID) error {
	res, err := s.users().UpdateOne(ctx,
		bson.M{"firebase_uid": firebaseUID},
		bson.M{"$pull": bson.M{"calorie_tracking.meal_entries": bson.M{"_id": mealID}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrMealNotFound
	}
	return nil
}

// DeleteUser removes the user document; embedded meals go with it.
// Snapshot records are left in place for historical statistics.
func (s *Store) DeleteUser(ctx context.Context, firebaseUID string) error {
	res, err := s.users().DeleteOne(ctx, bson.M{"firebase_uid": firebaseUID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// InsertSnapshot appends a write-once record to the named snapshot
// collection.
func (s *Store) InsertSnapshot(ctx context.Context, collection string, record interface{}) error {
	_, err := s.collection(collection).InsertOne(ctx, record)
	return err
}
