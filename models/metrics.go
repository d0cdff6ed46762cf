package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snapshot records are write-once: inserted when a calculator runs and
// never mutated, so admin-wide averages stay cheap to compute.

type BMIRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirebaseUID string             `bson:"firebase_uid" json:"firebaseUid"`
	BMI         float64            `bson:"bmi" json:"bmi"`
	WeightKG    float64            `bson:"weight_kg" json:"weightKg"`
	HeightCM    float64            `bson:"height_cm" json:"heightCm"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

type BMRRecord struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirebaseUID       string             `bson:"firebase_uid" json:"firebaseUid"`
	BMR               float64            `bson:"bmr" json:"bmr"`
	DailyCalorieNeeds float64            `bson:"daily_calorie_needs" json:"dailyCalorieNeeds"`
	ActivityLevel     string             `bson:"activity_level" json:"activityLevel"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
}

type BodyFatRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirebaseUID string             `bson:"firebase_uid" json:"firebaseUid"`
	BodyFatPct  float64            `bson:"body_fat_pct" json:"bodyFatPct"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
