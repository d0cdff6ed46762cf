package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirebaseUID     string             `bson:"firebase_uid" json:"firebaseUid"`
	Email           string             `bson:"email" json:"email"`
	Name            string             `bson:"name,omitempty" json:"name"`
	Profile         Profile            `bson:"profile" json:"profile"`
	CalorieTracking CalorieTracking    `bson:"calorie_tracking" json:"calorieTracking"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// Profile holds free-form demographic and dietary fields. No cross-field
// invariants are enforced here.
type Profile struct {
	Age            int      `bson:"age,omitempty" json:"age"`
	Gender         string   `bson:"gender,omitempty" json:"gender"`
	HeightCM       float64  `bson:"height_cm,omitempty" json:"heightCm"`
	WeightKG       float64  `bson:"weight_kg,omitempty" json:"weightKg"`
	TargetWeightKG float64  `bson:"target_weight_kg,omitempty" json:"targetWeightKg"`
	DietType       string   `bson:"diet_type,omitempty" json:"dietType"`
	Allergies      []string `bson:"allergies,omitempty" json:"allergies"`
}

// CalorieTracking is the derived calorie state embedded in the user
// document. DailyCalorieNeeds is always bmr scaled by the activity
// multiplier; both are rewritten together by the BMR calculator.
type CalorieTracking struct {
	BMR               float64     `bson:"bmr" json:"bmr"`
	DailyCalorieNeeds float64     `bson:"daily_calorie_needs" json:"dailyCalorieNeeds"`
	ActivityLevel     string      `bson:"activity_level" json:"activityLevel"`
	MealEntries       []MealEntry `bson:"meal_entries" json:"mealEntries"`
}

// MealEntry is embedded in its owning user document and has no identity
// outside it.
type MealEntry struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Calories float64            `bson:"calories" json:"calories"`
	Quantity float64            `bson:"quantity" json:"quantity"`
	Date     time.Time          `bson:"date" json:"date"`
}
