// Package metrics holds the pure body-metric calculators. Every function
// validates its inputs and returns an explicit error instead of letting
// NaN or a zero result leak into stored documents.
package metrics

import "errors"

var (
	ErrInvalidGender        = errors.New(`gender must be "male" or "female"`)
	ErrUnknownActivityLevel = errors.New("unknown activity level")
	ErrNonPositiveInput     = errors.New("age, weight and height must be positive")
)

// activityMultipliers maps activity level strings to their TDEE
// multiplier. This is the single source of truth for valid levels.
var activityMultipliers = map[string]float64{
	"sedentary":  1.2,
	"light":      1.375,
	"moderate":   1.55,
	"active":     1.725,
	"veryActive": 1.9,
}

// BMR computes the basal metabolic rate via Mifflin-St Jeor:
// 10*weight + 6.25*height - 5*age, plus 5 for male or minus 161 for
// female. The two formulas differ by a constant 166.
func BMR(age int, gender string, weightKG, heightCM float64) (float64, error) {
	if age <= 0 || weightKG <= 0 || heightCM <= 0 {
		return 0, ErrNonPositiveInput
	}

	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	switch gender {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		return 0, ErrInvalidGender
	}
	return bmr, nil
}

// DailyCalorieNeeds scales a BMR by the multiplier for activityLevel.
func DailyCalorieNeeds(bmr float64, activityLevel string) (float64, error) {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		return 0, ErrUnknownActivityLevel
	}
	return bmr * mult, nil
}

// BMI is weight in kilograms over height in meters squared.
func BMI(weightKG, heightCM float64) (float64, error) {
	if weightKG <= 0 || heightCM <= 0 {
		return 0, ErrNonPositiveInput
	}
	heightM := heightCM / 100
	return weightKG / (heightM * heightM), nil
}

// BodyFatPct estimates body fat percentage from BMI using the
// Deurenberg adult formula: 1.20*BMI + 0.23*age - 10.8*sex - 5.4,
// where sex is 1 for male and 0 for female.
func BodyFatPct(bmi float64, age int, gender string) (float64, error) {
	if bmi <= 0 || age <= 0 {
		return 0, ErrNonPositiveInput
	}

	var sex float64
	switch gender {
	case "male":
		sex = 1
	case "female":
		sex = 0
	default:
		return 0, ErrInvalidGender
	}
	return 1.20*bmi + 0.23*float64(age) - 10.8*sex - 5.4, nil
}
