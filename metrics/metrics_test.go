package metrics

import (
	"errors"
	"math"
	"testing"
)

// TestBMR_MaleFemaleOffset verifies that with identical inputs the male
// and female formulas differ by exactly the constant 166 (+5 vs -161).
func TestBMR_MaleFemaleOffset(t *testing.T) {
	cases := []struct {
		age      int
		weightKG float64
		heightCM float64
	}{
		{30, 80, 180},
		{25, 55.5, 162},
		{70, 95, 175.5},
	}

	for _, tc := range cases {
		male, err := BMR(tc.age, "male", tc.weightKG, tc.heightCM)
		if err != nil {
			t.Fatalf("BMR(male) error: %v", err)
		}
		female, err := BMR(tc.age, "female", tc.weightKG, tc.heightCM)
		if err != nil {
			t.Fatalf("BMR(female) error: %v", err)
		}
		if diff := male - female; math.Abs(diff-166) > 1e-9 {
			t.Errorf("BMR(male)-BMR(female) = %v, want 166", diff)
		}
	}
}

// TestBMR_KnownValue checks the male formula against a hand-computed
// value: 10*80 + 6.25*180 - 5*30 + 5 = 1780.
func TestBMR_KnownValue(t *testing.T) {
	bmr, err := BMR(30, "male", 80, 180)
	if err != nil {
		t.Fatalf("BMR error: %v", err)
	}
	if math.Abs(bmr-1780) > 1e-9 {
		t.Errorf("BMR = %v, want 1780", bmr)
	}
}

func TestBMR_InvalidGender(t *testing.T) {
	for _, gender := range []string{"", "other", "MALE", "Female"} {
		if _, err := BMR(30, gender, 80, 180); !errors.Is(err, ErrInvalidGender) {
			t.Errorf("BMR(gender=%q) error = %v, want ErrInvalidGender", gender, err)
		}
	}
}

func TestBMR_NonPositiveInputs(t *testing.T) {
	cases := []struct {
		name     string
		age      int
		weightKG float64
		heightCM float64
	}{
		{"zero age", 0, 80, 180},
		{"negative age", -1, 80, 180},
		{"zero weight", 30, 0, 180},
		{"zero height", 30, 80, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BMR(tc.age, "male", tc.weightKG, tc.heightCM); !errors.Is(err, ErrNonPositiveInput) {
				t.Errorf("error = %v, want ErrNonPositiveInput", err)
			}
		})
	}
}

// TestDailyCalorieNeeds_Multipliers verifies every defined activity
// level against its fixed multiplier.
func TestDailyCalorieNeeds_Multipliers(t *testing.T) {
	const bmr = 1600.0
	cases := []struct {
		level string
		mult  float64
	}{
		{"sedentary", 1.2},
		{"light", 1.375},
		{"moderate", 1.55},
		{"active", 1.725},
		{"veryActive", 1.9},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			needs, err := DailyCalorieNeeds(bmr, tc.level)
			if err != nil {
				t.Fatalf("DailyCalorieNeeds error: %v", err)
			}
			if want := bmr * tc.mult; math.Abs(needs-want) > 1e-9 {
				t.Errorf("DailyCalorieNeeds = %v, want %v", needs, want)
			}
		})
	}
}

// TestDailyCalorieNeeds_UnknownLevel verifies an unknown level raises an
// error rather than silently computing a garbage value.
func TestDailyCalorieNeeds_UnknownLevel(t *testing.T) {
	for _, level := range []string{"", "extreme", "Sedentary", "very_active"} {
		if _, err := DailyCalorieNeeds(1600, level); !errors.Is(err, ErrUnknownActivityLevel) {
			t.Errorf("DailyCalorieNeeds(level=%q) error = %v, want ErrUnknownActivityLevel", level, err)
		}
	}
}

func TestBMI(t *testing.T) {
	// 80kg at 2m is exactly 20.
	bmi, err := BMI(80, 200)
	if err != nil {
		t.Fatalf("BMI error: %v", err)
	}
	if math.Abs(bmi-20) > 1e-9 {
		t.Errorf("BMI = %v, want 20", bmi)
	}

	if _, err := BMI(0, 180); !errors.Is(err, ErrNonPositiveInput) {
		t.Errorf("BMI(0, 180) error = %v, want ErrNonPositiveInput", err)
	}
	if _, err := BMI(80, -1); !errors.Is(err, ErrNonPositiveInput) {
		t.Errorf("BMI(80, -1) error = %v, want ErrNonPositiveInput", err)
	}
}

func TestBodyFatPct(t *testing.T) {
	// Deurenberg, male: 1.20*25 + 0.23*40 - 10.8 - 5.4 = 23.0
	got, err := BodyFatPct(25, 40, "male")
	if err != nil {
		t.Fatalf("BodyFatPct error: %v", err)
	}
	if math.Abs(got-23.0) > 1e-9 {
		t.Errorf("BodyFatPct(male) = %v, want 23.0", got)
	}

	// Female is the same minus the -10.8 sex term: 33.8
	got, err = BodyFatPct(25, 40, "female")
	if err != nil {
		t.Fatalf("BodyFatPct error: %v", err)
	}
	if math.Abs(got-33.8) > 1e-9 {
		t.Errorf("BodyFatPct(female) = %v, want 33.8", got)
	}

	if _, err := BodyFatPct(25, 40, "x"); !errors.Is(err, ErrInvalidGender) {
		t.Errorf("BodyFatPct(gender=x) error = %v, want ErrInvalidGender", err)
	}
	if _, err := BodyFatPct(0, 40, "male"); !errors.Is(err, ErrNonPositiveInput) {
		t.Errorf("BodyFatPct(bmi=0) error = %v, want ErrNonPositiveInput", err)
	}
}
