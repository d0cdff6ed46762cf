package services

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fittrack/metrics"
	"fittrack/models"
)

// dayWindow returns the UTC day boundaries [start, end) for a
// YYYY-MM-DD date string. An entry at 23:59:59.999 falls inside the
// window; the next day's 00:00:00.000 does not.
func dayWindow(date string) (time.Time, time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1), nil
}

// mealsInWindow filters entries to those with start <= date < end,
// preserving stored order.
func mealsInWindow(entries []models.MealEntry, start, end time.Time) []models.MealEntry {
	selected := []models.MealEntry{}
	for _, e := range entries {
		if !e.Date.Before(start) && e.Date.Before(end) {
			selected = append(selected, e)
		}
	}
	return selected
}

func sumCalories(entries []models.MealEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Calories
	}
	return total
}

// writeStoreError maps store sentinel errors onto status codes.
func writeStoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, ErrMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal entry not found"})
	default:
		log.Println("STORE ERROR:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// CalculateBMR computes BMR and daily calorie needs for a user and
// overwrites the calorie_tracking scalars. A write-once BMR snapshot is
// appended for the admin statistics; a failed snapshot insert is logged
// but does not fail the request.
func CalculateBMR(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FirebaseUID   string  `json:"firebaseUid"`
			Age           int     `json:"age"`
			Gender        string  `json:"gender"`
			Weight        float64 `json:"weight"`
			Height        float64 `json:"height"`
			ActivityLevel string  `json:"activityLevel"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("BIND JSON ERROR:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		if req.FirebaseUID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "firebaseUid is required"})
			return
		}

		bmr, err := metrics.BMR(req.Age, req.Gender, req.Weight, req.Height)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		dailyNeeds, err := metrics.DailyCalorieNeeds(bmr, req.ActivityLevel)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := store.SetCalorieTargets(c.Request.Context(), req.FirebaseUID, bmr, dailyNeeds, req.ActivityLevel); err != nil {
			writeStoreError(c, err, "Failed to update calorie targets")
			return
		}

		snapshot := models.BMRRecord{
			FirebaseUID:       req.FirebaseUID,
			BMR:               bmr,
			DailyCalorieNeeds: dailyNeeds,
			ActivityLevel:     req.ActivityLevel,
			CreatedAt:         time.Now().UTC(),
		}
		if err := store.InsertSnapshot(c.Request.Context(), bmrCollection, snapshot); err != nil {
			log.Println("INSERT BMR SNAPSHOT ERROR:", err)
		}

		c.JSON(http.StatusOK, gin.H{"bmr": bmr, "dailyCalorieNeeds": dailyNeeds})
	}
}

// AddMeal appends a meal entry to the user's embedded list. The date
// defaults to submission time (UTC) when absent.
func AddMeal(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FirebaseUID string     `json:"firebaseUid"`
			Name        string     `json:"name"`
			Calories    float64    `json:"calories"`
			Quantity    float64    `json:"quantity"`
			Date        *time.Time `json:"date"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("BIND JSON ERROR:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		if req.FirebaseUID == "" || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "firebaseUid and name are required"})
			return
		}

		entry := models.MealEntry{
			ID:       primitive.NewObjectID(),
			Name:     req.Name,
			Calories: req.Calories,
			Quantity: req.Quantity,
			Date:     time.Now().UTC(),
		}
		if req.Date != nil {
			entry.Date = req.Date.UTC()
		}

		if err := store.PushMeal(c.Request.Context(), req.FirebaseUID, entry); err != nil {
			writeStoreError(c, err, "Failed to add meal entry")
			return
		}

		c.JSON(http.StatusOK, entry)
	}
}

// GetMealsByDate returns the meal entries whose timestamp falls within
// the UTC day named by the :date path parameter.
func GetMealsByDate(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		firebaseUID := c.Query("firebaseUid")
		if firebaseUID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "firebaseUid is required"})
			return
		}

		start, end, err := dayWindow(c.Param("date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}

		user, err := store.FindUser(c.Request.Context(), firebaseUID)
		if err != nil {
			writeStoreError(c, err, "Failed to fetch meals")
			return
		}

		c.JSON(http.StatusOK, mealsInWindow(user.CalorieTracking.MealEntries, start, end))
	}
}

// UpdateMeal overwrites name, calories and quantity of one embedded
// entry, addressed by the :mealId path parameter.
func UpdateMeal(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		mealID, err := primitive.ObjectIDFromHex(c.Param("mealId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
			return
		}

		var req struct {
			FirebaseUID string  `json:"firebaseUid"`
			Name        string  `json:"name"`
			Calories    float64 `json:"calories"`
			Quantity    float64 `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("BIND JSON ERROR:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		if req.FirebaseUID == "" || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "firebaseUid and name are required"})
			return
		}

		entry, err := store.UpdateMeal(c.Request.Context(), req.FirebaseUID, mealID, req.Name, req.Calories, req.Quantity)
		if err != nil {
			writeStoreError(c, err, "Failed to update meal entry")
			return
		}

		c.JSON(http.StatusOK, entry)
	}
}

// DeleteMeal removes one embedded entry by id.
func DeleteMeal(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		firebaseUID := c.Query("firebaseUid")
		if firebaseUID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "firebaseUid is required"})
			return
		}

		mealID, err := primitive.ObjectIDFromHex(c.Param("mealId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
			return
		}

		if err := store.PullMeal(c.Request.Context(), firebaseUID, mealID); err != nil {
			writeStoreError(c, err, "Failed to delete meal entry")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Meal entry deleted"})
	}
}

// GetCalorieSummary reports consumed vs. remaining calories for one UTC
// day. When daily calorie needs were never calculated the goal is
// treated as 0 and the response is flagged with goalNotSet.
func GetCalorieSummary(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		firebaseUID := c.Query("firebaseUid")
		if firebaseUID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "firebaseUid is required"})
			return
		}

		start, end, err := dayWindow(c.Param("date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}

		user, err := store.FindUser(c.Request.Context(), firebaseUID)
		if err != nil {
			writeStoreError(c, err, "Failed to fetch summary")
			return
		}

		goal := user.CalorieTracking.DailyCalorieNeeds
		consumed := sumCalories(mealsInWindow(user.CalorieTracking.MealEntries, start, end))

		c.JSON(http.StatusOK, gin.H{
			"dailyGoal":  goal,
			"consumed":   consumed,
			"remaining":  goal - consumed,
			"goalNotSet": goal == 0,
		})
	}
}

// GetUserData returns the stored calorie-tracking scalars for a user.
func GetUserData(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		firebaseUID := c.Query("firebaseUid")
		if firebaseUID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "firebaseUid is required"})
			return
		}

		user, err := store.FindUser(c.Request.Context(), firebaseUID)
		if err != nil {
			writeStoreError(c, err, "Failed to fetch user data")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"bmr":               user.CalorieTracking.BMR,
			"dailyCalorieNeeds": user.CalorieTracking.DailyCalorieNeeds,
			"activityLevel":     user.CalorieTracking.ActivityLevel,
		})
	}
}
