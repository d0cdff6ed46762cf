package services

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack/metrics"
	"fittrack/models"
)

// SaveBMI computes a BMI value and persists it as a write-once snapshot.
func SaveBMI(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FirebaseUID string  `json:"firebaseUid"`
			Weight      float64 `json:"weight"`
			Height      float64 `json:"height"`
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

		bmi, err := metrics.BMI(req.Weight, req.Height)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		record := models.BMIRecord{
			FirebaseUID: req.FirebaseUID,
			BMI:         bmi,
			WeightKG:    req.Weight,
			HeightCM:    req.Height,
			CreatedAt:   time.Now().UTC(),
		}
		if err := store.InsertSnapshot(c.Request.Context(), bmiCollection, record); err != nil {
			log.Println("INSERT BMI SNAPSHOT ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save BMI"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"bmi": bmi})
	}
}

// SaveBodyFat computes a body-fat percentage from BMI inputs and
// persists it as a write-once snapshot.
func SaveBodyFat(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FirebaseUID string  `json:"firebaseUid"`
			Age         int     `json:"age"`
			Gender      string  `json:"gender"`
			Weight      float64 `json:"weight"`
			Height      float64 `json:"height"`
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

		bmi, err := metrics.BMI(req.Weight, req.Height)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		bodyFat, err := metrics.BodyFatPct(bmi, req.Age, req.Gender)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		record := models.BodyFatRecord{
			FirebaseUID: req.FirebaseUID,
			BodyFatPct:  bodyFat,
			CreatedAt:   time.Now().UTC(),
		}
		if err := store.InsertSnapshot(c.Request.Context(), bodyFatCollection, record); err != nil {
			log.Println("INSERT BODYFAT SNAPSHOT ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save body fat"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"bodyFat": bodyFat})
	}
}
