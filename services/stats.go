package services

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// averageOf computes the mean of one numeric field across a snapshot
// collection using a $group/$avg pipeline. An empty collection yields 0.
func (s *Store) averageOf(ctx context.Context, collection, field string) (float64, error) {
	cursor, err := s.collection(collection).Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$" + field},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Avg, nil
}

// AdminStats reports the user count and the all-time averages over the
// write-once metric snapshot collections.
func AdminStats(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userCount, err := store.users().CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Println("COUNT USERS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		avgBMI, err := store.averageOf(ctx, bmiCollection, "bmi")
		if err != nil {
			log.Println("AVG BMI ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		avgBMR, err := store.averageOf(ctx, bmrCollection, "bmr")
		if err != nil {
			log.Println("AVG BMR ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		avgBodyFat, err := store.averageOf(ctx, bodyFatCollection, "body_fat_pct")
		if err != nil {
			log.Println("AVG BODYFAT ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"userCount":  userCount,
			"avgBMI":     avgBMI,
			"avgBMR":     avgBMR,
			"avgBodyFat": avgBodyFat,
		})
	}
}
