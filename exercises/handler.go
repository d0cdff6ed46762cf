package exercises

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Batch handles POST /api/exercises. The body must carry exerciseNames
// as a string array; anything else is rejected before any fetch starts.
// Partial success is the normal case: unresolved names land in the
// errors list and never fail the batch.
func Batch(fetcher *Fetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ExerciseNames []string `json:"exerciseNames"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("BIND JSON ERROR:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "exerciseNames must be an array of strings"})
			return
		}
		if req.ExerciseNames == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "exerciseNames must be an array of strings"})
			return
		}

		media, errs := fetcher.FetchBatch(c.Request.Context(), req.ExerciseNames)
		c.JSON(http.StatusOK, gin.H{"exercises": media, "errors": errs})
	}
}
