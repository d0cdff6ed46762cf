package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/models"
)

// Register creates the user document at signup. Identity comes from the
// external authenticator; the backend only records it.
func Register(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FirebaseUID string `json:"firebaseUid"`
			Email       string `json:"email"`
			Name        string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("BIND JSON ERROR:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		if req.FirebaseUID == "" || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "firebaseUid and email are required"})
			return
		}

		user := models.User{
			FirebaseUID: req.FirebaseUID,
			Email:       req.Email,
			Name:        req.Name,
		}
		if err := store.InsertUser(c.Request.Context(), &user); err != nil {
			if errors.Is(err, ErrDuplicate) {
				c.JSON(http.StatusConflict, gin.H{"error": "User already registered"})
				return
			}
			log.Println("INSERT USER ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// GetProfile returns the full user document.
func GetProfile(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		firebaseUID := c.Query("firebaseUid")
		if firebaseUID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "firebaseUid is required"})
			return
		}

		user, err := store.FindUser(c.Request.Context(), firebaseUID)
		if err != nil {
			writeStoreError(c, err, "Failed to fetch profile")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfile overwrites the profile subdocument. Editing profile
// fields does not recompute BMR; the client re-invokes the calculator
// when inputs relevant to it change.
func UpdateProfile(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FirebaseUID string         `json:"firebaseUid"`
			Profile     models.Profile `json:"profile"`
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

		if err := store.UpdateProfile(c.Request.Context(), req.FirebaseUID, req.Profile); err != nil {
			writeStoreError(c, err, "Failed to update profile")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": req.Profile})
	}
}

// AdminDeleteUser removes a user document by uid. Embedded meal entries
// cascade with the document; snapshot records stay for the stats.
func AdminDeleteUser(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		firebaseUID := c.Param("firebaseUid")
		if err := store.DeleteUser(c.Request.Context(), firebaseUID); err != nil {
			writeStoreError(c, err, "Failed to delete user")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
