package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fittrack/config"
	"fittrack/db"
	"fittrack/exercises"
	"fittrack/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables:", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal("Configuration error:", err)
	}

	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("MongoDB connection failed:", err)
	}
	log.Println("Connected to MongoDB")

	store := services.NewStore(client, cfg.DBName)
	if err := store.EnsureIndexes(context.Background()); err != nil {
		log.Fatal("Index creation failed:", err)
	}

	catalog, err := exercises.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatal("Exercise catalog load failed:", err)
	}
	log.Println("Exercise catalog loaded:", len(catalog.Entries()), "entries")

	watcher, err := exercises.NewWatcher(cfg.CatalogPath, catalog)
	if err != nil {
		log.Println("Catalog watcher unavailable, reloads disabled:", err)
	} else {
		go watcher.Watch()
	}

	fetcher := exercises.NewFetcher(catalog, cfg.FetchTimeout)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.POST("/register", services.Register(store))
	api.GET("/profile", services.GetProfile(store))
	api.PUT("/update-profile", services.UpdateProfile(store))

	api.POST("/calculate-bmr", services.CalculateBMR(store))
	api.POST("/add-meal", services.AddMeal(store))
	api.GET("/meals/:date", services.GetMealsByDate(store))
	api.PUT("/update-meal/:mealId", services.UpdateMeal(store))
	api.DELETE("/delete-meal/:mealId", services.DeleteMeal(store))
	api.GET("/summary/:date", services.GetCalorieSummary(store))
	api.GET("/user-data", services.GetUserData(store))

	api.POST("/bmi", services.SaveBMI(store))
	api.POST("/bodyfat", services.SaveBodyFat(store))
	api.POST("/exercises", exercises.Batch(fetcher))

	api.GET("/admin/stats", services.AdminStats(store))
	api.DELETE("/admin/users/:firebaseUid", services.AdminDeleteUser(store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Println("Starting server on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
