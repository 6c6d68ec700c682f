package main

import (
	"log"

	"github.com/devrakib/socialspace/backend/internal/router"
	"github.com/devrakib/socialspace/backend/internal/validators"
	"github.com/devrakib/socialspace/backend/pkg/config"
	"github.com/devrakib/socialspace/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	var mediaStorage storage.MediaStorage
	switch cfg.StorageDriver {
	case "cloudinary":
		mediaStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("Failed to initialize Cloudinary storage: %v", err)
		}
		log.Println("Using Cloudinary media storage.")
	default:
		if db.Mongo == nil {
			log.Fatal("GridFS media storage requires MONGO_URI to be set")
		}
		mediaStorage, err = storage.NewGridFSStorage(db.Mongo.Database(cfg.MongoDatabase))
		if err != nil {
			log.Fatalf("Failed to initialize GridFS storage: %v", err)
		}
		log.Println("Using GridFS media storage.")
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, cfg, db.Postgres, db.Redis, mediaStorage)

	log.Printf("Starting server on port %s...", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
