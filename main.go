package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/our-area/api-go/config"
	"github.com/our-area/api-go/routes"
	"github.com/our-area/api-go/storage"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	var querier storage.Querier
	if cfg.TursoDatabaseURL != "" && cfg.TursoAuthToken != "" {
		// Remote libsql database; schema is managed out-of-band.
		log.Printf("Using remote libsql database")
		querier = storage.NewLibSQL(cfg.TursoDatabaseURL, cfg.TursoAuthToken)
	} else {
		db, err := config.InitDB(cfg)
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		if err := config.Provision(db); err != nil {
			log.Fatal("Failed to provision schema: ", err)
		}
		if err := config.SeedAreas(db); err != nil {
			log.Fatal("Failed to seed areas: ", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("Failed to get database handle: ", err)
		}
		querier = storage.NewSQLDB(sqlDB, config.BindDriverName(db))
	}

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, querier, cfg)

	log.Printf("Starting server on port %s", cfg.Port)
	r.Run(":" + cfg.Port)
}
