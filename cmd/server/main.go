package main

import (
	"context"
	"log"
	"time"

	"github.com/precrime-dept/precrime-backend-go/internal/api"
	"github.com/precrime-dept/precrime-backend-go/internal/config"
	"github.com/precrime-dept/precrime-backend-go/internal/database"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, database.Config{
		URI:      cfg.Neo4jURI,
		User:     cfg.Neo4jUser,
		Password: cfg.Neo4jPassword,
	})
	if err != nil {
		log.Fatal("Failed to connect to graph database:", err)
	}
	defer db.Close(context.Background())

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure graph schema:", err)
	}

	router := api.SetupRouter(cfg, db)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
