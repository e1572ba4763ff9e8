package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/precrime-dept/precrime-backend-go/internal/config"
	"github.com/precrime-dept/precrime-backend-go/internal/database"
	"github.com/precrime-dept/precrime-backend-go/internal/handler"
	"github.com/precrime-dept/precrime-backend-go/internal/middleware"
	"github.com/precrime-dept/precrime-backend-go/internal/repository"
	"github.com/precrime-dept/precrime-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers into the HTTP API.
func SetupRouter(cfg *config.Config, db *database.DB) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	citizenRepo := repository.NewCitizenRepository(db.Driver())
	locationRepo := repository.NewLocationRepository(db.Driver())
	crimeRepo := repository.NewCrimeRepository(db.Driver())

	citizenService := service.NewCitizenService(citizenRepo, cfg.WatchlistThreshold, cfg.InterveneThreshold, cfg.CurrentYear)
	locationService := service.NewLocationService(locationRepo, crimeRepo)
	crimeService := service.NewCrimeService(crimeRepo, locationRepo)

	citizenHandler := handler.NewCitizenHandler(citizenService)
	locationHandler := handler.NewLocationHandler(locationService)
	crimeHandler := handler.NewCrimeHandler(crimeService)

	auth := middleware.RequireAuth(cfg.JWTSecret)

	r.GET("/health", func(c *gin.Context) {
		if !db.Alive(c.Request.Context()) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"graph":  "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "PreCrime Backend API is running",
		})
	})

	r.GET("/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "precrime-backend",
			"version": "1.0.0",
			"endpoints": gin.H{
				"citizens":  "/citizens",
				"locations": "/locations",
				"crimes":    "/crimes",
			},
		})
	})

	locations := r.Group("/locations")
	{
		locations.GET("", locationHandler.GetLocations)
		locations.GET("/hotspots", locationHandler.GetHotspots)
		locations.GET("/search", locationHandler.SearchLocation)
		locations.GET("/:id", locationHandler.GetLocationByID)
		locations.GET("/:id/crimes", locationHandler.GetLocationCrimes)
		locations.POST("", locationHandler.CreateLocation)

		admin := locations.Group("/admin", auth)
		{
			admin.GET("/statistics", locationHandler.GetStatistics)
		}
	}

	crimes := r.Group("/crimes")
	{
		crimes.GET("", crimeHandler.GetCrimes)
		crimes.GET("/recent", crimeHandler.GetRecentCrimes)
		crimes.GET("/type/:type", crimeHandler.GetCrimesByType)
		crimes.GET("/location/:id", crimeHandler.GetCrimesByLocation)
		crimes.GET("/perpetrator/:id", crimeHandler.GetCrimesByPerpetrator)
		crimes.GET("/:id", crimeHandler.GetCrimeByID)
		crimes.POST("", middleware.RateLimit(10, time.Minute), crimeHandler.ReportCrime)
		crimes.POST("/:id/mark-investigated", crimeHandler.MarkInvestigated)

		admin := crimes.Group("/admin", auth)
		{
			admin.GET("/statistics", crimeHandler.GetStatistics)
			admin.GET("/timeline", crimeHandler.GetTimeline)
		}
	}

	citizens := r.Group("/citizens")
	{
		citizens.GET("", citizenHandler.GetCitizens)
		citizens.GET("/search", citizenHandler.SearchCitizens)
		citizens.GET("/suspects", auth, citizenHandler.GetSuspects)
		citizens.GET("/:id", citizenHandler.GetCitizenByID)
		citizens.GET("/:id/network", citizenHandler.GetNetwork)
		citizens.POST("", citizenHandler.RegisterCitizen)
		citizens.PATCH("/:id/status", citizenHandler.UpdateStatus)
	}

	return r
}
