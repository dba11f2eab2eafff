package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"animal-shelter/pkg/config"
	"animal-shelter/pkg/database"
	"animal-shelter/pkg/logger"
	"animal-shelter/pkg/repository"
	"animal-shelter/pkg/service"
)

var (
	db            *gorm.DB
	logg          *zap.Logger
	animalService *service.AnimalService
	ownerService  *service.OwnerService
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err = logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logg.Sync()

	db, err = database.Init(&cfg.Database)
	if err != nil {
		logg.Fatal("database init failed", zap.Error(err))
	}
	logg.Info("database connected", zap.String("driver", cfg.Database.Driver))

	animalRepo := repository.NewAnimalRepository(db)
	ownerRepo := repository.NewOwnerRepository(db)
	animalService = service.NewAnimalService(animalRepo, ownerRepo, logg)
	ownerService = service.NewOwnerService(ownerRepo, logg)

	server := gin.Default()
	registerRoutes(server)

	logg.Info("animal shelter service starting", zap.String("port", cfg.Server.Port))
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		logg.Fatal("server failed", zap.Error(err))
	}
}

func registerRoutes(server *gin.Engine) {
	server.GET("/", home)
	server.GET("/api", apiInfo)
	server.GET("/manage/health", healthCheck)

	server.GET("/api/animals", getAnimals)
	server.POST("/api/animals", createAnimal)
	server.GET("/api/animals/search", searchAnimalsByName)
	server.GET("/api/animals/breed/:breed", searchAnimalsByBreed)
	server.GET("/api/animals/available-for-adoption", getAvailableForAdoption)
	server.GET("/api/animals/puppies", getPuppies)
	server.GET("/api/animals/statistics/breed", getBreedStatistics)
	server.GET("/api/animals/:animalUid", getAnimal)
	server.PUT("/api/animals/:animalUid", updateAnimal)
	server.DELETE("/api/animals/:animalUid", deleteAnimal)
	server.PUT("/api/animals/:animalUid/assign-owner/:ownerUid", assignOwner)
	server.PUT("/api/animals/:animalUid/remove-owner", removeOwner)

	server.GET("/api/owners", getOwners)
	server.POST("/api/owners", createOwner)
	server.GET("/api/owners/search", searchOwnersByName)
	server.GET("/api/owners/city/:city", searchOwnersByCity)
	server.GET("/api/owners/with-animals", getOwnersWithAnimals)
	server.GET("/api/owners/without-animals", getOwnersWithoutAnimals)
	server.GET("/api/owners/active", getActiveOwners)
	server.GET("/api/owners/statistics/city", getCityStatistics)
	server.GET("/api/owners/statistics/ownership", getOwnershipStatistics)
	server.GET("/api/owners/:ownerUid", getOwner)
	server.PUT("/api/owners/:ownerUid", updateOwner)
	server.DELETE("/api/owners/:ownerUid", deleteOwner)
	server.PUT("/api/owners/:ownerUid/activate", activateOwner)
	server.PUT("/api/owners/:ownerUid/deactivate", deactivateOwner)
}

func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "animal-shelter",
		"message": "Animal shelter record management service",
		"_links": gin.H{
			"api":     gin.H{"href": "/api"},
			"animals": gin.H{"href": "/api/animals"},
			"owners":  gin.H{"href": "/api/owners"},
			"health":  gin.H{"href": "/manage/health"},
		},
	})
}

func apiInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "animal-shelter",
		"version": "1.0.0",
		"endpoints": gin.H{
			"animals": []string{
				"GET /api/animals",
				"POST /api/animals",
				"GET /api/animals/{animalUid}",
				"PUT /api/animals/{animalUid}",
				"DELETE /api/animals/{animalUid}",
				"PUT /api/animals/{animalUid}/assign-owner/{ownerUid}",
				"PUT /api/animals/{animalUid}/remove-owner",
				"GET /api/animals/search?name=",
				"GET /api/animals/breed/{breed}",
				"GET /api/animals/available-for-adoption",
				"GET /api/animals/puppies",
				"GET /api/animals/statistics/breed",
			},
			"owners": []string{
				"GET /api/owners",
				"POST /api/owners",
				"GET /api/owners/{ownerUid}",
				"PUT /api/owners/{ownerUid}",
				"DELETE /api/owners/{ownerUid}",
				"PUT /api/owners/{ownerUid}/activate",
				"PUT /api/owners/{ownerUid}/deactivate",
				"GET /api/owners/search?name=",
				"GET /api/owners/city/{city}",
				"GET /api/owners/with-animals",
				"GET /api/owners/without-animals",
				"GET /api/owners/active",
				"GET /api/owners/statistics/city",
				"GET /api/owners/statistics/ownership",
			},
		},
	})
}

func healthCheck(c *gin.Context) {
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
