package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"animal-shelter/pkg/models"
)

func getAnimals(c *gin.Context) {
	animals, err := animalService.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, animalCollectionJSON(animals, "/api/animals"))
}

func getAnimal(c *gin.Context) {
	animal, err := animalService.GetByUid(c.Request.Context(), c.Param("animalUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, animalJSON(animal))
}

func createAnimal(c *gin.Context) {
	var animal models.Animal
	if err := c.ShouldBindJSON(&animal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := animalService.Create(c.Request.Context(), &animal); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, animalJSON(&animal))
}

func updateAnimal(c *gin.Context) {
	var animal models.Animal
	if err := c.ShouldBindJSON(&animal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := animalService.Update(c.Request.Context(), c.Param("animalUid"), &animal)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, animalJSON(updated))
}

func deleteAnimal(c *gin.Context) {
	if err := animalService.Delete(c.Request.Context(), c.Param("animalUid")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func assignOwner(c *gin.Context) {
	animal, err := animalService.AssignOwner(c.Request.Context(), c.Param("animalUid"), c.Param("ownerUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, animalJSON(animal))
}

func removeOwner(c *gin.Context) {
	animal, err := animalService.RemoveOwner(c.Request.Context(), c.Param("animalUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, animalJSON(animal))
}

func searchAnimalsByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}
	animals, err := animalService.SearchByName(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, animalCollectionJSON(animals, "/api/animals/search?name="+name))
}

func searchAnimalsByBreed(c *gin.Context) {
	breed := c.Param("breed")
	animals, err := animalService.SearchByBreed(c.Request.Context(), breed)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, animalCollectionJSON(animals, "/api/animals/breed/"+breed))
}

func getAvailableForAdoption(c *gin.Context) {
	animals, err := animalService.AvailableForAdoption(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, animalCollectionJSON(animals, "/api/animals/available-for-adoption"))
}

func getPuppies(c *gin.Context) {
	animals, err := animalService.Puppies(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, animalCollectionJSON(animals, "/api/animals/puppies"))
}

func getBreedStatistics(c *gin.Context) {
	stats, err := animalService.BreedStatistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"statistics": stats,
		"_links":     gin.H{"self": gin.H{"href": "/api/animals/statistics/breed"}},
	})
}
