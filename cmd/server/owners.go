package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"animal-shelter/pkg/models"
)

func getOwners(c *gin.Context) {
	owners, err := ownerService.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerCollectionJSON(owners, "/api/owners"))
}

func getOwner(c *gin.Context) {
	owner, err := ownerService.GetByUid(c.Request.Context(), c.Param("ownerUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerJSON(owner))
}

func createOwner(c *gin.Context) {
	var owner models.Owner
	if err := c.ShouldBindJSON(&owner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ownerService.Create(c.Request.Context(), &owner); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ownerJSON(&owner))
}

func updateOwner(c *gin.Context) {
	var owner models.Owner
	if err := c.ShouldBindJSON(&owner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := ownerService.Update(c.Request.Context(), c.Param("ownerUid"), &owner)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerJSON(updated))
}

func deleteOwner(c *gin.Context) {
	if err := ownerService.Delete(c.Request.Context(), c.Param("ownerUid")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func activateOwner(c *gin.Context) {
	owner, err := ownerService.Activate(c.Request.Context(), c.Param("ownerUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerJSON(owner))
}

func deactivateOwner(c *gin.Context) {
	owner, err := ownerService.Deactivate(c.Request.Context(), c.Param("ownerUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerJSON(owner))
}

func searchOwnersByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}
	owners, err := ownerService.SearchByName(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerCollectionJSON(owners, "/api/owners/search?name="+name))
}

func searchOwnersByCity(c *gin.Context) {
	city := c.Param("city")
	owners, err := ownerService.SearchByCity(c.Request.Context(), city)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerCollectionJSON(owners, "/api/owners/city/"+city))
}

func getOwnersWithAnimals(c *gin.Context) {
	owners, err := ownerService.WithAnimals(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerCollectionJSON(owners, "/api/owners/with-animals"))
}

func getOwnersWithoutAnimals(c *gin.Context) {
	owners, err := ownerService.WithoutAnimals(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerCollectionJSON(owners, "/api/owners/without-animals"))
}

func getActiveOwners(c *gin.Context) {
	owners, err := ownerService.Active(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerCollectionJSON(owners, "/api/owners/active"))
}

func getCityStatistics(c *gin.Context) {
	stats, err := ownerService.CityStatistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"statistics": stats,
		"_links":     gin.H{"self": gin.H{"href": "/api/owners/statistics/city"}},
	})
}

func getOwnershipStatistics(c *gin.Context) {
	stats, err := ownerService.OwnershipStatistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"statistics": stats,
		"_links":     gin.H{"self": gin.H{"href": "/api/owners/statistics/ownership"}},
	})
}
