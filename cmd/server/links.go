package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"animal-shelter/pkg/models"
	"animal-shelter/pkg/validation"
)

// writeError maps a failed operation to a transport status: unresolved
// identifiers are 404, duplicates and the deletion guard are 409, every other
// violated rule is 400.
func writeError(c *gin.Context, err error) {
	var rule *validation.RuleError
	if errors.As(err, &rule) {
		c.JSON(statusForCode(rule.Code), gin.H{"code": rule.Code, "error": rule.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func statusForCode(code string) int {
	switch code {
	case validation.CodeAnimalNotFound, validation.CodeOwnerNotFound:
		return http.StatusNotFound
	case validation.CodeDuplicateName, validation.CodeDuplicateEmail,
		validation.CodeDuplicatePhone, validation.CodeOwnerHasAnimals:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// animalJSON renders an animal with its hypermedia links. The link set depends
// on state: an unowned animal advertises assign-owner, an owned one advertises
// remove-owner and its owner.
func animalJSON(a *models.Animal) gin.H {
	payload := gin.H{
		"animalUid":    a.AnimalUid,
		"name":         a.Name,
		"breed":        a.Breed,
		"age":          a.Age,
		"color":        a.Color,
		"weight":       a.Weight,
		"description":  a.Description,
		"isVaccinated": a.IsVaccinated,
		"size":         a.Size,
		"isAvailable":  a.IsAvailable,
	}
	if !a.BirthDate.IsZero() {
		payload["birthDate"] = a.BirthDate.Format("2006-01-02")
	}

	self := "/api/animals/" + a.AnimalUid
	links := gin.H{
		"self":    gin.H{"href": self},
		"animals": gin.H{"href": "/api/animals"},
	}
	if a.OwnerID == nil {
		links["assign-owner"] = gin.H{"href": self + "/assign-owner/{ownerUid}", "templated": true}
	} else {
		links["remove-owner"] = gin.H{"href": self + "/remove-owner"}
		if a.Owner != nil {
			payload["owner"] = gin.H{
				"ownerUid": a.Owner.OwnerUid,
				"fullName": a.Owner.FullName(),
			}
			links["owner"] = gin.H{"href": "/api/owners/" + a.Owner.OwnerUid}
		}
	}
	payload["_links"] = links
	return payload
}

// ownerJSON renders an owner with hypermedia links. Activate/deactivate links
// follow the current flag; delete is advertised only while the owner has no
// animals, mirroring the deletion guard.
func ownerJSON(o *models.Owner) gin.H {
	payload := gin.H{
		"ownerUid":        o.OwnerUid,
		"firstName":       o.FirstName,
		"lastName":        o.LastName,
		"email":           o.Email,
		"phone":           o.Phone,
		"address":         o.Address,
		"city":            o.City,
		"postalCode":      o.PostalCode,
		"age":             o.Age,
		"observations":    o.Observations,
		"isActive":        o.IsActive,
		"numberOfAnimals": o.NumberOfAnimals(),
	}

	animals := make([]gin.H, len(o.Animals))
	for i, a := range o.Animals {
		animals[i] = gin.H{
			"animalUid": a.AnimalUid,
			"name":      a.Name,
			"breed":     a.Breed,
		}
	}
	payload["animals"] = animals

	self := "/api/owners/" + o.OwnerUid
	links := gin.H{
		"self":   gin.H{"href": self},
		"owners": gin.H{"href": "/api/owners"},
	}
	if o.IsActive {
		links["deactivate"] = gin.H{"href": self + "/deactivate"}
	} else {
		links["activate"] = gin.H{"href": self + "/activate"}
	}
	if !o.HasAnimals() {
		links["delete"] = gin.H{"href": self}
	}
	payload["_links"] = links
	return payload
}

func animalCollectionJSON(animals []models.Animal, selfHref string) gin.H {
	items := make([]gin.H, len(animals))
	for i := range animals {
		items[i] = animalJSON(&animals[i])
	}
	return gin.H{
		"items": items,
		"_links": gin.H{
			"self":                   gin.H{"href": selfHref},
			"available-for-adoption": gin.H{"href": "/api/animals/available-for-adoption"},
			"puppies":                gin.H{"href": "/api/animals/puppies"},
		},
	}
}

func ownerCollectionJSON(owners []models.Owner, selfHref string) gin.H {
	items := make([]gin.H, len(owners))
	for i := range owners {
		items[i] = ownerJSON(&owners[i])
	}
	return gin.H{
		"items": items,
		"_links": gin.H{
			"self":            gin.H{"href": selfHref},
			"with-animals":    gin.H{"href": "/api/owners/with-animals"},
			"without-animals": gin.H{"href": "/api/owners/without-animals"},
			"active":          gin.H{"href": "/api/owners/active"},
		},
	}
}
