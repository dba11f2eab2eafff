package models

import (
	"fmt"
	"time"
)

// Animal size categories.
const (
	SizeSmall  = "SMALL"
	SizeMedium = "MEDIUM"
	SizeLarge  = "LARGE"
)

type Animal struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	AnimalUid    string    `gorm:"type:uuid;uniqueIndex;not null" json:"animalUid"`
	Name         string    `gorm:"size:50;not null" json:"name"`
	Breed        string    `gorm:"size:100;not null" json:"breed"`
	Age          *int      `json:"age"`
	Color        string    `gorm:"size:50;not null" json:"color"`
	Weight       *float64  `json:"weight"`
	BirthDate    time.Time `json:"birthDate"`
	Description  string    `gorm:"size:500" json:"description,omitempty"`
	IsVaccinated *bool     `gorm:"not null" json:"isVaccinated"`
	Size         string    `gorm:"size:20" json:"size"`
	IsAvailable  bool      `gorm:"not null;default:true" json:"isAvailable"`
	OwnerID      *uint     `json:"-"`
	Owner        *Owner    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Owner struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	OwnerUid     string    `gorm:"type:uuid;uniqueIndex;not null" json:"ownerUid"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	Email        string    `gorm:"size:150;not null;uniqueIndex" json:"email"`
	Phone        string    `gorm:"size:20;not null" json:"phone"`
	Address      string    `gorm:"size:200;not null" json:"address"`
	City         string    `gorm:"size:100;not null" json:"city"`
	PostalCode   string    `gorm:"size:10;not null" json:"postalCode"`
	Age          *int      `gorm:"not null" json:"age"`
	Observations string    `gorm:"size:500" json:"observations,omitempty"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	Animals      []Animal  `gorm:"foreignKey:OwnerID" json:"animals,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CalculateAge derives the age in whole calendar years from the birth date.
// Deliberately year subtraction, not elapsed days: an animal born in December
// counts a full year the following January. Kept for compatibility with the
// records this system migrated from.
func (a *Animal) CalculateAge(now time.Time) int {
	if a.BirthDate.IsZero() {
		return 0
	}
	return now.Year() - a.BirthDate.Year()
}

// EffectiveAge returns the stored age when set, otherwise the derived one.
func (a *Animal) EffectiveAge(now time.Time) int {
	if a.Age != nil {
		return *a.Age
	}
	return a.CalculateAge(now)
}

// IsPuppy reports whether the animal is under one year old.
func (a *Animal) IsPuppy(now time.Time) bool {
	return a.EffectiveAge(now) < 1
}

func (a *Animal) FullInfo() string {
	age := 0
	if a.Age != nil {
		age = *a.Age
	}
	weight := 0.0
	if a.Weight != nil {
		weight = *a.Weight
	}
	return fmt.Sprintf("%s - %s, %d years, %s, %.2f kg", a.Name, a.Breed, age, a.Color, weight)
}

// SizeFromWeight classifies an animal by weight in kilograms. Both band
// boundaries belong to the lower band: 10.0 is SMALL and 25.0 is MEDIUM.
func SizeFromWeight(weight float64) string {
	if weight <= 10.0 {
		return SizeSmall
	}
	if weight <= 25.0 {
		return SizeMedium
	}
	return SizeLarge
}

func (o *Owner) FullName() string {
	return o.FirstName + " " + o.LastName
}

func (o *Owner) NumberOfAnimals() int {
	return len(o.Animals)
}

func (o *Owner) HasAnimals() bool {
	return len(o.Animals) > 0
}
