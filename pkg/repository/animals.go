// Package repository wraps the gorm queries backing the animal and owner
// services. All lookups that feed API responses preload the related records.
package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"animal-shelter/pkg/models"
)

type AnimalRepository struct {
	db *gorm.DB
}

func NewAnimalRepository(db *gorm.DB) *AnimalRepository {
	return &AnimalRepository{db: db}
}

func (r *AnimalRepository) Create(ctx context.Context, animal *models.Animal) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(animal).Error
}

// Save writes the animal row only; the Owner record itself is never touched
// through this side of the relationship.
func (r *AnimalRepository) Save(ctx context.Context, animal *models.Animal) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(animal).Error
}

func (r *AnimalRepository) FindAll(ctx context.Context) ([]models.Animal, error) {
	var animals []models.Animal
	err := r.db.WithContext(ctx).Preload("Owner").Find(&animals).Error
	return animals, err
}

func (r *AnimalRepository) FindByUid(ctx context.Context, uid string) (*models.Animal, error) {
	var animal models.Animal
	err := r.db.WithContext(ctx).Preload("Owner").Where("animal_uid = ?", uid).First(&animal).Error
	if err != nil {
		return nil, err
	}
	return &animal, nil
}

func (r *AnimalRepository) ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Animal{}).
		Where("LOWER(name) = LOWER(?)", name).Count(&count).Error
	return count > 0, err
}

func (r *AnimalRepository) DeleteByUid(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).Where("animal_uid = ?", uid).Delete(&models.Animal{}).Error
}

func (r *AnimalRepository) SearchByName(ctx context.Context, name string) ([]models.Animal, error) {
	var animals []models.Animal
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").Find(&animals).Error
	return animals, err
}

func (r *AnimalRepository) FindByBreed(ctx context.Context, breed string) ([]models.Animal, error) {
	var animals []models.Animal
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("LOWER(breed) = LOWER(?)", breed).Find(&animals).Error
	return animals, err
}

// FindAvailableForAdoption returns animals that are marked available and have
// no owner assigned.
func (r *AnimalRepository) FindAvailableForAdoption(ctx context.Context) ([]models.Animal, error) {
	var animals []models.Animal
	err := r.db.WithContext(ctx).
		Where("owner_id IS NULL AND is_available = ?", true).Find(&animals).Error
	return animals, err
}

// FindPuppies filters on the stored age column, matching how the adoption
// board has always defined "puppy".
func (r *AnimalRepository) FindPuppies(ctx context.Context) ([]models.Animal, error) {
	var animals []models.Animal
	err := r.db.WithContext(ctx).Where("age < 1").Find(&animals).Error
	return animals, err
}

func (r *AnimalRepository) FindByOwnerID(ctx context.Context, ownerID uint) ([]models.Animal, error) {
	var animals []models.Animal
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&animals).Error
	return animals, err
}

type BreedCount struct {
	Breed string `json:"breed"`
	Count int64  `json:"count"`
}

func (r *AnimalRepository) BreedStatistics(ctx context.Context) ([]BreedCount, error) {
	var stats []BreedCount
	err := r.db.WithContext(ctx).Model(&models.Animal{}).
		Select("breed, COUNT(*) AS count").
		Group("breed").
		Order("count DESC").
		Scan(&stats).Error
	return stats, err
}
