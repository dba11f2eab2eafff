package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"animal-shelter/pkg/models"
)

type OwnerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

func (r *OwnerRepository) Create(ctx context.Context, owner *models.Owner) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(owner).Error
}

// Save writes the owner row only. The animal collection is a derived view
// over animals.owner_id, never written from this side.
func (r *OwnerRepository) Save(ctx context.Context, owner *models.Owner) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(owner).Error
}

func (r *OwnerRepository) FindAll(ctx context.Context) ([]models.Owner, error) {
	var owners []models.Owner
	err := r.db.WithContext(ctx).Preload("Animals").Find(&owners).Error
	return owners, err
}

func (r *OwnerRepository) FindByUid(ctx context.Context, uid string) (*models.Owner, error) {
	var owner models.Owner
	err := r.db.WithContext(ctx).Preload("Animals").Where("owner_uid = ?", uid).First(&owner).Error
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *OwnerRepository) ExistsByEmailIgnoreCase(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Owner{}).
		Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	return count > 0, err
}

// ExistsByPhone matches exactly: phone numbers have no case to fold.
func (r *OwnerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Owner{}).
		Where("phone = ?", phone).Count(&count).Error
	return count > 0, err
}

func (r *OwnerRepository) DeleteByUid(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).Where("owner_uid = ?", uid).Delete(&models.Owner{}).Error
}

func (r *OwnerRepository) SearchByName(ctx context.Context, name string) ([]models.Owner, error) {
	var owners []models.Owner
	pattern := "%" + name + "%"
	err := r.db.WithContext(ctx).Preload("Animals").
		Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)", pattern, pattern).
		Find(&owners).Error
	return owners, err
}

func (r *OwnerRepository) FindByCity(ctx context.Context, city string) ([]models.Owner, error) {
	var owners []models.Owner
	err := r.db.WithContext(ctx).Preload("Animals").
		Where("LOWER(city) = LOWER(?)", city).Find(&owners).Error
	return owners, err
}

func (r *OwnerRepository) FindWithAnimals(ctx context.Context) ([]models.Owner, error) {
	var owners []models.Owner
	err := r.db.WithContext(ctx).Preload("Animals").
		Where("EXISTS (SELECT 1 FROM animals WHERE animals.owner_id = owners.id)").
		Find(&owners).Error
	return owners, err
}

func (r *OwnerRepository) FindWithoutAnimals(ctx context.Context) ([]models.Owner, error) {
	var owners []models.Owner
	err := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM animals WHERE animals.owner_id = owners.id)").
		Find(&owners).Error
	return owners, err
}

func (r *OwnerRepository) FindActive(ctx context.Context) ([]models.Owner, error) {
	var owners []models.Owner
	err := r.db.WithContext(ctx).Preload("Animals").
		Where("is_active = ?", true).Find(&owners).Error
	return owners, err
}

type CityCount struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

func (r *OwnerRepository) CityStatistics(ctx context.Context) ([]CityCount, error) {
	var stats []CityCount
	err := r.db.WithContext(ctx).Model(&models.Owner{}).
		Select("city, COUNT(*) AS count").
		Group("city").
		Order("count DESC").
		Scan(&stats).Error
	return stats, err
}

type OwnershipCount struct {
	Animals int64 `json:"animals"`
	Owners  int64 `json:"owners"`
}

// OwnershipStatistics buckets owners by how many animals each one has,
// including owners with none.
func (r *OwnerRepository) OwnershipStatistics(ctx context.Context) ([]OwnershipCount, error) {
	var stats []OwnershipCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT counts.animal_count AS animals, COUNT(*) AS owners
		FROM (
			SELECT owners.id, COUNT(animals.id) AS animal_count
			FROM owners
			LEFT JOIN animals ON animals.owner_id = owners.id
			GROUP BY owners.id
		) counts
		GROUP BY counts.animal_count
		ORDER BY counts.animal_count`).Scan(&stats).Error
	return stats, err
}
