// Package service implements the business operations over animals and owners:
// validation, derived state, uniqueness checks and the owner relationship.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"animal-shelter/pkg/models"
	"animal-shelter/pkg/repository"
	"animal-shelter/pkg/validation"
)

func animalNotFound(uid string) *validation.RuleError {
	return &validation.RuleError{Code: validation.CodeAnimalNotFound, Message: "animal not found: " + uid}
}

func ownerNotFound(uid string) *validation.RuleError {
	return &validation.RuleError{Code: validation.CodeOwnerNotFound, Message: "owner not found: " + uid}
}

type AnimalService struct {
	animals *repository.AnimalRepository
	owners  *repository.OwnerRepository
	log     *zap.Logger
	now     func() time.Time
}

func NewAnimalService(animals *repository.AnimalRepository, owners *repository.OwnerRepository, log *zap.Logger) *AnimalService {
	return &AnimalService{
		animals: animals,
		owners:  owners,
		log:     log,
		now:     time.Now,
	}
}

// Create validates the animal, rejects duplicate names (case-insensitive) and
// fills the derived fields before persisting. New animals start without an
// owner and available for adoption.
func (s *AnimalService) Create(ctx context.Context, animal *models.Animal) error {
	if err := validation.ValidateAnimal(animal); err != nil {
		return err
	}

	exists, err := s.animals.ExistsByNameIgnoreCase(ctx, animal.Name)
	if err != nil {
		return err
	}
	if exists {
		return &validation.RuleError{
			Code:    validation.CodeDuplicateName,
			Message: "an animal named " + animal.Name + " already exists",
		}
	}

	if animal.Age == nil && !animal.BirthDate.IsZero() {
		age := animal.CalculateAge(s.now())
		animal.Age = &age
	}
	if animal.Size == "" && animal.Weight != nil {
		animal.Size = models.SizeFromWeight(*animal.Weight)
	}

	animal.AnimalUid = uuid.NewString()
	animal.OwnerID = nil
	animal.Owner = nil
	animal.IsAvailable = true

	if err := s.animals.Create(ctx, animal); err != nil {
		return err
	}
	s.log.Info("animal created", zap.String("animalUid", animal.AnimalUid), zap.String("name", animal.Name))
	return nil
}

// Update replaces every field except identity, ownership and audit timestamps.
// The name uniqueness check skips the record's own current name.
func (s *AnimalService) Update(ctx context.Context, uid string, updated *models.Animal) (*models.Animal, error) {
	existing, err := s.animals.FindByUid(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, animalNotFound(uid)
		}
		return nil, err
	}

	if err := validation.ValidateAnimal(updated); err != nil {
		return nil, err
	}

	if !strings.EqualFold(existing.Name, updated.Name) {
		exists, err := s.animals.ExistsByNameIgnoreCase(ctx, updated.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &validation.RuleError{
				Code:    validation.CodeDuplicateName,
				Message: "another animal named " + updated.Name + " already exists",
			}
		}
	}

	existing.Name = updated.Name
	existing.Breed = updated.Breed
	existing.Age = updated.Age
	existing.Color = updated.Color
	existing.Weight = updated.Weight
	existing.BirthDate = updated.BirthDate
	existing.Description = updated.Description
	existing.IsVaccinated = updated.IsVaccinated
	existing.IsAvailable = updated.IsAvailable

	if updated.Size == "" && updated.Weight != nil {
		existing.Size = models.SizeFromWeight(*updated.Weight)
	} else {
		existing.Size = updated.Size
	}

	if err := s.animals.Save(ctx, existing); err != nil {
		return nil, err
	}
	s.log.Info("animal updated", zap.String("animalUid", uid), zap.String("name", existing.Name))
	return existing, nil
}

// Delete is unconditional beyond existence; an owned animal can be deleted.
func (s *AnimalService) Delete(ctx context.Context, uid string) error {
	if _, err := s.animals.FindByUid(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return animalNotFound(uid)
		}
		return err
	}
	if err := s.animals.DeleteByUid(ctx, uid); err != nil {
		return err
	}
	s.log.Info("animal deleted", zap.String("animalUid", uid))
	return nil
}

// AssignOwner links the animal to the owner and takes it off the adoption
// list. The animal is resolved before the owner is ever looked up. The write
// is a full overwrite of both fields, so re-assigning the same owner is
// harmless.
func (s *AnimalService) AssignOwner(ctx context.Context, animalUid, ownerUid string) (*models.Animal, error) {
	animal, err := s.animals.FindByUid(ctx, animalUid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, animalNotFound(animalUid)
		}
		return nil, err
	}

	owner, err := s.owners.FindByUid(ctx, ownerUid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ownerNotFound(ownerUid)
		}
		return nil, err
	}

	animal.OwnerID = &owner.ID
	animal.Owner = nil
	animal.IsAvailable = false
	if err := s.animals.Save(ctx, animal); err != nil {
		return nil, err
	}
	animal.Owner = owner

	s.log.Info("owner assigned",
		zap.String("animalUid", animalUid),
		zap.String("ownerUid", ownerUid))
	return animal, nil
}

// RemoveOwner clears the ownership link and puts the animal back up for
// adoption, whatever the previous state was.
func (s *AnimalService) RemoveOwner(ctx context.Context, animalUid string) (*models.Animal, error) {
	animal, err := s.animals.FindByUid(ctx, animalUid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, animalNotFound(animalUid)
		}
		return nil, err
	}

	animal.OwnerID = nil
	animal.Owner = nil
	animal.IsAvailable = true
	if err := s.animals.Save(ctx, animal); err != nil {
		return nil, err
	}

	s.log.Info("owner removed", zap.String("animalUid", animalUid))
	return animal, nil
}

func (s *AnimalService) GetAll(ctx context.Context) ([]models.Animal, error) {
	return s.animals.FindAll(ctx)
}

func (s *AnimalService) GetByUid(ctx context.Context, uid string) (*models.Animal, error) {
	animal, err := s.animals.FindByUid(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, animalNotFound(uid)
		}
		return nil, err
	}
	return animal, nil
}

func (s *AnimalService) SearchByName(ctx context.Context, name string) ([]models.Animal, error) {
	return s.animals.SearchByName(ctx, name)
}

func (s *AnimalService) SearchByBreed(ctx context.Context, breed string) ([]models.Animal, error) {
	return s.animals.FindByBreed(ctx, breed)
}

func (s *AnimalService) AvailableForAdoption(ctx context.Context) ([]models.Animal, error) {
	return s.animals.FindAvailableForAdoption(ctx)
}

func (s *AnimalService) Puppies(ctx context.Context) ([]models.Animal, error) {
	return s.animals.FindPuppies(ctx)
}

func (s *AnimalService) BreedStatistics(ctx context.Context) ([]repository.BreedCount, error) {
	return s.animals.BreedStatistics(ctx)
}
