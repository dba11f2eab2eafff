package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"animal-shelter/pkg/models"
	"animal-shelter/pkg/repository"
	"animal-shelter/pkg/validation"
)

type OwnerService struct {
	owners *repository.OwnerRepository
	log    *zap.Logger
}

func NewOwnerService(owners *repository.OwnerRepository, log *zap.Logger) *OwnerService {
	return &OwnerService{owners: owners, log: log}
}

// Create validates the owner and rejects duplicate contact details. Email
// duplicates are matched case-insensitively, phone duplicates exactly.
func (s *OwnerService) Create(ctx context.Context, owner *models.Owner) error {
	if err := validation.ValidateOwner(owner); err != nil {
		return err
	}

	emailTaken, err := s.owners.ExistsByEmailIgnoreCase(ctx, owner.Email)
	if err != nil {
		return err
	}
	if emailTaken {
		return &validation.RuleError{
			Code:    validation.CodeDuplicateEmail,
			Message: "an owner with email " + owner.Email + " already exists",
		}
	}

	phoneTaken, err := s.owners.ExistsByPhone(ctx, owner.Phone)
	if err != nil {
		return err
	}
	if phoneTaken {
		return &validation.RuleError{
			Code:    validation.CodeDuplicatePhone,
			Message: "an owner with phone " + owner.Phone + " already exists",
		}
	}

	owner.OwnerUid = uuid.NewString()
	owner.IsActive = true
	owner.Animals = nil

	if err := s.owners.Create(ctx, owner); err != nil {
		return err
	}
	s.log.Info("owner created", zap.String("ownerUid", owner.OwnerUid), zap.String("name", owner.FullName()))
	return nil
}

// Update replaces every field except identity, the animal collection and audit
// timestamps. Uniqueness is re-checked only against other owners.
func (s *OwnerService) Update(ctx context.Context, uid string, updated *models.Owner) (*models.Owner, error) {
	existing, err := s.owners.FindByUid(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ownerNotFound(uid)
		}
		return nil, err
	}

	if err := validation.ValidateOwner(updated); err != nil {
		return nil, err
	}

	if !strings.EqualFold(existing.Email, updated.Email) {
		taken, err := s.owners.ExistsByEmailIgnoreCase(ctx, updated.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &validation.RuleError{
				Code:    validation.CodeDuplicateEmail,
				Message: "another owner with email " + updated.Email + " already exists",
			}
		}
	}

	if existing.Phone != updated.Phone {
		taken, err := s.owners.ExistsByPhone(ctx, updated.Phone)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &validation.RuleError{
				Code:    validation.CodeDuplicatePhone,
				Message: "another owner with phone " + updated.Phone + " already exists",
			}
		}
	}

	existing.FirstName = updated.FirstName
	existing.LastName = updated.LastName
	existing.Email = updated.Email
	existing.Phone = updated.Phone
	existing.Address = updated.Address
	existing.City = updated.City
	existing.PostalCode = updated.PostalCode
	existing.Age = updated.Age
	existing.Observations = updated.Observations
	existing.IsActive = updated.IsActive

	if err := s.owners.Save(ctx, existing); err != nil {
		return nil, err
	}
	s.log.Info("owner updated", zap.String("ownerUid", uid), zap.String("name", existing.FullName()))
	return existing, nil
}

// Delete refuses to remove an owner that still has animals assigned.
func (s *OwnerService) Delete(ctx context.Context, uid string) error {
	owner, err := s.owners.FindByUid(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownerNotFound(uid)
		}
		return err
	}

	if owner.HasAnimals() {
		return &validation.RuleError{
			Code:    validation.CodeOwnerHasAnimals,
			Message: "owner still has animals assigned and cannot be deleted",
		}
	}

	if err := s.owners.DeleteByUid(ctx, uid); err != nil {
		return err
	}
	s.log.Info("owner deleted", zap.String("ownerUid", uid))
	return nil
}

func (s *OwnerService) Activate(ctx context.Context, uid string) (*models.Owner, error) {
	return s.setActive(ctx, uid, true)
}

func (s *OwnerService) Deactivate(ctx context.Context, uid string) (*models.Owner, error) {
	return s.setActive(ctx, uid, false)
}

func (s *OwnerService) setActive(ctx context.Context, uid string, active bool) (*models.Owner, error) {
	owner, err := s.owners.FindByUid(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ownerNotFound(uid)
		}
		return nil, err
	}

	owner.IsActive = active
	if err := s.owners.Save(ctx, owner); err != nil {
		return nil, err
	}
	s.log.Info("owner active flag set", zap.String("ownerUid", uid), zap.Bool("active", active))
	return owner, nil
}

func (s *OwnerService) GetAll(ctx context.Context) ([]models.Owner, error) {
	return s.owners.FindAll(ctx)
}

func (s *OwnerService) GetByUid(ctx context.Context, uid string) (*models.Owner, error) {
	owner, err := s.owners.FindByUid(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ownerNotFound(uid)
		}
		return nil, err
	}
	return owner, nil
}

func (s *OwnerService) SearchByName(ctx context.Context, name string) ([]models.Owner, error) {
	return s.owners.SearchByName(ctx, name)
}

func (s *OwnerService) SearchByCity(ctx context.Context, city string) ([]models.Owner, error) {
	return s.owners.FindByCity(ctx, city)
}

func (s *OwnerService) WithAnimals(ctx context.Context) ([]models.Owner, error) {
	return s.owners.FindWithAnimals(ctx)
}

func (s *OwnerService) WithoutAnimals(ctx context.Context) ([]models.Owner, error) {
	return s.owners.FindWithoutAnimals(ctx)
}

func (s *OwnerService) Active(ctx context.Context) ([]models.Owner, error) {
	return s.owners.FindActive(ctx)
}

func (s *OwnerService) CityStatistics(ctx context.Context) ([]repository.CityCount, error) {
	return s.owners.CityStatistics(ctx)
}

func (s *OwnerService) OwnershipStatistics(ctx context.Context) ([]repository.OwnershipCount, error) {
	return s.owners.OwnershipStatistics(ctx)
}
