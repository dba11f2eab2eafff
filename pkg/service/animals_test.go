package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"animal-shelter/pkg/models"
	"animal-shelter/pkg/repository"
	"animal-shelter/pkg/validation"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func setupServices(t *testing.T) (*AnimalService, *OwnerService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled second connection would see an empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Owner{}, &models.Animal{}))

	animalRepo := repository.NewAnimalRepository(db)
	ownerRepo := repository.NewOwnerRepository(db)
	log := zap.NewNop()
	return NewAnimalService(animalRepo, ownerRepo, log), NewOwnerService(ownerRepo, log)
}

func testAnimal(name string, weight float64) *models.Animal {
	return &models.Animal{
		Name:         name,
		Breed:        "Test Breed",
		Age:          intPtr(3),
		Color:        "Brown",
		Weight:       floatPtr(weight),
		BirthDate:    time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		IsVaccinated: boolPtr(true),
	}
}

func testOwner(email, phone string) *models.Owner {
	return &models.Owner{
		FirstName:  "Maria",
		LastName:   "Lopez",
		Email:      email,
		Phone:      phone,
		Address:    "Calle Mayor 12, 3A",
		City:       "Madrid",
		PostalCode: "28001",
		Age:        intPtr(34),
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	ruleErr, ok := err.(*validation.RuleError)
	require.True(t, ok, "expected *RuleError, got %T: %v", err, err)
	assert.Equal(t, code, ruleErr.Code)
}

func TestCreateAnimalDerivesSizeMedium(t *testing.T) {
	animals, _ := setupServices(t)
	ctx := context.Background()

	animal := testAnimal("TestDog", 15.0)
	require.NoError(t, animals.Create(ctx, animal))

	assert.Equal(t, models.SizeMedium, animal.Size)
	assert.NotEmpty(t, animal.AnimalUid)
	assert.True(t, animal.IsAvailable)
	assert.Nil(t, animal.OwnerID)
}

func TestCreateAnimalDerivesSizeSmall(t *testing.T) {
	animals, _ := setupServices(t)

	animal := testAnimal("SmallDog", 5.0)
	require.NoError(t, animals.Create(context.Background(), animal))
	assert.Equal(t, models.SizeSmall, animal.Size)
}

func TestCreateAnimalKeepsExplicitSize(t *testing.T) {
	animals, _ := setupServices(t)

	animal := testAnimal("BigSmallDog", 5.0)
	animal.Size = models.SizeLarge
	require.NoError(t, animals.Create(context.Background(), animal))
	assert.Equal(t, models.SizeLarge, animal.Size)
}

func TestCreateAnimalDerivesAgeFromBirthDate(t *testing.T) {
	animals, _ := setupServices(t)
	animals.now = func() time.Time {
		return time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	}

	animal := testAnimal("Youngster", 8.0)
	animal.Age = nil
	animal.BirthDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, animals.Create(context.Background(), animal))

	require.NotNil(t, animal.Age)
	assert.Equal(t, 2, *animal.Age)
}

func TestCreateAnimalRejectsInvalidWeight(t *testing.T) {
	animals, _ := setupServices(t)

	animal := testAnimal("BadWeight", 15.0)
	animal.Weight = floatPtr(-5.0)
	requireCode(t, animals.Create(context.Background(), animal), validation.CodeNonPositiveWeight)
}

func TestCreateAnimalDuplicateNameIsCaseInsensitive(t *testing.T) {
	animals, _ := setupServices(t)
	ctx := context.Background()

	require.NoError(t, animals.Create(ctx, testAnimal("max", 12.0)))
	requireCode(t, animals.Create(ctx, testAnimal("Max", 20.0)), validation.CodeDuplicateName)
}

func TestUpdateAnimalReplacesFields(t *testing.T) {
	animals, _ := setupServices(t)
	ctx := context.Background()

	animal := testAnimal("Rex", 12.0)
	require.NoError(t, animals.Create(ctx, animal))

	updatedFields := testAnimal("Rex", 30.0)
	updatedFields.Color = "Black"
	updated, err := animals.Update(ctx, animal.AnimalUid, updatedFields)
	require.NoError(t, err)

	assert.Equal(t, "Black", updated.Color)
	// Size not supplied, so it is re-derived from the new weight.
	assert.Equal(t, models.SizeLarge, updated.Size)
	assert.Equal(t, animal.AnimalUid, updated.AnimalUid)
}

func TestUpdateAnimalKeepingOwnNameIsNotADuplicate(t *testing.T) {
	animals, _ := setupServices(t)
	ctx := context.Background()

	animal := testAnimal("Rex", 12.0)
	require.NoError(t, animals.Create(ctx, animal))

	updatedFields := testAnimal("REX", 12.0)
	_, err := animals.Update(ctx, animal.AnimalUid, updatedFields)
	assert.NoError(t, err)
}

func TestUpdateAnimalDuplicateNameAgainstOther(t *testing.T) {
	animals, _ := setupServices(t)
	ctx := context.Background()

	require.NoError(t, animals.Create(ctx, testAnimal("Luna", 9.0)))
	animal := testAnimal("Rex", 12.0)
	require.NoError(t, animals.Create(ctx, animal))

	_, err := animals.Update(ctx, animal.AnimalUid, testAnimal("luna", 12.0))
	requireCode(t, err, validation.CodeDuplicateName)
}

func TestUpdateAnimalNotFound(t *testing.T) {
	animals, _ := setupServices(t)

	_, err := animals.Update(context.Background(), "missing-uid", testAnimal("Rex", 12.0))
	requireCode(t, err, validation.CodeAnimalNotFound)
}

func TestDeleteAnimal(t *testing.T) {
	animals, _ := setupServices(t)
	ctx := context.Background()

	animal := testAnimal("Rex", 12.0)
	require.NoError(t, animals.Create(ctx, animal))
	require.NoError(t, animals.Delete(ctx, animal.AnimalUid))

	_, err := animals.GetByUid(ctx, animal.AnimalUid)
	requireCode(t, err, validation.CodeAnimalNotFound)
}

func TestDeleteAnimalNotFound(t *testing.T) {
	animals, _ := setupServices(t)
	requireCode(t, animals.Delete(context.Background(), "missing-uid"), validation.CodeAnimalNotFound)
}

func TestAssignOwner(t *testing.T) {
	animals, owners := setupServices(t)
	ctx := context.Background()

	animal := testAnimal("Rex", 12.0)
	require.NoError(t, animals.Create(ctx, animal))
	owner := testOwner("maria@example.com", "612345678")
	require.NoError(t, owners.Create(ctx, owner))

	assigned, err := animals.AssignOwner(ctx, animal.AnimalUid, owner.OwnerUid)
	require.NoError(t, err)

	assert.False(t, assigned.IsAvailable)
	require.NotNil(t, assigned.OwnerID)
	assert.Equal(t, owner.ID, *assigned.OwnerID)
}

func TestAssignOwnerIsIdempotent(t *testing.T) {
	animals, owners := setupServices(t)
	ctx := context.Background()

	animal := testAnimal("Rex", 12.0)
	require.NoError(t, animals.Create(ctx, animal))
	owner := testOwner("maria@example.com", "612345678")
	require.NoError(t, owners.Create(ctx, owner))

	_, err := animals.AssignOwner(ctx, animal.AnimalUid, owner.OwnerUid)
	require.NoError(t, err)
	again, err := animals.AssignOwner(ctx, animal.AnimalUid, owner.OwnerUid)
	require.NoError(t, err)

	assert.False(t, again.IsAvailable)
	require.NotNil(t, again.OwnerID)
	assert.Equal(t, owner.ID, *again.OwnerID)
}

// The animal is resolved first: a missing animal fails before the owner is
// ever considered, even when that owner does not exist either.
func TestAssignOwnerAnimalCheckedFirst(t *testing.T) {
	animals, _ := setupServices(t)

	_, err := animals.AssignOwner(context.Background(), "missing-animal", "missing-owner")
	requireCode(t, err, validation.CodeAnimalNotFound)
}

func TestAssignOwnerOwnerNotFound(t *testing.T) {
	animals, _ := setupServices(t)
	ctx := context.Background()

	animal := testAnimal("Rex", 12.0)
	require.NoError(t, animals.Create(ctx, animal))

	_, err := animals.AssignOwner(ctx, animal.AnimalUid, "missing-owner")
	requireCode(t, err, validation.CodeOwnerNotFound)
}

func TestAssignThenRemoveRestoresAvailability(t *testing.T) {
	animals, owners := setupServices(t)
	ctx := context.Background()

	animal := testAnimal("Rex", 12.0)
	require.NoError(t, animals.Create(ctx, animal))
	owner := testOwner("maria@example.com", "612345678")
	require.NoError(t, owners.Create(ctx, owner))

	_, err := animals.AssignOwner(ctx, animal.AnimalUid, owner.OwnerUid)
	require.NoError(t, err)

	removed, err := animals.RemoveOwner(ctx, animal.AnimalUid)
	require.NoError(t, err)

	assert.Nil(t, removed.OwnerID)
	assert.True(t, removed.IsAvailable)

	available, err := animals.AvailableForAdoption(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, animal.AnimalUid, available[0].AnimalUid)
}

func TestAvailableForAdoptionExcludesOwnedAnimals(t *testing.T) {
	animals, owners := setupServices(t)
	ctx := context.Background()

	owned := testAnimal("Rex", 12.0)
	require.NoError(t, animals.Create(ctx, owned))
	free := testAnimal("Luna", 9.0)
	require.NoError(t, animals.Create(ctx, free))

	owner := testOwner("maria@example.com", "612345678")
	require.NoError(t, owners.Create(ctx, owner))
	_, err := animals.AssignOwner(ctx, owned.AnimalUid, owner.OwnerUid)
	require.NoError(t, err)

	available, err := animals.AvailableForAdoption(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Luna", available[0].Name)
}

func TestPuppies(t *testing.T) {
	animals, _ := setupServices(t)
	ctx := context.Background()

	puppy := testAnimal("Pup", 4.0)
	puppy.Age = intPtr(0)
	require.NoError(t, animals.Create(ctx, puppy))
	adult := testAnimal("Rex", 12.0)
	require.NoError(t, animals.Create(ctx, adult))

	puppies, err := animals.Puppies(ctx)
	require.NoError(t, err)
	require.Len(t, puppies, 1)
	assert.Equal(t, "Pup", puppies[0].Name)
}

func TestSearchByNameAndBreed(t *testing.T) {
	animals, _ := setupServices(t)
	ctx := context.Background()

	rex := testAnimal("Rex", 12.0)
	rex.Breed = "Labrador"
	require.NoError(t, animals.Create(ctx, rex))
	luna := testAnimal("Luna", 9.0)
	luna.Breed = "Beagle"
	require.NoError(t, animals.Create(ctx, luna))

	byName, err := animals.SearchByName(ctx, "re")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Rex", byName[0].Name)

	byBreed, err := animals.SearchByBreed(ctx, "beagle")
	require.NoError(t, err)
	require.Len(t, byBreed, 1)
	assert.Equal(t, "Luna", byBreed[0].Name)
}

func TestBreedStatistics(t *testing.T) {
	animals, _ := setupServices(t)
	ctx := context.Background()

	for _, spec := range []struct {
		name  string
		breed string
	}{
		{"Rex", "Labrador"},
		{"Luna", "Labrador"},
		{"Toby", "Beagle"},
	} {
		a := testAnimal(spec.name, 12.0)
		a.Breed = spec.breed
		require.NoError(t, animals.Create(ctx, a))
	}

	stats, err := animals.BreedStatistics(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Labrador", stats[0].Breed)
	assert.Equal(t, int64(2), stats[0].Count)
	assert.Equal(t, "Beagle", stats[1].Breed)
	assert.Equal(t, int64(1), stats[1].Count)
}
