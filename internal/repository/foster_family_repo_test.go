package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/animeaux-api/internal/models"
)

func TestFosterFamilyRepositoryListAvailabilityExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFosterFamilyRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	seed := func(name string, available bool, expiration *time.Time) string {
		family := models.FosterFamily{DisplayName: name, Email: name + "@example.com", Phone: "0600000000"}
		require.NoError(t, repo.Create(ctx, &family))
		_, err := repo.Update(ctx, family.ID, map[string]interface{}{
			"is_available":                 available,
			"availability_expiration_date": expiration,
		})
		require.NoError(t, err)
		return family.ID
	}

	older := now.Add(-48 * time.Hour)
	recent := now.Add(-time.Minute)
	later := now.Add(time.Hour)

	recentID := seed("recent", false, &recent)
	olderID := seed("older", false, &older)
	seed("later", false, &later)
	seed("indefinite", false, nil)
	seed("available", true, &older)

	families, err := repo.ListAvailabilityExpired(ctx, now)
	require.NoError(t, err)
	require.Len(t, families, 2)
	require.Equal(t, olderID, families[0].ID)
	require.Equal(t, recentID, families[1].ID)
}

func TestFosterFamilyRepositoryDeleteDetachesAnimals(t *testing.T) {
	db := setupTestDB(t)
	families := NewFosterFamilyRepository(db)
	animals := NewAnimalRepository(db)
	ctx := context.Background()

	family := models.FosterFamily{DisplayName: "Host", Email: "host@example.com", Phone: "0600000000"}
	require.NoError(t, families.Create(ctx, &family))

	animal := models.Animal{
		Name:           "Milo",
		Species:        models.SpeciesCat,
		Gender:         "FEMALE",
		BirthDate:      time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		PickUpDate:     time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:         models.AnimalStatusUnavailable,
		FosterFamilyID: &family.ID,
	}
	require.NoError(t, animals.Create(ctx, &animal))

	require.NoError(t, families.Delete(ctx, family.ID))

	reloaded, err := animals.GetByID(ctx, animal.ID)
	require.NoError(t, err)
	require.Nil(t, reloaded.FosterFamilyID)

	require.ErrorIs(t, families.Delete(ctx, family.ID), gorm.ErrRecordNotFound)
}

func TestAnimalRepositoryUpdateMissing(t *testing.T) {
	repo := NewAnimalRepository(setupTestDB(t))

	_, err := repo.Update(context.Background(), "missing", map[string]interface{}{"name": "Ghost"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
