package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/animeaux-api/internal/dto"
	"github.com/noah-isme/animeaux-api/internal/models"
	"github.com/noah-isme/animeaux-api/internal/repository"
)

func TestFosterFamilyServiceCreateKeepsUnavailableFlag(t *testing.T) {
	db := setupTestDB(t)
	activityRepo := &memoryActivityRepo{}
	activity := NewActivityService(activityRepo, testValidator(), ActivityServiceOptions{Reporter: &stubReporter{}}, testLogger())
	svc := NewFosterFamilyService(repository.NewFosterFamilyRepository(db), testValidator(), activity, testLogger())

	unavailable := false
	created, err := svc.Create(context.Background(), dto.FosterFamilyCreateRequest{
		DisplayName:   "The Martins",
		Email:         "Martins@Example.com",
		Phone:         "0600000000",
		City:          "Lyon",
		SpeciesToHost: []string{"cat", "dog"},
		IsAvailable:   &unavailable,
	}, UserActor{ID: "user-1"})
	require.NoError(t, err)
	require.False(t, created.IsAvailable)
	require.Equal(t, "martins@example.com", created.Email)
	require.Equal(t, []string{"CAT", "DOG"}, created.SpeciesToHost)

	entries := activityRepo.snapshot()
	require.Len(t, entries, 1)
	require.Equal(t, false, entries[0].After["isAvailable"])
	require.Equal(t, created.ID, *entries[0].FosterFamilyID)
}

func TestFosterFamilyServiceDeleteDetachesAnimals(t *testing.T) {
	db := setupTestDB(t)
	activityRepo := &memoryActivityRepo{}
	activity := NewActivityService(activityRepo, testValidator(), ActivityServiceOptions{Reporter: &stubReporter{}}, testLogger())
	families := NewFosterFamilyService(repository.NewFosterFamilyRepository(db), testValidator(), activity, testLogger())
	animals := NewAnimalService(repository.NewAnimalRepository(db), testValidator(), activity, testLogger())
	ctx := context.Background()

	family, err := families.Create(ctx, dto.FosterFamilyCreateRequest{
		DisplayName: "The Duponts",
		Email:       "duponts@example.com",
		Phone:       "0611111111",
	}, UserActor{ID: "user-1"})
	require.NoError(t, err)

	payload := validAnimalPayload()
	payload.FosterFamilyID = ptrString(family.ID)
	animal, err := animals.Create(ctx, payload, UserActor{ID: "user-1"})
	require.NoError(t, err)
	require.Equal(t, family.ID, *animal.FosterFamilyID)

	require.NoError(t, families.Delete(ctx, family.ID, UserActor{ID: "user-1"}))

	reloaded, err := animals.Get(ctx, animal.ID)
	require.NoError(t, err)
	require.Nil(t, reloaded.FosterFamilyID)

	_, err = families.Get(ctx, family.ID)
	require.ErrorIs(t, err, ErrFosterFamilyNotFound)

	entries := activityRepo.snapshot()
	last := entries[len(entries)-1]
	require.Equal(t, models.ActivityActionDelete, last.Action)
	require.Equal(t, models.ActivityResourceFosterFamily, last.Resource)
	require.Nil(t, last.FosterFamilyID)
}

func TestFosterFamilyAvailabilityJobRestoresExpiredFamilies(t *testing.T) {
	db := setupTestDB(t)
	familyRepo := repository.NewFosterFamilyRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	reporter := &stubReporter{}
	activity := NewActivityService(activityRepo, testValidator(), ActivityServiceOptions{Reporter: reporter}, testLogger())
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	seed := func(name string, expiration *time.Time) models.FosterFamily {
		family := models.FosterFamily{DisplayName: name, Email: name + "@example.com", Phone: "0622222222"}
		require.NoError(t, familyRepo.Create(ctx, &family))
		updated, err := familyRepo.Update(ctx, family.ID, map[string]interface{}{
			"is_available":                 false,
			"availability_expiration_date": expiration,
		})
		require.NoError(t, err)
		return updated
	}

	stale := seed("stale", &expired)
	pending := seed("pending", &future)
	open := seed("open", nil)

	job := NewFosterFamilyAvailabilityJob(familyRepo, activity, func() time.Time { return now }, testLogger())
	require.Equal(t, "foster-family-availability", job.ID())
	require.NoError(t, job.Run(ctx))

	restored, err := familyRepo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	require.True(t, restored.IsAvailable)
	require.Nil(t, restored.AvailabilityExpirationDate)

	for _, id := range []string{pending.ID, open.ID} {
		untouched, err := familyRepo.GetByID(ctx, id)
		require.NoError(t, err)
		require.False(t, untouched.IsAvailable)
	}

	logs, total, err := activityRepo.List(ctx, repository.ActivityLogFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, models.ActivityActorCron, logs[0].ActorType)
	require.Equal(t, FosterFamilyAvailabilityJobID, logs[0].ActorID)
	require.Nil(t, logs[0].UserID)
	require.Equal(t, stale.ID, *logs[0].FosterFamilyID)
	require.Equal(t, true, logs[0].After["isAvailable"])
	require.Equal(t, false, logs[0].Before["isAvailable"])
	require.Nil(t, logs[0].After["availabilityExpirationDate"])
	require.Equal(t, "2024-06-01T11:00:00.000Z", logs[0].Before["availabilityExpirationDate"])
	require.Empty(t, reporter.calls())
}
