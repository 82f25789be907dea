package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/animeaux-api/internal/models"
	"github.com/noah-isme/animeaux-api/internal/repository"
)

// FosterFamilyAvailabilityJobID identifies the availability job in activity logs.
const FosterFamilyAvailabilityJobID = "foster-family-availability"

// FosterFamilyAvailabilityJob makes foster families available again once
// their unavailability period has expired.
type FosterFamilyAvailabilityJob struct {
	repo     repository.FosterFamilyRepository
	activity ActivityRecorder
	now      func() time.Time
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewFosterFamilyAvailabilityJob constructs the job. A nil now defaults to time.Now.
func NewFosterFamilyAvailabilityJob(repo repository.FosterFamilyRepository, activity ActivityRecorder, now func() time.Time, logger zerolog.Logger) *FosterFamilyAvailabilityJob {
	if now == nil {
		now = time.Now
	}
	return &FosterFamilyAvailabilityJob{
		repo:     repo,
		activity: activity,
		now:      now,
		logger:   logger.With().Str("component", "foster_family_availability_job").Logger(),
		tracer:   otel.Tracer("github.com/noah-isme/animeaux-api/internal/service/foster_family_availability"),
	}
}

// ID returns the cron identifier of the job.
func (j *FosterFamilyAvailabilityJob) ID() string {
	return FosterFamilyAvailabilityJobID
}

// Run restores availability for every expired family. Failures on one
// family do not stop the others; they are joined into the returned error.
func (j *FosterFamilyAvailabilityJob) Run(ctx context.Context) error {
	ctx, span := j.tracer.Start(ctx, "foster_family_availability.run")
	defer span.End()

	families, err := j.repo.ListAvailabilityExpired(ctx, j.now())
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.Int("foster_family.expired", len(families)))

	actor := CronActor{ID: FosterFamilyAvailabilityJobID}

	var errs []error
	for _, before := range families {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		after, err := j.repo.Update(ctx, before.ID, map[string]interface{}{
			"is_available":                 true,
			"availability_expiration_date": nil,
		})
		if err != nil {
			j.logger.Error().Err(err).Str("foster_family_id", before.ID).Msg("failed to restore availability")
			errs = append(errs, err)
			continue
		}

		if j.activity != nil {
			j.activity.Create(ctx, ActivityParams{
				Actor:      actor,
				Resource:   models.ActivityResourceFosterFamily,
				ResourceID: after.ID,
				Change:     ActivityUpdated{Before: before.Snapshot(), After: after.Snapshot()},
			})
		}
	}

	j.logger.Info().Int("count", len(families)-len(errs)).Msg("foster family availability restored")

	return errors.Join(errs...)
}
