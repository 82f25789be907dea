package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/animeaux-api/internal/dto"
	"github.com/noah-isme/animeaux-api/internal/models"
	"github.com/noah-isme/animeaux-api/internal/repository"
)

// ErrAnimalNotFound indicates the animal does not exist.
var ErrAnimalNotFound = errors.New("animal not found")

// AnimalService orchestrates animal management use cases.
type AnimalService interface {
	List(ctx context.Context, req dto.AnimalListRequest) (dto.AnimalListResponse, error)
	Get(ctx context.Context, id string) (dto.AnimalResponse, error)
	Create(ctx context.Context, payload dto.AnimalCreateRequest, actor ActivityActor) (dto.AnimalResponse, error)
	Update(ctx context.Context, id string, payload dto.AnimalUpdateRequest, actor ActivityActor) (dto.AnimalResponse, error)
	Delete(ctx context.Context, id string, actor ActivityActor) error
}

type animalService struct {
	repo      repository.AnimalRepository
	validator *validator.Validate
	activity  ActivityRecorder
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewAnimalService constructs the animal service.
func NewAnimalService(repo repository.AnimalRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AnimalService {
	return &animalService{
		repo:      repo,
		validator: validator,
		activity:  activity,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "animal_service").Logger(),
	}
}

func (s *animalService) List(ctx context.Context, req dto.AnimalListRequest) (dto.AnimalListResponse, error) {
	req.Species = upperAll(req.Species)
	req.Statuses = upperAll(req.Statuses)
	if err := s.validator.Struct(req); err != nil {
		return dto.AnimalListResponse{}, err
	}

	animals, total, err := s.repo.List(ctx, repository.AnimalFilter{
		Search:   strings.TrimSpace(req.Search),
		Species:  req.Species,
		Statuses: req.Statuses,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return dto.AnimalListResponse{}, err
	}

	items := make([]dto.AnimalResponse, 0, len(animals))
	for _, animal := range animals {
		items = append(items, dto.NewAnimalResponse(animal))
	}

	return dto.AnimalListResponse{Items: items, Pagination: paginationMeta(req.Page, req.PageSize, total)}, nil
}

func (s *animalService) Get(ctx context.Context, id string) (dto.AnimalResponse, error) {
	animal, err := s.find(ctx, id)
	if err != nil {
		return dto.AnimalResponse{}, err
	}
	return dto.NewAnimalResponse(animal), nil
}

func (s *animalService) Create(ctx context.Context, payload dto.AnimalCreateRequest, actor ActivityActor) (dto.AnimalResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnimalResponse{}, err
	}

	animal := models.Animal{
		Name:           s.clean(payload.Name),
		Alias:          s.cleanOptional(payload.Alias),
		Species:        payload.Species,
		Gender:         payload.Gender,
		BirthDate:      payload.BirthDate.UTC(),
		PickUpDate:     payload.PickUpDate.UTC(),
		Status:         payload.Status,
		IsSterilized:   payload.IsSterilized,
		AdoptionDate:   utcPtr(payload.AdoptionDate),
		Comments:       s.clean(payload.Comments),
		FosterFamilyID: optionalID(payload.FosterFamilyID),
	}

	if err := s.repo.Create(ctx, &animal); err != nil {
		return dto.AnimalResponse{}, err
	}

	s.record(ctx, actor, animal.ID, ActivityCreated{After: animal.Snapshot()})

	return dto.NewAnimalResponse(animal), nil
}

func (s *animalService) Update(ctx context.Context, id string, payload dto.AnimalUpdateRequest, actor ActivityActor) (dto.AnimalResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnimalResponse{}, err
	}

	before, err := s.find(ctx, id)
	if err != nil {
		return dto.AnimalResponse{}, err
	}

	updates := make(map[string]interface{})
	if payload.Name != nil {
		updates["name"] = s.clean(*payload.Name)
	}
	if payload.Alias != nil {
		updates["alias"] = s.cleanOptional(payload.Alias)
	}
	if payload.Species != nil {
		updates["species"] = *payload.Species
	}
	if payload.Gender != nil {
		updates["gender"] = *payload.Gender
	}
	if payload.BirthDate != nil {
		updates["birth_date"] = payload.BirthDate.UTC()
	}
	if payload.PickUpDate != nil {
		updates["pick_up_date"] = payload.PickUpDate.UTC()
	}
	if payload.Status != nil {
		updates["status"] = *payload.Status
	}
	if payload.IsSterilized != nil {
		updates["is_sterilized"] = *payload.IsSterilized
	}
	if payload.AdoptionDate != nil {
		updates["adoption_date"] = payload.AdoptionDate.UTC()
	}
	if payload.Comments != nil {
		updates["comments"] = s.clean(*payload.Comments)
	}
	if payload.FosterFamilyID != nil {
		updates["foster_family_id"] = optionalID(payload.FosterFamilyID)
	}

	if len(updates) == 0 {
		return dto.NewAnimalResponse(before), nil
	}

	after, err := s.repo.Update(ctx, before.ID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnimalResponse{}, ErrAnimalNotFound
		}
		return dto.AnimalResponse{}, err
	}

	s.record(ctx, actor, after.ID, ActivityUpdated{Before: before.Snapshot(), After: after.Snapshot()})

	return dto.NewAnimalResponse(after), nil
}

func (s *animalService) Delete(ctx context.Context, id string, actor ActivityActor) error {
	animal, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, animal.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnimalNotFound
		}
		return err
	}

	s.record(ctx, actor, animal.ID, ActivityDeleted{Before: animal.Snapshot()})

	return nil
}

func (s *animalService) find(ctx context.Context, id string) (models.Animal, error) {
	animal, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Animal{}, ErrAnimalNotFound
		}
		return models.Animal{}, err
	}
	return animal, nil
}

func (s *animalService) record(ctx context.Context, actor ActivityActor, id string, change ActivityChange) {
	if s.activity == nil {
		return
	}
	s.activity.Create(ctx, ActivityParams{
		Actor:      actor,
		Resource:   models.ActivityResourceAnimal,
		ResourceID: id,
		Change:     change,
	})
}

func (s *animalService) clean(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

func (s *animalService) cleanOptional(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := s.clean(*value)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
