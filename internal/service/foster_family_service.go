package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/animeaux-api/internal/dto"
	"github.com/noah-isme/animeaux-api/internal/models"
	"github.com/noah-isme/animeaux-api/internal/repository"
)

// ErrFosterFamilyNotFound indicates the foster family does not exist.
var ErrFosterFamilyNotFound = errors.New("foster family not found")

// FosterFamilyService orchestrates foster family management use cases.
type FosterFamilyService interface {
	List(ctx context.Context, req dto.FosterFamilyListRequest) (dto.FosterFamilyListResponse, error)
	Get(ctx context.Context, id string) (dto.FosterFamilyResponse, error)
	Create(ctx context.Context, payload dto.FosterFamilyCreateRequest, actor ActivityActor) (dto.FosterFamilyResponse, error)
	Update(ctx context.Context, id string, payload dto.FosterFamilyUpdateRequest, actor ActivityActor) (dto.FosterFamilyResponse, error)
	Delete(ctx context.Context, id string, actor ActivityActor) error
}

type fosterFamilyService struct {
	repo      repository.FosterFamilyRepository
	validator *validator.Validate
	activity  ActivityRecorder
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewFosterFamilyService constructs the foster family service.
func NewFosterFamilyService(repo repository.FosterFamilyRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) FosterFamilyService {
	return &fosterFamilyService{
		repo:      repo,
		validator: validator,
		activity:  activity,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "foster_family_service").Logger(),
	}
}

func (s *fosterFamilyService) List(ctx context.Context, req dto.FosterFamilyListRequest) (dto.FosterFamilyListResponse, error) {
	families, total, err := s.repo.List(ctx, repository.FosterFamilyFilter{
		Search:      strings.TrimSpace(req.Search),
		City:        strings.TrimSpace(req.City),
		IsAvailable: req.IsAvailable,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
	if err != nil {
		return dto.FosterFamilyListResponse{}, err
	}

	items := make([]dto.FosterFamilyResponse, 0, len(families))
	for _, family := range families {
		items = append(items, dto.NewFosterFamilyResponse(family))
	}

	return dto.FosterFamilyListResponse{Items: items, Pagination: paginationMeta(req.Page, req.PageSize, total)}, nil
}

func (s *fosterFamilyService) Get(ctx context.Context, id string) (dto.FosterFamilyResponse, error) {
	family, err := s.find(ctx, id)
	if err != nil {
		return dto.FosterFamilyResponse{}, err
	}
	return dto.NewFosterFamilyResponse(family), nil
}

func (s *fosterFamilyService) Create(ctx context.Context, payload dto.FosterFamilyCreateRequest, actor ActivityActor) (dto.FosterFamilyResponse, error) {
	payload.SpeciesToHost = upperAll(payload.SpeciesToHost)
	if err := s.validator.Struct(payload); err != nil {
		return dto.FosterFamilyResponse{}, err
	}

	family := models.FosterFamily{
		DisplayName:                s.clean(payload.DisplayName),
		Email:                      strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:                      strings.TrimSpace(payload.Phone),
		Address:                    s.clean(payload.Address),
		ZipCode:                    strings.TrimSpace(payload.ZipCode),
		City:                       s.clean(payload.City),
		SpeciesToHost:              datatypes.JSONSlice[string](nonNilStrings(payload.SpeciesToHost)),
		IsAvailable:                true,
		AvailabilityExpirationDate: utcPtr(payload.AvailabilityExpirationDate),
		Comments:                   s.clean(payload.Comments),
	}
	if payload.IsAvailable != nil {
		family.IsAvailable = *payload.IsAvailable
	}

	// Omitting a false value would let the column default win.
	if err := s.repo.Create(ctx, &family); err != nil {
		return dto.FosterFamilyResponse{}, err
	}
	if !family.IsAvailable {
		updated, err := s.repo.Update(ctx, family.ID, map[string]interface{}{"is_available": false})
		if err != nil {
			return dto.FosterFamilyResponse{}, err
		}
		family = updated
	}

	s.record(ctx, actor, family.ID, ActivityCreated{After: family.Snapshot()})

	return dto.NewFosterFamilyResponse(family), nil
}

func (s *fosterFamilyService) Update(ctx context.Context, id string, payload dto.FosterFamilyUpdateRequest, actor ActivityActor) (dto.FosterFamilyResponse, error) {
	if payload.SpeciesToHost != nil {
		payload.SpeciesToHost = nonNilStrings(upperAll(payload.SpeciesToHost))
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.FosterFamilyResponse{}, err
	}

	before, err := s.find(ctx, id)
	if err != nil {
		return dto.FosterFamilyResponse{}, err
	}

	updates := make(map[string]interface{})
	if payload.DisplayName != nil {
		updates["display_name"] = s.clean(*payload.DisplayName)
	}
	if payload.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.Phone != nil {
		updates["phone"] = strings.TrimSpace(*payload.Phone)
	}
	if payload.Address != nil {
		updates["address"] = s.clean(*payload.Address)
	}
	if payload.ZipCode != nil {
		updates["zip_code"] = strings.TrimSpace(*payload.ZipCode)
	}
	if payload.City != nil {
		updates["city"] = s.clean(*payload.City)
	}
	if payload.SpeciesToHost != nil {
		updates["species_to_host"] = datatypes.JSONSlice[string](payload.SpeciesToHost)
	}
	if payload.IsAvailable != nil {
		updates["is_available"] = *payload.IsAvailable
		if *payload.IsAvailable {
			updates["availability_expiration_date"] = nil
		}
	}
	if payload.AvailabilityExpirationDate != nil {
		updates["availability_expiration_date"] = payload.AvailabilityExpirationDate.UTC()
	}
	if payload.Comments != nil {
		updates["comments"] = s.clean(*payload.Comments)
	}

	if len(updates) == 0 {
		return dto.NewFosterFamilyResponse(before), nil
	}

	after, err := s.repo.Update(ctx, before.ID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FosterFamilyResponse{}, ErrFosterFamilyNotFound
		}
		return dto.FosterFamilyResponse{}, err
	}

	s.record(ctx, actor, after.ID, ActivityUpdated{Before: before.Snapshot(), After: after.Snapshot()})

	return dto.NewFosterFamilyResponse(after), nil
}

func (s *fosterFamilyService) Delete(ctx context.Context, id string, actor ActivityActor) error {
	family, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, family.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFosterFamilyNotFound
		}
		return err
	}

	s.record(ctx, actor, family.ID, ActivityDeleted{Before: family.Snapshot()})

	return nil
}

func (s *fosterFamilyService) find(ctx context.Context, id string) (models.FosterFamily, error) {
	family, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FosterFamily{}, ErrFosterFamilyNotFound
		}
		return models.FosterFamily{}, err
	}
	return family, nil
}

func (s *fosterFamilyService) record(ctx context.Context, actor ActivityActor, id string, change ActivityChange) {
	if s.activity == nil {
		return
	}
	s.activity.Create(ctx, ActivityParams{
		Actor:      actor,
		Resource:   models.ActivityResourceFosterFamily,
		ResourceID: id,
		Change:     change,
	})
}

func (s *fosterFamilyService) clean(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
