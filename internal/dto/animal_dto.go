package dto

import (
	"time"

	"github.com/noah-isme/animeaux-api/internal/models"
)

// AnimalListRequest defines filters for listing animals.
type AnimalListRequest struct {
	Page     int
	PageSize int
	Search   string
	Species  []string `validate:"omitempty,dive,oneof=BIRD CAT DOG REPTILE RODENT"`
	Statuses []string `validate:"omitempty,dive,oneof=UNAVAILABLE OPEN_TO_ADOPTION OPEN_TO_RESERVATION RESERVED ADOPTED RETURNED TRANSFERRED FREE RETIRED DECEASED"`
}

// AnimalCreateRequest captures payloads for registering an animal.
type AnimalCreateRequest struct {
	Name           string     `json:"name" validate:"required,min=1,max=255"`
	Alias          *string    `json:"alias" validate:"omitempty,max=255"`
	Species        string     `json:"species" validate:"required,oneof=BIRD CAT DOG REPTILE RODENT"`
	Gender         string     `json:"gender" validate:"required,oneof=FEMALE MALE"`
	BirthDate      time.Time  `json:"birthdate" validate:"required"`
	PickUpDate     time.Time  `json:"pick_up_date" validate:"required"`
	Status         string     `json:"status" validate:"required,oneof=UNAVAILABLE OPEN_TO_ADOPTION OPEN_TO_RESERVATION RESERVED ADOPTED RETURNED TRANSFERRED FREE RETIRED DECEASED"`
	IsSterilized   bool       `json:"is_sterilized"`
	AdoptionDate   *time.Time `json:"adoption_date"`
	Comments       string     `json:"comments" validate:"omitempty,max=5000"`
	FosterFamilyID *string    `json:"foster_family_id" validate:"omitempty,max=36"`
}

// AnimalUpdateRequest captures partial update payloads for animals.
// An empty foster family id detaches the animal from its foster family.
type AnimalUpdateRequest struct {
	Name           *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Alias          *string    `json:"alias" validate:"omitempty,max=255"`
	Species        *string    `json:"species" validate:"omitempty,oneof=BIRD CAT DOG REPTILE RODENT"`
	Gender         *string    `json:"gender" validate:"omitempty,oneof=FEMALE MALE"`
	BirthDate      *time.Time `json:"birthdate"`
	PickUpDate     *time.Time `json:"pick_up_date"`
	Status         *string    `json:"status" validate:"omitempty,oneof=UNAVAILABLE OPEN_TO_ADOPTION OPEN_TO_RESERVATION RESERVED ADOPTED RETURNED TRANSFERRED FREE RETIRED DECEASED"`
	IsSterilized   *bool      `json:"is_sterilized"`
	AdoptionDate   *time.Time `json:"adoption_date"`
	Comments       *string    `json:"comments" validate:"omitempty,max=5000"`
	FosterFamilyID *string    `json:"foster_family_id" validate:"omitempty,max=36"`
}

// AnimalResponse serializes animals.
type AnimalResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Alias          *string    `json:"alias"`
	Species        string     `json:"species"`
	Gender         string     `json:"gender"`
	BirthDate      time.Time  `json:"birthdate"`
	PickUpDate     time.Time  `json:"pick_up_date"`
	Status         string     `json:"status"`
	IsSterilized   bool       `json:"is_sterilized"`
	AdoptionDate   *time.Time `json:"adoption_date"`
	Comments       string     `json:"comments"`
	FosterFamilyID *string    `json:"foster_family_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AnimalListResponse wraps paginated animals.
type AnimalListResponse struct {
	Items      []AnimalResponse `json:"items"`
	Pagination PaginationMeta   `json:"pagination"`
}

// NewAnimalResponse converts an animal model into a DTO.
func NewAnimalResponse(animal models.Animal) AnimalResponse {
	return AnimalResponse{
		ID:             animal.ID,
		Name:           animal.Name,
		Alias:          animal.Alias,
		Species:        animal.Species,
		Gender:         animal.Gender,
		BirthDate:      animal.BirthDate,
		PickUpDate:     animal.PickUpDate,
		Status:         animal.Status,
		IsSterilized:   animal.IsSterilized,
		AdoptionDate:   animal.AdoptionDate,
		Comments:       animal.Comments,
		FosterFamilyID: animal.FosterFamilyID,
		CreatedAt:      animal.CreatedAt,
		UpdatedAt:      animal.UpdatedAt,
	}
}
