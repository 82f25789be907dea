package dto

import (
	"time"

	"github.com/noah-isme/animeaux-api/internal/models"
)

// FosterFamilyListRequest defines filters for listing foster families.
type FosterFamilyListRequest struct {
	Page        int
	PageSize    int
	Search      string
	City        string
	IsAvailable *bool
}

// FosterFamilyCreateRequest captures payloads for registering a foster family.
type FosterFamilyCreateRequest struct {
	DisplayName                string     `json:"display_name" validate:"required,min=1,max=255"`
	Email                      string     `json:"email" validate:"required,email"`
	Phone                      string     `json:"phone" validate:"required,min=6,max=32"`
	Address                    string     `json:"address" validate:"omitempty,max=255"`
	ZipCode                    string     `json:"zip_code" validate:"omitempty,max=16"`
	City                       string     `json:"city" validate:"omitempty,max=128"`
	SpeciesToHost              []string   `json:"species_to_host" validate:"omitempty,dive,oneof=BIRD CAT DOG REPTILE RODENT"`
	IsAvailable                *bool      `json:"is_available"`
	AvailabilityExpirationDate *time.Time `json:"availability_expiration_date"`
	Comments                   string     `json:"comments" validate:"omitempty,max=5000"`
}

// FosterFamilyUpdateRequest captures partial update payloads for foster families.
type FosterFamilyUpdateRequest struct {
	DisplayName                *string    `json:"display_name" validate:"omitempty,min=1,max=255"`
	Email                      *string    `json:"email" validate:"omitempty,email"`
	Phone                      *string    `json:"phone" validate:"omitempty,min=6,max=32"`
	Address                    *string    `json:"address" validate:"omitempty,max=255"`
	ZipCode                    *string    `json:"zip_code" validate:"omitempty,max=16"`
	City                       *string    `json:"city" validate:"omitempty,max=128"`
	SpeciesToHost              []string   `json:"species_to_host" validate:"omitempty,dive,oneof=BIRD CAT DOG REPTILE RODENT"`
	IsAvailable                *bool      `json:"is_available"`
	AvailabilityExpirationDate *time.Time `json:"availability_expiration_date"`
	Comments                   *string    `json:"comments" validate:"omitempty,max=5000"`
}

// FosterFamilyResponse serializes foster families.
type FosterFamilyResponse struct {
	ID                         string     `json:"id"`
	DisplayName                string     `json:"display_name"`
	Email                      string     `json:"email"`
	Phone                      string     `json:"phone"`
	Address                    string     `json:"address"`
	ZipCode                    string     `json:"zip_code"`
	City                       string     `json:"city"`
	SpeciesToHost              []string   `json:"species_to_host"`
	IsAvailable                bool       `json:"is_available"`
	AvailabilityExpirationDate *time.Time `json:"availability_expiration_date"`
	Comments                   string     `json:"comments"`
	CreatedAt                  time.Time  `json:"created_at"`
	UpdatedAt                  time.Time  `json:"updated_at"`
}

// FosterFamilyListResponse wraps paginated foster families.
type FosterFamilyListResponse struct {
	Items      []FosterFamilyResponse `json:"items"`
	Pagination PaginationMeta         `json:"pagination"`
}

// NewFosterFamilyResponse converts a foster family model into a DTO.
func NewFosterFamilyResponse(family models.FosterFamily) FosterFamilyResponse {
	species := make([]string, len(family.SpeciesToHost))
	copy(species, family.SpeciesToHost)

	return FosterFamilyResponse{
		ID:                         family.ID,
		DisplayName:                family.DisplayName,
		Email:                      family.Email,
		Phone:                      family.Phone,
		Address:                    family.Address,
		ZipCode:                    family.ZipCode,
		City:                       family.City,
		SpeciesToHost:              species,
		IsAvailable:                family.IsAvailable,
		AvailabilityExpirationDate: family.AvailabilityExpirationDate,
		Comments:                   family.Comments,
		CreatedAt:                  family.CreatedAt,
		UpdatedAt:                  family.UpdatedAt,
	}
}
