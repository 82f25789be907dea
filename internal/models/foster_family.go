package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/animeaux-api/pkg/diff"
)

// FosterFamily hosts animals temporarily until they are adopted.
type FosterFamily struct {
	ID                         string                      `gorm:"size:36;primaryKey" json:"id"`
	DisplayName                string                      `gorm:"size:255;not null" json:"display_name"`
	Email                      string                      `gorm:"size:255;not null;index" json:"email"`
	Phone                      string                      `gorm:"size:32;not null" json:"phone"`
	Address                    string                      `gorm:"size:255" json:"address"`
	ZipCode                    string                      `gorm:"size:16" json:"zip_code"`
	City                       string                      `gorm:"size:128" json:"city"`
	SpeciesToHost              datatypes.JSONSlice[string] `gorm:"type:json" json:"species_to_host"`
	IsAvailable                bool                        `gorm:"not null;default:true" json:"is_available"`
	AvailabilityExpirationDate *time.Time                  `json:"availability_expiration_date"`
	Comments                   string                      `gorm:"type:text" json:"comments"`
	CreatedAt                  time.Time                   `json:"created_at"`
	UpdatedAt                  time.Time                   `json:"updated_at"`
}

// BeforeCreate assigns the foster family identifier.
func (f *FosterFamily) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Snapshot returns the audited view of the foster family.
func (f FosterFamily) Snapshot() diff.Object {
	species := make([]string, len(f.SpeciesToHost))
	copy(species, f.SpeciesToHost)

	return diff.Object{
		"displayName":                f.DisplayName,
		"email":                      f.Email,
		"phone":                      f.Phone,
		"address":                    f.Address,
		"zipCode":                    f.ZipCode,
		"city":                       f.City,
		"speciesToHost":              species,
		"isAvailable":                f.IsAvailable,
		"availabilityExpirationDate": f.AvailabilityExpirationDate,
		"comments":                   f.Comments,
	}
}
