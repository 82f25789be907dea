package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noah-isme/animeaux-api/pkg/diff"
)

// Animal statuses tracked by the association.
const (
	AnimalStatusUnavailable       = "UNAVAILABLE"
	AnimalStatusOpenToAdoption    = "OPEN_TO_ADOPTION"
	AnimalStatusOpenToReservation = "OPEN_TO_RESERVATION"
	AnimalStatusReserved          = "RESERVED"
	AnimalStatusAdopted           = "ADOPTED"
	AnimalStatusReturned          = "RETURNED"
	AnimalStatusTransferred       = "TRANSFERRED"
	AnimalStatusFree              = "FREE"
	AnimalStatusRetired           = "RETIRED"
	AnimalStatusDeceased          = "DECEASED"
)

// Species supported by the association.
const (
	SpeciesBird    = "BIRD"
	SpeciesCat     = "CAT"
	SpeciesDog     = "DOG"
	SpeciesReptile = "REPTILE"
	SpeciesRodent  = "RODENT"
)

// Animal is an animal taken in by the association.
type Animal struct {
	ID             string     `gorm:"size:36;primaryKey" json:"id"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Alias          *string    `gorm:"size:255" json:"alias"`
	Species        string     `gorm:"size:32;not null;index" json:"species"`
	Gender         string     `gorm:"size:16;not null" json:"gender"`
	BirthDate      time.Time  `gorm:"not null" json:"birthdate"`
	PickUpDate     time.Time  `gorm:"not null" json:"pick_up_date"`
	Status         string     `gorm:"size:32;not null;index" json:"status"`
	IsSterilized   bool       `gorm:"not null;default:false" json:"is_sterilized"`
	AdoptionDate   *time.Time `json:"adoption_date"`
	Comments       string     `gorm:"type:text" json:"comments"`
	FosterFamilyID *string    `gorm:"size:36;index" json:"foster_family_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	FosterFamily *FosterFamily `gorm:"foreignKey:FosterFamilyID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate assigns the animal identifier.
func (a *Animal) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Snapshot returns the audited view of the animal.
func (a Animal) Snapshot() diff.Object {
	return diff.Object{
		"name":           a.Name,
		"alias":          derefString(a.Alias),
		"species":        a.Species,
		"gender":         a.Gender,
		"birthdate":      a.BirthDate,
		"pickUpDate":     a.PickUpDate,
		"status":         a.Status,
		"isSterilized":   a.IsSterilized,
		"adoptionDate":   a.AdoptionDate,
		"comments":       a.Comments,
		"fosterFamilyId": derefString(a.FosterFamilyID),
	}
}

func derefString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
