package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles granted through the bearer token.
const (
	UserRoleAdmin         = "admin"
	UserRoleAnimalManager = "animal_manager"
	UserRoleVolunteer     = "volunteer"
)

// User is a back-office account. Activity entries reference it when the
// actor is a human.
type User struct {
	ID          string    `gorm:"size:36;primaryKey" json:"id"`
	DisplayName string    `gorm:"size:255;not null" json:"display_name"`
	Email       string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role        string    `gorm:"size:32;not null" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns the user identifier.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
