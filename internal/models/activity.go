package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityActorType distinguishes human actions from scheduled ones.
type ActivityActorType string

// ActivityAction is the kind of mutation an audit entry describes.
type ActivityAction string

// ActivityResource identifies the kind of entity that was mutated.
type ActivityResource string

const (
	ActivityActorUser ActivityActorType = "USER"
	ActivityActorCron ActivityActorType = "CRON"

	ActivityActionCreate ActivityAction = "CREATE"
	ActivityActionUpdate ActivityAction = "UPDATE"
	ActivityActionDelete ActivityAction = "DELETE"

	ActivityResourceAnimal       ActivityResource = "ANIMAL"
	ActivityResourceFosterFamily ActivityResource = "FOSTER_FAMILY"
)

// ActivityActions lists every supported action.
var ActivityActions = []ActivityAction{ActivityActionCreate, ActivityActionUpdate, ActivityActionDelete}

// ActivityResources lists every audited resource kind.
var ActivityResources = []ActivityResource{ActivityResourceAnimal, ActivityResourceFosterFamily}

// ActivityLogColumns are the columns that can be projected when reading a single entry.
var ActivityLogColumns = []string{
	"id",
	"actor_type",
	"actor_id",
	"user_id",
	"action",
	"resource",
	"resource_id",
	"animal_id",
	"foster_family_id",
	"before",
	"after",
	"created_at",
}

// ActivityLog is a write-once audit entry describing one mutation of a resource.
type ActivityLog struct {
	ID             string            `gorm:"size:36;primaryKey" json:"id"`
	ActorType      ActivityActorType `gorm:"size:16;not null" json:"actor_type"`
	ActorID        string            `gorm:"size:64;not null;index" json:"actor_id"`
	UserID         *string           `gorm:"size:36" json:"user_id"`
	Action         ActivityAction    `gorm:"size:16;not null;index" json:"action"`
	Resource       ActivityResource  `gorm:"size:32;not null;index" json:"resource"`
	ResourceID     string            `gorm:"size:64;not null;index" json:"resource_id"`
	AnimalID       *string           `gorm:"size:36;index" json:"animal_id"`
	FosterFamilyID *string           `gorm:"size:36;index" json:"foster_family_id"`
	Before         datatypes.JSONMap `gorm:"type:json" json:"before"`
	After          datatypes.JSONMap `gorm:"type:json" json:"after"`
	CreatedAt      time.Time         `gorm:"index" json:"created_at"`

	User         *User         `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Animal       *Animal       `gorm:"foreignKey:AnimalID;constraint:OnDelete:SET NULL" json:"-"`
	FosterFamily *FosterFamily `gorm:"foreignKey:FosterFamilyID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate assigns the identifier and creation time of new entries.
func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	return nil
}

// activityForeignKeys maps a resource kind to the typed foreign key it fills.
var activityForeignKeys = map[ActivityResource]func(*ActivityLog, string){
	ActivityResourceAnimal: func(l *ActivityLog, id string) {
		l.AnimalID = &id
	},
	ActivityResourceFosterFamily: func(l *ActivityLog, id string) {
		l.FosterFamilyID = &id
	},
}

// LinkResource fills the typed foreign key matching the entry's resource and
// reports whether one exists. Deleted resources are never linked.
func (l *ActivityLog) LinkResource() bool {
	if l.Action == ActivityActionDelete {
		return false
	}
	link, ok := activityForeignKeys[l.Resource]
	if !ok {
		return false
	}
	link(l, l.ResourceID)
	return true
}

// IsValidActivityAction reports whether the value names a known action.
func IsValidActivityAction(value string) bool {
	for _, action := range ActivityActions {
		if string(action) == value {
			return true
		}
	}
	return false
}

// IsValidActivityResource reports whether the value names a known resource.
func IsValidActivityResource(value string) bool {
	for _, resource := range ActivityResources {
		if string(resource) == value {
			return true
		}
	}
	return false
}
