package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/animeaux-api/internal/models"
)

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ActivityListRequest defines filters for retrieving activity logs.
type ActivityListRequest struct {
	Page       int
	PageSize   int        `validate:"gte=0,lte=200"`
	Actions    []string   `validate:"omitempty,dive,oneof=CREATE UPDATE DELETE"`
	Resources  []string   `validate:"omitempty,dive,oneof=ANIMAL FOSTER_FAMILY"`
	ActorIDs   []string   `validate:"omitempty,dive,required,max=64"`
	ResourceID string     `validate:"omitempty,max=64"`
	DateStart  *time.Time
	DateEnd    *time.Time
}

// ActivityResponse serializes activity log entries.
type ActivityResponse struct {
	ID             string                 `json:"id"`
	ActorType      string                 `json:"actor_type"`
	ActorID        string                 `json:"actor_id"`
	UserID         *string                `json:"user_id"`
	Action         string                 `json:"action"`
	Resource       string                 `json:"resource"`
	ResourceID     string                 `json:"resource_id"`
	AnimalID       *string                `json:"animal_id"`
	FosterFamilyID *string                `json:"foster_family_id"`
	Before         map[string]interface{} `json:"before"`
	After          map[string]interface{} `json:"after"`
	CreatedAt      time.Time              `json:"created_at"`
}

// ActivityListResponse wraps paginated activity logs.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
	CacheHit   bool               `json:"cache_hit"`
}

// NewActivityResponse converts a model into an activity DTO. The side of the
// diff that an action never carries is always reported as null.
func NewActivityResponse(entry models.ActivityLog) ActivityResponse {
	response := ActivityResponse{
		ID:             entry.ID,
		ActorType:      string(entry.ActorType),
		ActorID:        entry.ActorID,
		UserID:         entry.UserID,
		Action:         string(entry.Action),
		Resource:       string(entry.Resource),
		ResourceID:     entry.ResourceID,
		AnimalID:       entry.AnimalID,
		FosterFamilyID: entry.FosterFamilyID,
		Before:         payloadFromJSON(entry.Before),
		After:          payloadFromJSON(entry.After),
		CreatedAt:      entry.CreatedAt,
	}

	switch entry.Action {
	case models.ActivityActionCreate:
		response.Before = nil
	case models.ActivityActionDelete:
		response.After = nil
	case models.ActivityActionUpdate:
		if response.Before == nil {
			response.Before = map[string]interface{}{}
		}
		if response.After == nil {
			response.After = map[string]interface{}{}
		}
	}

	return response
}

func payloadFromJSON(data datatypes.JSONMap) map[string]interface{} {
	if data == nil {
		return nil
	}
	return map[string]interface{}(data)
}
