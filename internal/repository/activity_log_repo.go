package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/animeaux-api/internal/models"
)

// ActivityLogFilter narrows activity log queries. Empty fields impose no constraint.
type ActivityLogFilter struct {
	Page       int
	PageSize   int
	Actions    []models.ActivityAction
	Resources  []models.ActivityResource
	ActorIDs   []string
	ResourceID string
	DateStart  *time.Time
	DateEnd    *time.Time
}

// ActivityLogRepository persists audit trail events.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	FindByID(ctx context.Context, id string, fields ...string) (models.ActivityLog, error)
	List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	omit := []string{"User", "Animal", "FosterFamily"}
	// A nil payload marshals to JSON null; leave the column SQL NULL instead.
	if entry.Before == nil {
		omit = append(omit, "before")
	}
	if entry.After == nil {
		omit = append(omit, "after")
	}
	return r.db.WithContext(ctx).Omit(omit...).Create(entry).Error
}

func (r *activityLogRepository) FindByID(ctx context.Context, id string, fields ...string) (models.ActivityLog, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{})
	if len(fields) > 0 {
		query = query.Select(fields)
	}

	var entry models.ActivityLog
	if err := query.Where("id = ?", id).Take(&entry).Error; err != nil {
		return models.ActivityLog{}, err
	}

	return entry, nil
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{})

	if len(filter.Actions) > 0 {
		query = query.Where("action IN ?", actionValues(filter.Actions))
	}

	if len(filter.Resources) > 0 {
		query = query.Where("resource IN ?", resourceValues(filter.Resources))
	}

	if len(filter.ActorIDs) > 0 {
		query = query.Where("actor_id IN ?", filter.ActorIDs)
	}

	if resourceID := strings.TrimSpace(filter.ResourceID); resourceID != "" {
		query = query.Where("LOWER(resource_id) LIKE ?", "%"+strings.ToLower(resourceID)+"%")
	}

	if filter.DateStart != nil {
		query = query.Where("created_at >= ?", filter.DateStart.UTC())
	}

	if filter.DateEnd != nil {
		query = query.Where("created_at <= ?", filter.DateEnd.UTC())
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var entries []models.ActivityLog
	if err := query.Order("created_at DESC").Order("id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func actionValues(actions []models.ActivityAction) []string {
	values := make([]string, 0, len(actions))
	for _, action := range actions {
		values = append(values, string(action))
	}
	return values
}

func resourceValues(resources []models.ActivityResource) []string {
	values := make([]string, 0, len(resources))
	for _, resource := range resources {
		values = append(values, string(resource))
	}
	return values
}
