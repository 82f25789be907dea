package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/animeaux-api/internal/models"
)

// FosterFamilyFilter defines filters for listing foster families.
type FosterFamilyFilter struct {
	Search      string
	City        string
	IsAvailable *bool
	Page        int
	PageSize    int
}

// FosterFamilyRepository exposes persistence helpers for foster families.
type FosterFamilyRepository interface {
	Create(ctx context.Context, family *models.FosterFamily) error
	GetByID(ctx context.Context, id string) (models.FosterFamily, error)
	List(ctx context.Context, filter FosterFamilyFilter) ([]models.FosterFamily, int64, error)
	ListAvailabilityExpired(ctx context.Context, now time.Time) ([]models.FosterFamily, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (models.FosterFamily, error)
	Delete(ctx context.Context, id string) error
}

type fosterFamilyRepository struct {
	db *gorm.DB
}

// NewFosterFamilyRepository constructs the foster family repository.
func NewFosterFamilyRepository(db *gorm.DB) FosterFamilyRepository {
	return &fosterFamilyRepository{db: db}
}

func (r *fosterFamilyRepository) Create(ctx context.Context, family *models.FosterFamily) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *fosterFamilyRepository) GetByID(ctx context.Context, id string) (models.FosterFamily, error) {
	var family models.FosterFamily
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&family).Error; err != nil {
		return models.FosterFamily{}, err
	}

	return family, nil
}

func (r *fosterFamilyRepository) List(ctx context.Context, filter FosterFamilyFilter) ([]models.FosterFamily, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FosterFamily{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(display_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	if filter.City != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}

	if filter.IsAvailable != nil {
		query = query.Where("is_available = ?", *filter.IsAvailable)
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
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var families []models.FosterFamily
	if err := query.Order("display_name ASC").Order("id").Find(&families).Error; err != nil {
		return nil, 0, err
	}

	return families, total, nil
}

// ListAvailabilityExpired returns unavailable families whose unavailability has ended by now.
func (r *fosterFamilyRepository) ListAvailabilityExpired(ctx context.Context, now time.Time) ([]models.FosterFamily, error) {
	var families []models.FosterFamily
	err := r.db.WithContext(ctx).
		Where("is_available = ?", false).
		Where("availability_expiration_date IS NOT NULL").
		Where("availability_expiration_date <= ?", now.UTC()).
		Order("availability_expiration_date ASC").
		Find(&families).Error
	if err != nil {
		return nil, err
	}

	return families, nil
}

func (r *fosterFamilyRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (models.FosterFamily, error) {
	tx := r.db.WithContext(ctx).Model(&models.FosterFamily{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.FosterFamily{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.FosterFamily{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *fosterFamilyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Animal{}).
			Where("foster_family_id = ?", id).
			Update("foster_family_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.FosterFamily{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
