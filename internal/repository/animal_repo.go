package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/animeaux-api/internal/models"
)

// AnimalFilter defines filters for listing animals.
type AnimalFilter struct {
	Search   string
	Species  []string
	Statuses []string
	Page     int
	PageSize int
}

// AnimalRepository exposes persistence helpers for animals.
type AnimalRepository interface {
	Create(ctx context.Context, animal *models.Animal) error
	GetByID(ctx context.Context, id string) (models.Animal, error)
	List(ctx context.Context, filter AnimalFilter) ([]models.Animal, int64, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (models.Animal, error)
	Delete(ctx context.Context, id string) error
}

type animalRepository struct {
	db *gorm.DB
}

// NewAnimalRepository constructs the animal repository.
func NewAnimalRepository(db *gorm.DB) AnimalRepository {
	return &animalRepository{db: db}
}

func (r *animalRepository) Create(ctx context.Context, animal *models.Animal) error {
	return r.db.WithContext(ctx).Omit("FosterFamily").Create(animal).Error
}

func (r *animalRepository) GetByID(ctx context.Context, id string) (models.Animal, error) {
	var animal models.Animal
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&animal).Error; err != nil {
		return models.Animal{}, err
	}

	return animal, nil
}

func (r *animalRepository) List(ctx context.Context, filter AnimalFilter) ([]models.Animal, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Animal{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(alias) LIKE ?", like, like)
	}

	if len(filter.Species) > 0 {
		query = query.Where("species IN ?", filter.Species)
	}

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
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

	var animals []models.Animal
	if err := query.Order("pick_up_date DESC").Order("id").Find(&animals).Error; err != nil {
		return nil, 0, err
	}

	return animals, total, nil
}

func (r *animalRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (models.Animal, error) {
	tx := r.db.WithContext(ctx).Model(&models.Animal{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Animal{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Animal{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *animalRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Animal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
