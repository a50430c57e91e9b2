package catalog

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(resource *Resource) error
	GetByID(id uuid.UUID) (*Resource, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Resource, error)
	Delete(id uuid.UUID) error
	GetAll(query ResourceListQuery) ([]Resource, int64, error)
	GetByCategory(category ResourceCategory) ([]Resource, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(resource *Resource) error {
	return r.db.Create(resource).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Resource, error) {
	var resource Resource
	err := r.db.Where("id = ?", id).First(&resource).Error
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Resource, error) {
	var resource Resource

	if err := r.db.Where("id = ?", id).First(&resource).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&resource).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&resource).Error; err != nil {
		return nil, err
	}

	return &resource, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Resource{}).Error
}

func (r *repository) GetAll(query ResourceListQuery) ([]Resource, int64, error) {
	var resources []Resource
	var totalCount int64

	db := r.db.Model(&Resource{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if query.Category != "" {
		db = db.Where("category = ?", query.Category)
	}

	if query.RoomType != "" {
		db = db.Where("LOWER(room_type) = ?", strings.ToLower(query.RoomType))
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("base_price ASC, id ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&resources).Error

	return resources, totalCount, err
}

func (r *repository) GetByCategory(category ResourceCategory) ([]Resource, error) {
	var resources []Resource
	err := r.db.Where("category = ?", category).
		Order("base_price ASC, id ASC").
		Find(&resources).Error
	return resources, err
}
