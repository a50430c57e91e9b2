package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Resource is a single bookable unit: one room instance, one banquet
// hall or one restaurant table.
type Resource struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string           `json:"name" gorm:"not null;size:255"`
	Description string           `json:"description" gorm:"type:text"`
	Category    ResourceCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	RoomType    string           `json:"room_type" gorm:"size:100;index"`
	BasePrice   float64          `json:"base_price" gorm:"not null;check:base_price >= 0"`
	Capacity    int              `json:"capacity" gorm:"not null;check:capacity > 0"`
	Status      ResourceStatus   `json:"status" gorm:"type:varchar(20);default:'AVAILABLE'"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

type ResourceResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    ResourceCategory `json:"category"`
	RoomType    string           `json:"room_type,omitempty"`
	BasePrice   float64          `json:"base_price"`
	Capacity    int              `json:"capacity"`
	Status      ResourceStatus   `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type CreateResourceRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Description string  `json:"description" binding:"max=2000"`
	Category    string  `json:"category" binding:"required,oneof=ROOM BANQUET TABLE"`
	RoomType    string  `json:"room_type" binding:"omitempty,max=100"`
	BasePrice   float64 `json:"base_price" binding:"required,min=0"`
	Capacity    int     `json:"capacity" binding:"required,min=1,max=10000"`
}

type UpdateResourceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	RoomType    *string  `json:"room_type" binding:"omitempty,max=100"`
	BasePrice   *float64 `json:"base_price" binding:"omitempty,min=0"`
	Capacity    *int     `json:"capacity" binding:"omitempty,min=1,max=10000"`
	Status      *string  `json:"status" binding:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE RESERVED"`
}

type ResourceListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Category string `form:"category" binding:"omitempty,oneof=ROOM BANQUET TABLE"`
	RoomType string `form:"room_type"`
	Status   string `form:"status" binding:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE RESERVED"`
}

type PaginatedResources struct {
	Resources  []ResourceResponse `json:"resources"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

func (r *Resource) ToResponse() ResourceResponse {
	return ResourceResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		RoomType:    r.RoomType,
		BasePrice:   r.BasePrice,
		Capacity:    r.Capacity,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Resource) TableName() string {
	return "resources"
}
