package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"hotelio/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	cacheKeyResourceList   = "hotelio:catalog:list:"
	cacheKeyResourceDetail = "hotelio:catalog:detail:"
	cachePatternAll        = "hotelio:catalog:*"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateResource(adminID uuid.UUID, req CreateResourceRequest) (*ResourceResponse, error)
	GetResourceByID(ctx context.Context, id uuid.UUID) (*ResourceResponse, error)
	UpdateResource(id uuid.UUID, adminID uuid.UUID, req UpdateResourceRequest) (*ResourceResponse, error)
	DeleteResource(id uuid.UUID) error
	GetAllResources(ctx context.Context, query ResourceListQuery) (*PaginatedResources, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	cacheTTL     time.Duration
}

func NewService(repo Repository, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cacheTTL: cacheTTL,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	// Invalidation failure only means stale reads until TTL expiry
	_ = s.cacheService.DeletePattern(ctx, cachePatternAll)
}

func (s *service) CreateResource(adminID uuid.UUID, req CreateResourceRequest) (*ResourceResponse, error) {
	if !IsValidCategory(req.Category) {
		return nil, fmt.Errorf("invalid resource category: %s", req.Category)
	}

	if req.Category == string(CategoryRoom) && req.RoomType == "" {
		return nil, errors.New("room_type is required for ROOM resources")
	}

	resource := &Resource{
		Name:        req.Name,
		Description: req.Description,
		Category:    ResourceCategory(req.Category),
		RoomType:    req.RoomType,
		BasePrice:   req.BasePrice,
		Capacity:    req.Capacity,
		Status:      StatusAvailable,
		CreatedBy:   adminID,
	}

	if err := s.repo.Create(resource); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	s.invalidateCache(context.Background())

	response := resource.ToResponse()
	return &response, nil
}

func (s *service) GetResourceByID(ctx context.Context, id uuid.UUID) (*ResourceResponse, error) {
	var response ResourceResponse

	if s.cacheService != nil {
		err := s.cacheService.GetOrSet(ctx, cacheKeyResourceDetail+id.String(), s.cacheTTL,
			func() (interface{}, error) {
				resource, err := s.repo.GetByID(id)
				if err != nil {
					return nil, err
				}
				return resource.ToResponse(), nil
			}, &response)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("resource not found")
			}
			return nil, err
		}
		return &response, nil
	}

	resource, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("resource not found")
		}
		return nil, err
	}

	response = resource.ToResponse()
	return &response, nil
}

func (s *service) UpdateResource(id uuid.UUID, adminID uuid.UUID, req UpdateResourceRequest) (*ResourceResponse, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.RoomType != nil {
		updates["room_type"] = *req.RoomType
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Status != nil {
		if !IsValidStatus(*req.Status) {
			return nil, fmt.Errorf("invalid resource status: %s", *req.Status)
		}
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return nil, errors.New("no fields to update")
	}

	updates["updated_by"] = adminID

	resource, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("resource not found")
		}
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}

	s.invalidateCache(context.Background())

	response := resource.ToResponse()
	return &response, nil
}

func (s *service) DeleteResource(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("resource not found")
		}
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	s.invalidateCache(context.Background())
	return nil
}

func (s *service) GetAllResources(ctx context.Context, query ResourceListQuery) (*PaginatedResources, error) {
	fetch := func() (*PaginatedResources, error) {
		resources, totalCount, err := s.repo.GetAll(query)
		if err != nil {
			return nil, fmt.Errorf("failed to list resources: %w", err)
		}

		responses := make([]ResourceResponse, len(resources))
		for i, resource := range resources {
			responses[i] = resource.ToResponse()
		}

		page := query.Page
		if page == 0 {
			page = 1
		}
		limit := query.Limit
		if limit == 0 {
			limit = 10
		}

		return &PaginatedResources{
			Resources:  responses,
			TotalCount: totalCount,
			Page:       page,
			Limit:      limit,
			TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
		}, nil
	}

	if s.cacheService == nil {
		return fetch()
	}

	cacheKey := fmt.Sprintf("%s%d:%d:%s:%s:%s:%s", cacheKeyResourceList,
		query.Page, query.Limit, query.Search, query.Category, query.RoomType, query.Status)

	var result PaginatedResources
	err := s.cacheService.GetOrSet(ctx, cacheKey, s.cacheTTL,
		func() (interface{}, error) {
			return fetch()
		}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
