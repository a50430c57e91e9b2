package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(resource *Resource) error {
	args := m.Called(resource)
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New() // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockResourceRepository) GetByID(id uuid.UUID) (*Resource, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Resource), args.Error(1)
}

func (m *MockResourceRepository) Update(id uuid.UUID, updates map[string]interface{}) (*Resource, error) {
	args := m.Called(id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Resource), args.Error(1)
}

func (m *MockResourceRepository) Delete(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockResourceRepository) GetAll(query ResourceListQuery) ([]Resource, int64, error) {
	args := m.Called(query)
	return args.Get(0).([]Resource), args.Get(1).(int64), args.Error(2)
}

func (m *MockResourceRepository) GetByCategory(category ResourceCategory) ([]Resource, error) {
	args := m.Called(category)
	return args.Get(0).([]Resource), args.Error(1)
}

func TestCreateResource(t *testing.T) {
	adminID := uuid.New()

	t.Run("room requires a room type", func(t *testing.T) {
		repo := new(MockResourceRepository)
		svc := NewService(repo, 5*time.Minute)

		_, err := svc.CreateResource(adminID, CreateResourceRequest{
			Name:      "Room 101",
			Category:  "ROOM",
			BasePrice: 4500,
			Capacity:  2,
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("new resources start available", func(t *testing.T) {
		repo := new(MockResourceRepository)
		svc := NewService(repo, 5*time.Minute)

		var created *Resource
		repo.On("Create", mock.AnythingOfType("*catalog.Resource")).
			Run(func(args mock.Arguments) {
				created = args.Get(0).(*Resource)
			}).Return(nil)

		result, err := svc.CreateResource(adminID, CreateResourceRequest{
			Name:      "Grand Ballroom",
			Category:  "BANQUET",
			BasePrice: 150000,
			Capacity:  500,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusAvailable, created.Status)
		assert.Equal(t, adminID, created.CreatedBy)
		assert.Equal(t, StatusAvailable, result.Status)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		repo := new(MockResourceRepository)
		svc := NewService(repo, 5*time.Minute)

		_, err := svc.CreateResource(adminID, CreateResourceRequest{
			Name:      "Pool Cabana",
			Category:  "CABANA",
			BasePrice: 2000,
			Capacity:  4,
		})

		assert.Error(t, err)
	})
}

func TestUpdateResource(t *testing.T) {
	adminID := uuid.New()
	resourceID := uuid.New()

	t.Run("only provided fields are updated", func(t *testing.T) {
		repo := new(MockResourceRepository)
		svc := NewService(repo, 5*time.Minute)

		newPrice := 5200.0
		updated := &Resource{ID: resourceID, Name: "Room 101", Category: CategoryRoom, BasePrice: newPrice, Capacity: 2, Status: StatusAvailable}

		var captured map[string]interface{}
		repo.On("Update", resourceID, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(map[string]interface{})
			}).Return(updated, nil)

		_, err := svc.UpdateResource(resourceID, adminID, UpdateResourceRequest{BasePrice: &newPrice})

		require.NoError(t, err)
		assert.Equal(t, newPrice, captured["base_price"])
		assert.Equal(t, adminID, captured["updated_by"])
		assert.NotContains(t, captured, "name")
		assert.NotContains(t, captured, "capacity")
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		repo := new(MockResourceRepository)
		svc := NewService(repo, 5*time.Minute)

		status := "CLOSED"
		_, err := svc.UpdateResource(resourceID, adminID, UpdateResourceRequest{Status: &status})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		repo := new(MockResourceRepository)
		svc := NewService(repo, 5*time.Minute)

		_, err := svc.UpdateResource(resourceID, adminID, UpdateResourceRequest{})

		assert.Error(t, err)
	})

	t.Run("missing resource reports not found", func(t *testing.T) {
		repo := new(MockResourceRepository)
		svc := NewService(repo, 5*time.Minute)

		newPrice := 5200.0
		repo.On("Update", resourceID, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.UpdateResource(resourceID, adminID, UpdateResourceRequest{BasePrice: &newPrice})

		assert.EqualError(t, err, "resource not found")
	})
}

func TestGetAllResources(t *testing.T) {
	repo := new(MockResourceRepository)
	svc := NewService(repo, 5*time.Minute)

	resources := []Resource{
		{ID: uuid.New(), Name: "Table 1", Category: CategoryTable, BasePrice: 500, Capacity: 2, Status: StatusAvailable},
		{ID: uuid.New(), Name: "Table 5", Category: CategoryTable, BasePrice: 800, Capacity: 6, Status: StatusAvailable},
	}
	repo.On("GetAll", mock.Anything).Return(resources, int64(2), nil)

	result, err := svc.GetAllResources(context.Background(), ResourceListQuery{Category: "TABLE"})

	require.NoError(t, err)
	assert.Len(t, result.Resources, 2)
	assert.Equal(t, int64(2), result.TotalCount)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 1, result.TotalPages)
}

func TestResourceStatusPredicates(t *testing.T) {
	assert.True(t, StatusAvailable.IsBookable())
	assert.False(t, StatusOccupied.IsBookable())
	assert.False(t, StatusMaintenance.IsBookable())
	assert.False(t, StatusReserved.IsBookable())

	assert.True(t, IsValidCategory("ROOM"))
	assert.True(t, IsValidCategory("BANQUET"))
	assert.True(t, IsValidCategory("TABLE"))
	assert.False(t, IsValidCategory("room"))
}
