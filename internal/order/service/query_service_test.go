package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"studentsites/internal/domain"
)

func queryService(t *testing.T) (*QueryService, *MockOrderRepository, *memoryCache) {
	t.Helper()

	mockRepo := NewMockOrderRepository(gomock.NewController(t))
	c := newMemoryCache()
	return NewQueryService(mockRepo, c, time.Minute, zap.NewNop()), mockRepo, c
}

func storedOrders() []domain.Order {
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	return []domain.Order{
		{ID: "a", Name: "Ann", Email: "ann@example.com", WebsiteType: "Blog", Package: domain.PackageBasic, Status: domain.StatusPending, OrderDate: base},
		{ID: "b", Name: "Ben", Email: "ben@example.com", WebsiteType: "Portfolio", Package: domain.PackagePro, Referral: "LinkedIn", Status: domain.StatusAccepted, OrderDate: base.Add(48 * time.Hour)},
		{ID: "c", Name: "Cat", Email: "cat@example.com", WebsiteType: "Portfolio", Package: domain.PackageBasic, Status: domain.StatusCompleted, OrderDate: base.Add(24 * time.Hour)},
	}
}

func TestQueryService_ListAll(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		criteria    domain.FilterCriteria
		mock        func(m *MockOrderRepository)
		expectedIDs []string
		expectedErr string
	}{
		{
			name:     "should sort newest first",
			criteria: domain.FilterCriteria{},
			mock: func(m *MockOrderRepository) {
				m.EXPECT().FindAll(ctx).Return(storedOrders(), nil)
			},
			expectedIDs: []string{"b", "c", "a"},
		},
		{
			name:     "should apply filter criteria",
			criteria: domain.FilterCriteria{WebsiteType: "Portfolio", Package: "basic"},
			mock: func(m *MockOrderRepository) {
				m.EXPECT().FindAll(ctx).Return(storedOrders(), nil)
			},
			expectedIDs: []string{"c"},
		},
		{
			name:     "should return empty list when nothing stored",
			criteria: domain.FilterCriteria{},
			mock: func(m *MockOrderRepository) {
				m.EXPECT().FindAll(ctx).Return([]domain.Order{}, nil)
			},
			expectedIDs: []string{},
		},
		{
			name:     "should propagate repository errors",
			criteria: domain.FilterCriteria{},
			mock: func(m *MockOrderRepository) {
				m.EXPECT().FindAll(ctx).Return(nil, errors.New("database error"))
			},
			expectedErr: "database error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc, mockRepo, _ := queryService(t)
			tc.mock(mockRepo)

			// when
			orders, err := svc.ListAll(ctx, tc.criteria)

			// then
			if tc.expectedErr != "" {
				assert.EqualError(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			got := make([]string, len(orders))
			for i, o := range orders {
				got[i] = o.ID
			}
			assert.Equal(t, tc.expectedIDs, got)
		})
	}
}

func TestQueryService_ListPublicProjects(t *testing.T) {
	t.Run("should project public orders and fill the cache", func(t *testing.T) {
		// given
		svc, mockRepo, c := queryService(t)
		var public []domain.Order
		for _, o := range storedOrders() {
			if o.Status.IsPublic() {
				public = append(public, o)
			}
		}
		mockRepo.EXPECT().FindByStatuses(gomock.Any(), domain.PublicStatuses).Return(public, nil)

		// when
		projects, err := svc.ListPublicProjects(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, []domain.ProjectSummary{
			{ID: "b", Name: "Ben", WebsiteType: "Portfolio", Status: domain.StatusAccepted},
			{ID: "c", Name: "Cat", WebsiteType: "Portfolio", Status: domain.StatusCompleted},
		}, projects)
		assert.Contains(t, c.values, ProjectsCacheKey)
	})

	t.Run("should never leak non-public orders returned by storage", func(t *testing.T) {
		// given
		svc, mockRepo, _ := queryService(t)
		mockRepo.EXPECT().FindByStatuses(gomock.Any(), gomock.Any()).Return(storedOrders(), nil)

		// when
		projects, err := svc.ListPublicProjects(context.Background())

		// then
		require.NoError(t, err)
		for _, p := range projects {
			assert.True(t, p.Status.IsPublic())
		}
		assert.Len(t, projects, 2)
	})

	t.Run("should serve from cache on hit", func(t *testing.T) {
		// given
		svc, _, c := queryService(t)
		c.values[ProjectsCacheKey] = `[{"ID":"z","Name":"Zed","WebsiteType":"Resume","Status":"Completed"}]`

		// when
		projects, err := svc.ListPublicProjects(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, []domain.ProjectSummary{
			{ID: "z", Name: "Zed", WebsiteType: "Resume", Status: domain.StatusCompleted},
		}, projects)
	})

	t.Run("should fall back to storage when the cache errors", func(t *testing.T) {
		// given
		svc, mockRepo, c := queryService(t)
		c.err = errors.New("redis down")
		mockRepo.EXPECT().FindByStatuses(gomock.Any(), gomock.Any()).Return([]domain.Order{}, nil)

		// when
		projects, err := svc.ListPublicProjects(context.Background())

		// then
		require.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)
	})
}
