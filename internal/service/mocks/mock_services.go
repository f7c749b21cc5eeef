package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tearoomcms/internal/model"
	"tearoomcms/internal/service"
)

type MockCarouselService struct {
	mock.Mock
}

func (m *MockCarouselService) Upload(ctx context.Context, f *service.File) (*model.CarouselImage, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CarouselImage), args.Error(1)
}

func (m *MockCarouselService) List(ctx context.Context) ([]model.CarouselImage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CarouselImage), args.Error(1)
}

func (m *MockCarouselService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) Upload(ctx context.Context, t model.MenuType, f *service.File) (*model.Menu, error) {
	args := m.Called(ctx, t, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Menu), args.Error(1)
}

func (m *MockMenuService) List(ctx context.Context) ([]model.Menu, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Menu), args.Error(1)
}

func (m *MockMenuService) Delete(ctx context.Context, t model.MenuType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockInstagramService struct {
	mock.Mock
}

func (m *MockInstagramService) Save(ctx context.Context, accessToken, userID string) (*model.InstagramSettings, error) {
	args := m.Called(ctx, accessToken, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InstagramSettings), args.Error(1)
}

func (m *MockInstagramService) Get(ctx context.Context) (*model.InstagramSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InstagramSettings), args.Error(1)
}

type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) Create(ctx context.Context, in service.JobInput) (*model.JobPosting, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobPosting), args.Error(1)
}

func (m *MockJobService) List(ctx context.Context) ([]model.JobPosting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JobPosting), args.Error(1)
}

func (m *MockJobService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
