package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/snapimage/internal/snapshot"
)

// MockBackend is a mock implementation of snapshot.Backend.
type MockBackend struct {
	mock.Mock
}

var _ snapshot.Backend = (*MockBackend)(nil)

// GetServer returns the mocked server.
func (m *MockBackend) GetServer(ctx context.Context, id string) (*snapshot.Server, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*snapshot.Server), args.Error(1)
}

// CreateImage returns the mocked image id.
func (m *MockBackend) CreateImage(ctx context.Context, serverID, name string) (string, error) {
	args := m.Called(ctx, serverID, name)
	return args.String(0), args.Error(1)
}

// GetImage returns the mocked image.
func (m *MockBackend) GetImage(ctx context.Context, id string) (*snapshot.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*snapshot.Image), args.Error(1)
}

// ListImages returns the mocked image list.
func (m *MockBackend) ListImages(ctx context.Context) ([]snapshot.Image, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]snapshot.Image), args.Error(1)
}

// DeleteImage returns the mocked deletion error.
func (m *MockBackend) DeleteImage(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
