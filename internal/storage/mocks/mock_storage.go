package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"tearoomcms/internal/storage"
)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Get(ctx context.Context, path string) (storage.FileInfo, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(storage.FileInfo), args.Error(1)
}

func (m *MockFileStore) Put(ctx context.Context, path string, r io.Reader, opt storage.PutOptions) (string, error) {
	args := m.Called(ctx, path, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, storage.PutOptions) string); ok {
		return f(ctx, path, r, opt), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
