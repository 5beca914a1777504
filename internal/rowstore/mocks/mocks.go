package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/atelierhq/atelier/internal/rowstore"
)

// Store is a mock for rowstore.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Select(ctx context.Context, table string, opts rowstore.SelectOptions) ([]rowstore.Row, error) {
	args := m.Called(ctx, table, opts)
	if rows, ok := args.Get(0).([]rowstore.Row); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Insert(ctx context.Context, table string, values rowstore.Row) (rowstore.Row, error) {
	args := m.Called(ctx, table, values)
	if row, ok := args.Get(0).(rowstore.Row); ok {
		return row, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Update(ctx context.Context, table, id string, patch rowstore.Row) (rowstore.Row, error) {
	args := m.Called(ctx, table, id, patch)
	if row, ok := args.Get(0).(rowstore.Row); ok {
		return row, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Upsert(ctx context.Context, table string, values rowstore.Row) (rowstore.Row, error) {
	args := m.Called(ctx, table, values)
	if row, ok := args.Get(0).(rowstore.Row); ok {
		return row, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Delete(ctx context.Context, table, id string) error {
	args := m.Called(ctx, table, id)
	return args.Error(0)
}
