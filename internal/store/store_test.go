package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/domain/client"
	"github.com/atelierhq/atelier/internal/mapper"
	"github.com/atelierhq/atelier/internal/rowstore"
	"github.com/atelierhq/atelier/internal/rowstore/mocks"
	"github.com/atelierhq/atelier/internal/store"
)

func newClientStore(remote rowstore.Store) *store.Store[client.Client] {
	return client.NewStore(remote, nil)
}

func patch(t *testing.T, name string, value any) *mapper.Patch {
	t.Helper()
	return mapper.NewPatch().Set(name, value)
}

func TestFetchAllReplacesItems(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Select", ctx, "clients", mock.Anything).Return([]rowstore.Row{
		{"id": "c2", "name": "Bina"},
		{"id": "c1", "name": "Asep"},
	}, nil)

	s := newClientStore(remote)
	s.FetchAll(ctx)

	items := s.Items()
	require.Len(t, items, 2)
	require.Equal(t, "c2", items[0].ID)
	require.Equal(t, "Asep", items[1].Name)
	require.False(t, s.Loading())
}

func TestFetchAllUsesConfiguredOrder(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Select", ctx, "clients", rowstore.SelectOptions{
		OrderBy:    "created_at",
		Descending: true,
	}).Return([]rowstore.Row{}, nil)

	s := newClientStore(remote)
	s.FetchAll(ctx)

	remote.AssertExpectations(t)
}

func TestFetchAllSwallowsErrorsAndKeepsItems(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Select", ctx, "clients", mock.Anything).Return([]rowstore.Row{
		{"id": "c1", "name": "Asep"},
	}, nil).Once()
	remote.On("Select", ctx, "clients", mock.Anything).
		Return(nil, rowstore.NewOpError("clients", "select", errors.New("network down"))).Once()

	s := newClientStore(remote)
	s.FetchAll(ctx)
	s.Refetch(ctx)

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, "c1", items[0].ID)
	require.False(t, s.Loading())
}

func TestStaleFetchResultIsDiscarded(t *testing.T) {
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})

	remote := &mocks.Store{}
	// first fetch stalls on the wire until released
	remote.On("Select", ctx, "clients", mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return([]rowstore.Row{{"id": "stale", "name": "Old"}}, nil).Once()
	remote.On("Select", ctx, "clients", mock.Anything).Return([]rowstore.Row{
		{"id": "fresh", "name": "New"},
	}, nil).Once()

	s := newClientStore(remote)

	done := make(chan struct{})
	go func() {
		s.FetchAll(ctx)
		close(done)
	}()
	<-started

	s.FetchAll(ctx)
	close(release)
	<-done

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, "fresh", items[0].ID)
}

func TestCreatePrependsServerEcho(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Select", ctx, "clients", mock.Anything).Return([]rowstore.Row{
		{"id": "c1", "name": "Asep"},
	}, nil).Once()
	remote.On("Insert", ctx, "clients", mock.MatchedBy(func(row rowstore.Row) bool {
		_, hasID := row["id"]
		return !hasID && row["name"] == "Bina" && row["updated_at"] != nil
	})).Return(rowstore.Row{
		"id":         "c2",
		"name":       "Bina",
		"created_at": "2026-01-01T00:00:00Z",
	}, nil)

	s := newClientStore(remote)
	s.FetchAll(ctx)

	created, err := s.Create(ctx, client.Client{Name: "Bina"})
	require.NoError(t, err)
	require.Equal(t, "c2", created.ID)

	items := s.Items()
	require.Len(t, items, 2)
	require.Equal(t, "c2", items[0].ID)
}

func TestCreateValidationFailureSkipsRemote(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	s := newClientStore(remote)

	_, err := s.Create(ctx, client.Client{})
	require.Error(t, err)
	remote.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	require.Empty(t, s.Items())
}

func TestCreateRemoteFailurePropagates(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Insert", ctx, "clients", mock.Anything).
		Return(nil, rowstore.NewOpError("clients", "insert", errors.New("boom")))

	s := newClientStore(remote)
	_, err := s.Create(ctx, client.Client{Name: "Bina"})
	require.Error(t, err)
	require.Empty(t, s.Items())
}

func TestUpdateReplacesMatchingItem(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Select", ctx, "clients", mock.Anything).Return([]rowstore.Row{
		{"id": "c1", "name": "Asep"},
		{"id": "c2", "name": "Bina"},
	}, nil).Once()
	remote.On("Update", ctx, "clients", "c2", mock.MatchedBy(func(row rowstore.Row) bool {
		return row["name"] == "Bina Putri" && row["updated_at"] != nil && len(row) == 2
	})).Return(rowstore.Row{"id": "c2", "name": "Bina Putri"}, nil)

	s := newClientStore(remote)
	s.FetchAll(ctx)

	updated, err := s.Update(ctx, "c2", patch(t, "name", "Bina Putri"))
	require.NoError(t, err)
	require.Equal(t, "Bina Putri", updated.Name)

	items := s.Items()
	require.Equal(t, "Asep", items[0].Name)
	require.Equal(t, "Bina Putri", items[1].Name)
}

func TestUpdateMissingRowSurfacesNotFound(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Update", ctx, "clients", "ghost", mock.Anything).
		Return(nil, rowstore.NewOpError("clients", "update", rowstore.ErrNotFound))

	s := newClientStore(remote)
	_, err := s.Update(ctx, "ghost", patch(t, "name", "X"))
	require.ErrorIs(t, err, rowstore.ErrNotFound)
}

func TestDeleteRemovesLocallyAfterRemote(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Select", ctx, "clients", mock.Anything).Return([]rowstore.Row{
		{"id": "c1", "name": "Asep"},
		{"id": "c2", "name": "Bina"},
	}, nil).Once()
	remote.On("Delete", ctx, "clients", "c1").Return(nil)

	s := newClientStore(remote)
	s.FetchAll(ctx)

	require.NoError(t, s.Delete(ctx, "c1"))
	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, "c2", items[0].ID)
}

func TestFetchIsAuthoritativeAfterDelete(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Delete", ctx, "clients", "c1").Return(nil)
	// a stale backend still returns the deleted row on the next fetch
	remote.On("Select", ctx, "clients", mock.Anything).Return([]rowstore.Row{
		{"id": "c1", "name": "Asep"},
	}, nil)

	s := newClientStore(remote)
	require.NoError(t, s.Delete(ctx, "c1"))
	s.FetchAll(ctx)

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, "c1", items[0].ID)
}

func TestDeleteRemoteFailureKeepsItems(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Select", ctx, "clients", mock.Anything).Return([]rowstore.Row{
		{"id": "c1", "name": "Asep"},
	}, nil).Once()
	remote.On("Delete", ctx, "clients", "c1").
		Return(rowstore.NewOpError("clients", "delete", errors.New("boom")))

	s := newClientStore(remote)
	s.FetchAll(ctx)

	require.Error(t, s.Delete(ctx, "c1"))
	require.Len(t, s.Items(), 1)
}
