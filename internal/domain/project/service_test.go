package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/mapper"
	"github.com/atelierhq/atelier/internal/rowstore"
	"github.com/atelierhq/atelier/internal/rowstore/mocks"
)

func TestWithRevisionsMapsChildren(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Select", ctx, "projects", rowstore.SelectOptions{
		Embeds: []rowstore.Embed{{Table: "revisions", ForeignKey: "project_id"}},
	}).Return([]rowstore.Row{
		{
			"id":           "p1",
			"project_name": "Wedding A",
			"revisions": []rowstore.Row{
				{"id": "r1", "project_id": "p1", "admin_notes": "fix color", "status": "Pending"},
				{"id": "r2", "project_id": "p1", "status": "Completed"},
			},
		},
		{
			"id":           "p2",
			"project_name": "Wedding B",
			"revisions":    []rowstore.Row{},
		},
	}, nil)

	svc := project.NewService(remote, nil)
	projects, err := svc.WithRevisions(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	require.Equal(t, "p1", projects[0].ID)
	require.Len(t, projects[0].Revisions, 2)
	require.Equal(t, "fix color", projects[0].Revisions[0].AdminNotes)
	require.Equal(t, project.RevisionCompleted, projects[0].Revisions[1].Status)

	require.Empty(t, projects[1].Revisions)
	remote.AssertExpectations(t)
}

func TestWithRevisionsPropagatesFetchError(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Select", ctx, "projects", mock.Anything).
		Return(nil, rowstore.NewOpError("projects", "select", errors.New("down")))

	svc := project.NewService(remote, nil)
	_, err := svc.WithRevisions(ctx)
	require.Error(t, err)
}

func TestAddRevisionStampsOwner(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Insert", ctx, "revisions", mock.MatchedBy(func(row rowstore.Row) bool {
		return row["project_id"] == "p1" && row["admin_notes"] == "crop group shot"
	})).Return(rowstore.Row{
		"id":          "r9",
		"project_id":  "p1",
		"admin_notes": "crop group shot",
		"status":      "Pending",
	}, nil)

	svc := project.NewService(remote, nil)
	created, err := svc.AddRevision(ctx, "p1", project.Revision{
		AdminNotes: "crop group shot",
		Status:     project.RevisionPending,
	})
	require.NoError(t, err)
	require.Equal(t, "r9", created.ID)
	require.Equal(t, "p1", created.ProjectID)
}

func TestUpdateRevisionWritesPatch(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Update", ctx, "revisions", "r1", mock.MatchedBy(func(row rowstore.Row) bool {
		return row["status"] == "Completed" && row["updated_at"] != nil
	})).Return(rowstore.Row{"id": "r1", "status": "Completed"}, nil)

	svc := project.NewService(remote, nil)
	patch := mapper.NewPatch().Set("status", string(project.RevisionCompleted))
	require.NoError(t, svc.UpdateRevision(ctx, "r1", patch))
	remote.AssertExpectations(t)
}

func TestUpdateRevisionPropagatesError(t *testing.T) {
	ctx := context.Background()

	remote := &mocks.Store{}
	remote.On("Update", ctx, "revisions", "ghost", mock.Anything).
		Return(nil, rowstore.NewOpError("revisions", "update", rowstore.ErrNotFound))

	svc := project.NewService(remote, nil)
	err := svc.UpdateRevision(ctx, "ghost", mapper.NewPatch().Set("status", "Completed"))
	require.ErrorIs(t, err, rowstore.ErrNotFound)
}
