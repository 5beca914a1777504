package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/atelierhq/atelier/internal/mapper"
	"github.com/atelierhq/atelier/internal/rowstore"
)

// Service provides the relational reads and child writes that go beyond
// plain table CRUD: projects joined with their owned revisions.
type Service struct {
	remote rowstore.Store
	logger *slog.Logger
}

// NewService creates a project join service.
func NewService(remote rowstore.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{remote: remote, logger: logger}
}

// WithRevisions fetches every project together with its revisions in a
// single backend call. Projects without revisions get an empty slice.
func (s *Service) WithRevisions(ctx context.Context) ([]Project, error) {
	rows, err := s.remote.Select(ctx, Table, rowstore.SelectOptions{
		Embeds: []rowstore.Embed{{Table: RevisionTable, ForeignKey: "project_id"}},
	})
	if err != nil {
		s.logger.Error("fetching projects with revisions failed", "error", err)
		return nil, err
	}

	projects := make([]Project, 0, len(rows))
	for _, row := range rows {
		var proj Project
		if err := mapper.FromRow(row, &proj); err != nil {
			return nil, fmt.Errorf("mapping project: %w", err)
		}
		children, _ := row[RevisionTable].([]rowstore.Row)
		for _, child := range children {
			var rev Revision
			if err := mapper.FromRow(child, &rev); err != nil {
				return nil, fmt.Errorf("mapping revision: %w", err)
			}
			proj.Revisions = append(proj.Revisions, rev)
		}
		projects = append(projects, proj)
	}
	return projects, nil
}

// AddRevision inserts a revision owned by the given project and returns
// the server's echo. The caller reconciles any in-memory project it
// holds; the stores are not updated here.
func (s *Service) AddRevision(ctx context.Context, projectID string, rev Revision) (Revision, error) {
	row, err := mapper.ToRow(rev, time.Now())
	if err != nil {
		return Revision{}, err
	}
	row["project_id"] = projectID

	created, err := s.remote.Insert(ctx, RevisionTable, row)
	if err != nil {
		s.logger.Error("adding revision failed", "project_id", projectID, "error", err)
		return Revision{}, err
	}

	var out Revision
	if err := mapper.FromRow(created, &out); err != nil {
		return Revision{}, err
	}
	return out, nil
}

// UpdateRevision writes only the fields present in the patch. It does
// not return the updated entity; callers refetch if they need it.
func (s *Service) UpdateRevision(ctx context.Context, revisionID string, patch *mapper.Patch) error {
	if _, err := s.remote.Update(ctx, RevisionTable, revisionID, patch.Row(time.Now())); err != nil {
		s.logger.Error("updating revision failed", "revision_id", revisionID, "error", err)
		return err
	}
	return nil
}
