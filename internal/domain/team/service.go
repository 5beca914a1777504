package team

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/atelierhq/atelier/internal/mapper"
	"github.com/atelierhq/atelier/internal/rowstore"
)

// Service fetches members joined with their performance notes and
// writes notes on a member's behalf.
type Service struct {
	remote rowstore.Store
	logger *slog.Logger
}

// NewService creates a team join service.
func NewService(remote rowstore.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{remote: remote, logger: logger}
}

// WithNotes fetches every member together with their performance notes
// in a single backend call. Members without notes get an empty slice.
func (s *Service) WithNotes(ctx context.Context) ([]Member, error) {
	rows, err := s.remote.Select(ctx, Table, rowstore.SelectOptions{
		Embeds: []rowstore.Embed{{Table: NoteTable, ForeignKey: "team_member_id"}},
	})
	if err != nil {
		s.logger.Error("fetching members with notes failed", "error", err)
		return nil, err
	}

	members := make([]Member, 0, len(rows))
	for _, row := range rows {
		var member Member
		if err := mapper.FromRow(row, &member); err != nil {
			return nil, fmt.Errorf("mapping member: %w", err)
		}
		children, _ := row[NoteTable].([]rowstore.Row)
		for _, child := range children {
			var note PerformanceNote
			if err := mapper.FromRow(child, &note); err != nil {
				return nil, fmt.Errorf("mapping performance note: %w", err)
			}
			member.PerformanceNotes = append(member.PerformanceNotes, note)
		}
		members = append(members, member)
	}
	return members, nil
}

// AddNote inserts a performance note owned by the given member and
// returns the server's echo.
func (s *Service) AddNote(ctx context.Context, memberID string, note PerformanceNote) (PerformanceNote, error) {
	row, err := mapper.ToRow(note, time.Now())
	if err != nil {
		return PerformanceNote{}, err
	}
	row["team_member_id"] = memberID

	created, err := s.remote.Insert(ctx, NoteTable, row)
	if err != nil {
		s.logger.Error("adding performance note failed", "member_id", memberID, "error", err)
		return PerformanceNote{}, err
	}

	var out PerformanceNote
	if err := mapper.FromRow(created, &out); err != nil {
		return PerformanceNote{}, err
	}
	return out, nil
}
