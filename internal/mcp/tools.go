package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atelierhq/atelier/internal/domain/profile"
	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/domain/team"
	"github.com/atelierhq/atelier/internal/mapper"
	"github.com/atelierhq/atelier/internal/store"
)

type emptyInput struct{}

type createInput struct {
	Fields map[string]any `json:"fields" jsonschema:"entity fields keyed by camelCase name"`
}

type updateInput struct {
	ID     string         `json:"id" jsonschema:"entity id"`
	Fields map[string]any `json:"fields" jsonschema:"fields to change, keyed by camelCase name"`
}

type deleteInput struct {
	ID string `json:"id" jsonschema:"entity id"`
}

type listOutput[T any] struct {
	Items []T `json:"items"`
}

type itemOutput[T any] struct {
	Item T `json:"item"`
}

type statusOutput struct {
	Status string `json:"status"`
}

// registerTools wires every store and service into the tool catalog.
func registerTools(server *sdkmcp.Server, cfg Config) {
	addCollectionTools(server, "client", "clients", cfg.Stores.Clients)
	addCollectionTools(server, "project", "projects", cfg.Stores.Projects)
	addCollectionTools(server, "team_member", "team_members", cfg.Stores.TeamMembers)
	addCollectionTools(server, "package", "packages", cfg.Stores.Packages)
	addCollectionTools(server, "add_on", "add_ons", cfg.Stores.AddOns)
	addCollectionTools(server, "transaction", "transactions", cfg.Stores.Transactions)
	addCollectionTools(server, "promo_code", "promo_codes", cfg.Stores.PromoCodes)
	addCollectionTools(server, "asset", "assets", cfg.Stores.Assets)
	addCollectionTools(server, "lead", "leads", cfg.Stores.Leads)
	addCollectionTools(server, "contract", "contracts", cfg.Stores.Contracts)

	registerProjectTools(server, cfg.Services.Projects)
	registerTeamTools(server, cfg.Services.Team)
	registerProfileTools(server, cfg.Services.Profile)
}

// addCollectionTools registers list/create/update/delete for one entity
// table. Create and update take fields keyed by camelCase name, the same
// shape the entities serialize to.
func addCollectionTools[T store.Entity](server *sdkmcp.Server, singular, plural string, s *store.Store[T]) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_" + plural,
		Description: fmt.Sprintf("Fetch and list all %s", plural),
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, listOutput[T], error) {
		s.FetchAll(ctx)
		return nil, listOutput[T]{Items: s.Items()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_" + singular,
		Description: fmt.Sprintf("Create a new %s", singular),
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in createInput) (*sdkmcp.CallToolResult, itemOutput[T], error) {
		var item T
		if err := decodeFields(in.Fields, &item); err != nil {
			return nil, itemOutput[T]{}, err
		}
		created, err := s.Create(ctx, item)
		if err != nil {
			return nil, itemOutput[T]{}, err
		}
		return nil, itemOutput[T]{Item: created}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_" + singular,
		Description: fmt.Sprintf("Update fields of an existing %s", singular),
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in updateInput) (*sdkmcp.CallToolResult, itemOutput[T], error) {
		updated, err := s.Update(ctx, in.ID, patchFrom(in.Fields))
		if err != nil {
			return nil, itemOutput[T]{}, err
		}
		return nil, itemOutput[T]{Item: updated}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_" + singular,
		Description: fmt.Sprintf("Delete a %s by id", singular),
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in deleteInput) (*sdkmcp.CallToolResult, statusOutput, error) {
		if err := s.Delete(ctx, in.ID); err != nil {
			return nil, statusOutput{}, err
		}
		return nil, statusOutput{Status: "deleted"}, nil
	})
}

type addRevisionInput struct {
	ProjectID string         `json:"projectId" jsonschema:"owning project id"`
	Fields    map[string]any `json:"fields" jsonschema:"revision fields keyed by camelCase name"`
}

func registerProjectTools(server *sdkmcp.Server, svc *project.Service) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects_with_revisions",
		Description: "List all projects with their revisions embedded",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, listOutput[project.Project], error) {
		projects, err := svc.WithRevisions(ctx)
		if err != nil {
			return nil, listOutput[project.Project]{}, err
		}
		return nil, listOutput[project.Project]{Items: projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_revision",
		Description: "Add a revision to a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in addRevisionInput) (*sdkmcp.CallToolResult, itemOutput[project.Revision], error) {
		var rev project.Revision
		if err := decodeFields(in.Fields, &rev); err != nil {
			return nil, itemOutput[project.Revision]{}, err
		}
		created, err := svc.AddRevision(ctx, in.ProjectID, rev)
		if err != nil {
			return nil, itemOutput[project.Revision]{}, err
		}
		return nil, itemOutput[project.Revision]{Item: created}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_revision",
		Description: "Update fields of an existing revision",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in updateInput) (*sdkmcp.CallToolResult, statusOutput, error) {
		if err := svc.UpdateRevision(ctx, in.ID, patchFrom(in.Fields)); err != nil {
			return nil, statusOutput{}, err
		}
		return nil, statusOutput{Status: "updated"}, nil
	})
}

type addNoteInput struct {
	MemberID string         `json:"memberId" jsonschema:"owning team member id"`
	Fields   map[string]any `json:"fields" jsonschema:"note fields keyed by camelCase name"`
}

func registerTeamTools(server *sdkmcp.Server, svc *team.Service) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_team_members_with_notes",
		Description: "List all team members with their performance notes embedded",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, listOutput[team.Member], error) {
		members, err := svc.WithNotes(ctx)
		if err != nil {
			return nil, listOutput[team.Member]{}, err
		}
		return nil, listOutput[team.Member]{Items: members}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_performance_note",
		Description: "Add a performance note to a team member",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in addNoteInput) (*sdkmcp.CallToolResult, itemOutput[team.PerformanceNote], error) {
		var note team.PerformanceNote
		if err := decodeFields(in.Fields, &note); err != nil {
			return nil, itemOutput[team.PerformanceNote]{}, err
		}
		created, err := svc.AddNote(ctx, in.MemberID, note)
		if err != nil {
			return nil, itemOutput[team.PerformanceNote]{}, err
		}
		return nil, itemOutput[team.PerformanceNote]{Item: created}, nil
	})
}

type profileOutput struct {
	Profile *profile.Profile `json:"profile"`
}

func registerProfileTools(server *sdkmcp.Server, svc *profile.Service) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_profile",
		Description: "Fetch the studio profile and settings",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, profileOutput, error) {
		svc.Fetch(ctx)
		return nil, profileOutput{Profile: svc.Current()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_profile",
		Description: "Update studio profile fields, creating the profile if absent",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in createInput) (*sdkmcp.CallToolResult, profileOutput, error) {
		updated, err := svc.Update(ctx, patchFrom(in.Fields))
		if err != nil {
			return nil, profileOutput{}, err
		}
		return nil, profileOutput{Profile: updated}, nil
	})
}

// decodeFields fills an entity from loosely typed tool input through a
// JSON round trip, so the entity's own field tags apply.
func decodeFields(fields map[string]any, out any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding fields: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding fields: %w", err)
	}
	return nil
}

func patchFrom(fields map[string]any) *mapper.Patch {
	patch := mapper.NewPatch()
	for name, value := range fields {
		patch.Set(name, value)
	}
	return patch
}
