// Package mcp exposes the entity stores and join services as MCP tools.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atelierhq/atelier/internal/domain/asset"
	"github.com/atelierhq/atelier/internal/domain/catalog"
	"github.com/atelierhq/atelier/internal/domain/client"
	"github.com/atelierhq/atelier/internal/domain/contract"
	"github.com/atelierhq/atelier/internal/domain/finance"
	"github.com/atelierhq/atelier/internal/domain/lead"
	"github.com/atelierhq/atelier/internal/domain/profile"
	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/domain/team"
	"github.com/atelierhq/atelier/internal/store"
)

// Stores contains the per-table entity stores exposed over MCP.
type Stores struct {
	Clients      *store.Store[client.Client]
	Projects     *store.Store[project.Project]
	TeamMembers  *store.Store[team.Member]
	Packages     *store.Store[catalog.Package]
	AddOns       *store.Store[catalog.AddOn]
	Transactions *store.Store[finance.Transaction]
	PromoCodes   *store.Store[finance.PromoCode]
	Assets       *store.Store[asset.Asset]
	Leads        *store.Store[lead.Lead]
	Contracts    *store.Store[contract.Contract]
}

// Services contains the join and singleton services exposed over MCP.
type Services struct {
	Projects *project.Service
	Team     *team.Service
	Profile  *profile.Service
}

// Config contains server configuration.
type Config struct {
	Stores   Stores
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "atelier",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Logger: cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg)

	return server
}
