// Package mcpserver exposes the GM engine as MCP tools for agent callers
// such as the narrative generator.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/scenario"
	"github.com/omarshaarawi/gmsim/internal/service"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

const (
	serverName    = "gmsim"
	serverVersion = "1.0.0"
)

type SimulateSeasonArgs struct {
	SessionID  string `json:"session_id" jsonschema:"Caller session id; the same id reproduces the same season"`
	Sport      string `json:"sport" jsonschema:"League key: nfl, nba, nhl or mlb"`
	TeamKey    string `json:"team_key" jsonschema:"Team key, abbreviation or name, e.g. chicago-bears"`
	SeasonYear int    `json:"season_year,omitempty" jsonschema:"Season year, defaults to the current year"`
}

type GradeTradeArgs struct {
	SessionID  string         `json:"session_id" jsonschema:"Session the trade belongs to"`
	Sport      string         `json:"sport" jsonschema:"League key"`
	TeamKey    string         `json:"team_key" jsonschema:"The user's team"`
	PartnerKey string         `json:"partner_key,omitempty" jsonschema:"Trade partner team"`
	Given      []models.Asset `json:"given" jsonschema:"Assets the user's team sends away"`
	Received   []models.Asset `json:"received" jsonschema:"Assets the user's team gets back"`
}

type WhatIfArgs struct {
	TradeID       string  `json:"trade_id" jsonschema:"Id returned by grade_trade"`
	ScenarioType  string  `json:"scenario_type" jsonschema:"player_improvement, player_decline, injury_impact or age_progression"`
	ChangePercent float64 `json:"change_percent,omitempty" jsonschema:"Percent change; share of season missed for injury_impact"`
	Years         int     `json:"years,omitempty" jsonschema:"Years to age for age_progression (default 1)"`
	PlayerID      string  `json:"player_id,omitempty" jsonschema:"Asset to change; defaults to the best received asset"`
}

type MonteCarloArgs struct {
	TradeID     string `json:"trade_id" jsonschema:"Id returned by grade_trade"`
	Simulations int    `json:"simulations,omitempty" jsonschema:"Number of trials (default 1000)"`
	SessionID   string `json:"session_id,omitempty" jsonschema:"Seed session; defaults to the trade's session"`
}

type LeagueConfigArgs struct {
	Sport string `json:"sport,omitempty" jsonschema:"League key; all leagues when empty"`
}

// New registers every GM tool on a fresh MCP server.
func New(svc *service.GMService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "simulate_season",
		Description: "Simulate a full season with and without the session's trades and return standings, playoffs and the GM score",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args SimulateSeasonArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(svc.SimulateSeason(ctx, service.SeasonRequest{
			SessionID:  args.SessionID,
			Sport:      args.Sport,
			TeamKey:    args.TeamKey,
			SeasonYear: args.SeasonYear,
		}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "grade_trade",
		Description: "Grade a trade on the 0-60 quality scale and store it for later simulations",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args GradeTradeArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(svc.SubmitTrade(ctx, service.TradeRequest{
			SessionID:  args.SessionID,
			Sport:      args.Sport,
			TeamKey:    args.TeamKey,
			PartnerKey: args.PartnerKey,
			Given:      args.Given,
			Received:   args.Received,
		}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "what_if",
		Description: "Re-grade a stored trade after changing one player's value",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args WhatIfArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(svc.RunScenario(ctx, service.ScenarioRequest{
			TradeID:      args.TradeID,
			ScenarioType: args.ScenarioType,
			Parameters: scenario.Params{
				ChangePercent: args.ChangePercent,
				Years:         args.Years,
				PlayerID:      args.PlayerID,
			},
		}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "monte_carlo",
		Description: "Project the outcome distribution and bust/success risk of a stored trade",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args MonteCarloArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(svc.RunMonteCarlo(ctx, service.MonteCarloRequest{
			TradeID:     args.TradeID,
			Simulations: args.Simulations,
			SessionID:   args.SessionID,
		}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "league_config",
		Description: "Season and playoff format for one league or all of them",
	}, func(_ context.Context, _ *mcp.CallToolRequest, args LeagueConfigArgs) (*mcp.CallToolResult, any, error) {
		if args.Sport == "" {
			return toolJSON(svc.LeagueConfigs(), nil)
		}
		cfg, err := svc.LeagueConfig(args.Sport)
		return toolJSON([]league.Config{cfg}, err)
	})

	return server
}

// Handler serves the tools over streamable HTTP with JSON responses.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func toolJSON[T any](v T, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	msg := err.Error()
	switch simerr.CodeOf(err) {
	case "", simerr.CodeInvariant:
		slog.Error("MCP tool failed", "error", err)
		msg = "internal error"
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %s", msg)}},
	}
}
