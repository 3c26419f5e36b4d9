package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/omarshaarawi/gmsim/internal/api/strength"
	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/montecarlo"
	"github.com/omarshaarawi/gmsim/internal/repository/memory"
	"github.com/omarshaarawi/gmsim/internal/service"
)

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	reg, err := league.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry: %v", err)
	}
	svc := service.NewGMService(reg, strength.Static{}, memory.NewRepository(), montecarlo.NewProjector(montecarlo.DefaultConfig()), 1000)

	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := New(svc).Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func call(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T", res.Content[0])
	}
	return tc.Text
}

func TestToolsListed(t *testing.T) {
	cs := connect(t)
	list, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	want := map[string]bool{"simulate_season": true, "grade_trade": true, "what_if": true, "monte_carlo": true, "league_config": true}
	for _, tool := range list.Tools {
		delete(want, tool.Name)
	}
	if len(want) != 0 {
		t.Fatalf("missing tools: %v", want)
	}
}

func TestGradeThenProject(t *testing.T) {
	cs := connect(t)
	res := call(t, cs, "grade_trade", map[string]any{
		"session_id": "mcp",
		"sport":      "nhl",
		"team_key":   "blackhawks",
		"given":      []map[string]any{{"id": "d1", "name": "Depth D", "kind": "player", "position": "D", "value": 40}},
		"received":   []map[string]any{{"id": "c1", "name": "Top Center", "kind": "player", "position": "C", "value": 82}},
	})
	if res.IsError {
		t.Fatalf("grade_trade: %s", text(t, res))
	}
	var receipt service.TradeReceipt
	if err := json.Unmarshal([]byte(text(t, res)), &receipt); err != nil {
		t.Fatalf("decode receipt: %v", err)
	}
	if receipt.Trade.TeamKey != "chicago-blackhawks" || receipt.Grade.TradeQualityScore <= 30 {
		t.Fatalf("receipt = %+v", receipt)
	}

	res = call(t, cs, "monte_carlo", map[string]any{"trade_id": receipt.Trade.ID, "simulations": 500})
	if res.IsError {
		t.Fatalf("monte_carlo: %s", text(t, res))
	}
	var sim struct {
		SimulationsRun int `json:"simulations_run"`
	}
	if err := json.Unmarshal([]byte(text(t, res)), &sim); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sim.SimulationsRun != 500 {
		t.Fatalf("simulations_run = %d", sim.SimulationsRun)
	}

	res = call(t, cs, "what_if", map[string]any{"trade_id": receipt.Trade.ID, "scenario_type": "injury_impact", "change_percent": 50})
	if res.IsError {
		t.Fatalf("what_if: %s", text(t, res))
	}
}

func TestToolErrors(t *testing.T) {
	cs := connect(t)
	res := call(t, cs, "simulate_season", map[string]any{"session_id": "s", "sport": "cricket", "team_key": "x"})
	if !res.IsError || !strings.Contains(text(t, res), "unsupported sport") {
		t.Fatalf("result = %+v", res)
	}

	res = call(t, cs, "league_config", map[string]any{"sport": "nba"})
	if res.IsError {
		t.Fatalf("league_config: %s", text(t, res))
	}
	var cfgs []league.Config
	if err := json.Unmarshal([]byte(text(t, res)), &cfgs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cfgs) != 1 || cfgs[0].GamesPerSeason != 82 {
		t.Fatalf("configs = %+v", cfgs)
	}
}
