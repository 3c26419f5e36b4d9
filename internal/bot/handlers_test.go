package bot

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/gmsim/internal/api/strength"
	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/montecarlo"
	"github.com/omarshaarawi/gmsim/internal/repository/memory"
	"github.com/omarshaarawi/gmsim/internal/service"
)

func command(text string) tgbotapi.Update {
	cmdLen := len(text)
	if i := strings.Index(text, " "); i >= 0 {
		cmdLen = i
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 42},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}}
}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	reg, err := league.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry: %v", err)
	}
	return NewHandler(service.NewGMService(reg, strength.Static{}, memory.NewRepository(), montecarlo.NewProjector(montecarlo.DefaultConfig()), 1000))
}

func TestHandleCommand(t *testing.T) {
	h := newHandler(t)
	tests := []struct {
		text string
		want string
	}{
		{"/help", "/simulate"},
		{"/leagues", "*NFL*: 32 teams, 17 games"},
		{"/simulate", "Usage: /simulate"},
		{"/simulate bears 2026", "Chicago Bears finish"},
		{"/simulate white sox", "Chicago White Sox finish"},
		{"/simulate nba celtics 2026", "Boston Celtics finish"},
		{"/simulate packers", "Please name the sport"},
		{"/montecarlo", "Usage: /montecarlo"},
		{"/montecarlo abc -5", "positive number"},
		{"/montecarlo missing-trade", "Error running projection"},
		{"/bogus", "Unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			msg := h.HandleCommand(context.Background(), command(tt.text))
			if msg.ChatID != 42 {
				t.Fatalf("chat id = %d", msg.ChatID)
			}
			if !strings.Contains(msg.Text, tt.want) {
				t.Fatalf("reply %q does not contain %q", msg.Text, tt.want)
			}
		})
	}
}

func TestMonteCarloCommand(t *testing.T) {
	h := newHandler(t)
	receipt, err := h.gm.SubmitTrade(context.Background(), service.TradeRequest{
		SessionID: "bot",
		Sport:     "mlb",
		TeamKey:   "cubs",
		Received:  []models.Asset{{ID: "sp", Name: "Ace", Kind: "player", Position: "SP", Value: 80}},
	})
	if err != nil {
		t.Fatalf("SubmitTrade: %v", err)
	}
	msg := h.HandleCommand(context.Background(), command("/montecarlo "+receipt.Trade.ID+" 300"))
	if !strings.Contains(msg.Text, "(300 runs)") {
		t.Fatalf("reply = %q", msg.Text)
	}
}

func TestChicagoSport(t *testing.T) {
	tests := map[string]league.Sport{
		"bears":       league.NFL,
		"Blackhawks":  league.NHL,
		"white sox":   league.MLB,
		"chicago-cub": league.MLB,
	}
	for q, want := range tests {
		if got, ok := chicagoSport(q); !ok || got != want {
			t.Errorf("chicagoSport(%q) = %q, %v", q, got, ok)
		}
	}
	if _, ok := chicagoSport("packers"); ok {
		t.Error("packers resolved to a Chicago team")
	}
}
