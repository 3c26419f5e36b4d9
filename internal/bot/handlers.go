package bot

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/service"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

const helpText = "Available commands:\n" +
	"/leagues - Season and playoff format per league\n" +
	"/simulate [sport] <team> [year] - Simulate a season for a team\n" +
	"/montecarlo <trade_id> [simulations] - Project a stored trade"

type Handler struct {
	gm *service.GMService
}

func NewHandler(gm *service.GMService) *Handler {
	return &Handler{gm: gm}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.Fields(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to the GM simulator! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "leagues":
		h.handleLeagues(&msg)
	case "simulate":
		h.handleSimulate(ctx, &msg, args)
	case "montecarlo":
		h.handleMonteCarlo(ctx, &msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleLeagues(msg *tgbotapi.MessageConfig) {
	var sb strings.Builder
	sb.WriteString("🏟 *Leagues*\n\n")
	for _, c := range h.gm.LeagueConfigs() {
		sb.WriteString(fmt.Sprintf("*%s*: %d teams, %d games\n", strings.ToUpper(string(c.Sport)), c.ExpectedTeamCount, c.GamesPerSeason))
		sb.WriteString(fmt.Sprintf("   %s / %s, %d playoff teams each, best of %d\n\n", c.ConferenceNames[0], c.ConferenceNames[1], c.PlayoffTeamsPerLeague, c.SeriesLength))
	}
	msg.Text = sb.String()
}

func (h *Handler) handleSimulate(ctx context.Context, msg *tgbotapi.MessageConfig, args []string) {
	if len(args) == 0 {
		msg.Text = "Please provide a team. Usage: /simulate [sport] <team> [year]"
		return
	}

	req := service.SeasonRequest{SessionID: uuid.NewString()}
	if _, err := h.gm.LeagueConfig(args[0]); err == nil && len(args) > 1 {
		req.Sport = args[0]
		args = args[1:]
	}
	if n := len(args); n > 1 {
		if year, err := strconv.Atoi(args[n-1]); err == nil {
			req.SeasonYear = year
			args = args[:n-1]
		}
	}
	req.TeamKey = strings.Join(args, " ")
	if req.Sport == "" {
		sport, ok := chicagoSport(req.TeamKey)
		if !ok {
			msg.Text = "Please name the sport for non-Chicago teams. Usage: /simulate nfl <team> [year]"
			return
		}
		req.Sport = string(sport)
	}

	res, err := h.gm.SimulateSeason(ctx, req)
	if err != nil {
		msg.Text = fmt.Sprintf("Error simulating season: %s", userMessage(err))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *%s*\n\n", res.SeasonSummary.Headline))
	sb.WriteString(res.SeasonSummary.Narrative + "\n\n")
	for _, m := range res.SeasonSummary.KeyMoments {
		sb.WriteString("• " + m + "\n")
	}
	b := res.ScoreBreakdown
	sb.WriteString(fmt.Sprintf("\nTrade %d + Wins %d + Playoffs %d + Title %d = *%d*\n",
		b.TradeQualityScore, b.WinImprovementScore, b.PlayoffBonusScore, b.ChampionshipBonus, res.GMScore))
	msg.Text = sb.String()
}

func (h *Handler) handleMonteCarlo(ctx context.Context, msg *tgbotapi.MessageConfig, args []string) {
	if len(args) == 0 {
		msg.Text = "Please provide a trade id. Usage: /montecarlo <trade_id> [simulations]"
		return
	}
	req := service.MonteCarloRequest{TradeID: args[0]}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			msg.Text = "Simulations must be a positive number."
			return
		}
		req.Simulations = n
	}

	res, err := h.gm.RunMonteCarlo(ctx, req)
	if err != nil {
		msg.Text = fmt.Sprintf("Error running projection: %s", userMessage(err))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎲 *Trade projection* (%d runs)\n\n", res.SimulationsRun))
	sb.WriteString(fmt.Sprintf("Mean %.1f, median %.1f, std dev %.1f\n", res.MeanOutcome, res.MedianOutcome, res.StdDeviation))
	p := res.Percentiles
	sb.WriteString(fmt.Sprintf("P10 %.1f | P25 %.1f | P50 %.1f | P75 %.1f | P90 %.1f\n", p.P10, p.P25, p.P50, p.P75, p.P90))
	sb.WriteString(fmt.Sprintf("Bust %.1f%% | Success %.1f%%\n", 100*res.RiskAnalysis.BustProbability, 100*res.RiskAnalysis.SuccessProbability))
	msg.Text = sb.String()
}

// chicagoSport finds the league of a Chicago franchise named by query.
func chicagoSport(query string) (league.Sport, bool) {
	q := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(query)), " ", "-")
	if q == "" {
		return "", false
	}
	keys := make([]string, 0, len(league.ChicagoTeams))
	for k := range league.ChicagoTeams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(k, q) {
			return league.ChicagoTeams[k], true
		}
	}
	return "", false
}

func userMessage(err error) string {
	switch simerr.CodeOf(err) {
	case "", simerr.CodeInvariant:
		return "internal error"
	}
	return err.Error()
}
