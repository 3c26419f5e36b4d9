package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

type teamsResponse struct {
	Sport  string     `json:"sport"`
	Season int        `json:"season"`
	Teams  []teamWire `json:"teams"`
}

type teamWire struct {
	Key          string  `json:"key"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	Conference   string  `json:"conference"`
	Elo          float64 `json:"elo"`
	Record       struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
	} `json:"record"`
}

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// LeagueTeams fetches ratings for every team in a league season. Any
// transport, status or decoding failure is reported as provider_unavailable;
// nothing is retried.
func (a *API) LeagueTeams(ctx context.Context, sport league.Sport, seasonYear int) ([]models.TeamStrength, error) {
	endpoint := fmt.Sprintf("/leagues/%s/seasons/%d/teams", sport, seasonYear)

	var resp teamsResponse
	if err := a.client.Get(ctx, endpoint, nil, &resp); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return nil, simerr.FromContext(ctxErr)
		}
		return nil, simerr.Wrap(simerr.CodeProviderUnavailable, "fetching league teams", err)
	}

	teams := make([]models.TeamStrength, 0, len(resp.Teams))
	for _, t := range resp.Teams {
		if t.Key == "" || t.Conference == "" {
			return nil, simerr.Newf(simerr.CodeProviderUnavailable, "ratings service returned a team without key or conference")
		}
		teams = append(teams, models.TeamStrength{
			Key:          t.Key,
			Name:         t.Name,
			Abbreviation: t.Abbreviation,
			Conference:   t.Conference,
			Rating:       t.Elo,
			Wins:         t.Record.Wins,
			Losses:       t.Record.Losses,
		})
	}
	return teams, nil
}
