package ratings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omarshaarawi/gmsim/internal/api/strength"
	"github.com/omarshaarawi/gmsim/internal/config"
	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

var _ strength.Provider = (*API)(nil)

func TestLeagueTeams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leagues/nfl/seasons/2026/teams" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sport":"nfl","season":2026,"teams":[
			{"key":"chicago-bears","name":"Chicago Bears","abbreviation":"CHI","conference":"NFC","elo":1512.5,"record":{"wins":10,"losses":7}},
			{"key":"green-bay-packers","name":"Green Bay Packers","abbreviation":"GB","conference":"NFC","elo":1580}
		]}`))
	}))
	defer srv.Close()

	api := NewAPI(NewClient(config.RatingsAPI{BaseURL: srv.URL + "/", APIKey: "secret"}))
	teams, err := api.LeagueTeams(context.Background(), league.NFL, 2026)
	if err != nil {
		t.Fatalf("LeagueTeams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("got %d teams", len(teams))
	}
	bears := teams[0]
	if bears.Key != "chicago-bears" || bears.Rating != 1512.5 || bears.Wins != 10 || bears.Conference != "NFC" {
		t.Fatalf("bears = %+v", bears)
	}
}

func TestLeagueTeamsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	api := NewAPI(NewClient(config.RatingsAPI{BaseURL: srv.URL}))
	if _, err := api.LeagueTeams(context.Background(), league.NBA, 2026); !errors.Is(err, simerr.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}

func TestLeagueTeamsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	api := NewAPI(NewClient(config.RatingsAPI{BaseURL: url}))
	if _, err := api.LeagueTeams(context.Background(), league.NHL, 2026); !errors.Is(err, simerr.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}

func TestLeagueTeamsRejectsIncompleteTeams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"teams":[{"key":"chicago-cubs"}]}`))
	}))
	defer srv.Close()

	api := NewAPI(NewClient(config.RatingsAPI{BaseURL: srv.URL}))
	if _, err := api.LeagueTeams(context.Background(), league.MLB, 2026); !errors.Is(err, simerr.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}

func TestLeagueTeamsCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	api := NewAPI(NewClient(config.RatingsAPI{BaseURL: srv.URL}))
	if _, err := api.LeagueTeams(ctx, league.NFL, 2026); !errors.Is(err, simerr.ErrCancelled) {
		t.Fatalf("expected cancelled, got %v", err)
	}
}
