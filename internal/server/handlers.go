package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/service"
)

type seasonResponse struct {
	Success bool `json:"success"`
	models.SeasonResult
}

type tradeResponse struct {
	Success bool `json:"success"`
	service.TradeReceipt
}

type scenarioResponse struct {
	Success bool `json:"success"`
	models.ScenarioResult
}

type simulationResponse struct {
	Success bool `json:"success"`
	models.SimulationResult
}

type leaguesResponse struct {
	Success bool            `json:"success"`
	Leagues []league.Config `json:"leagues"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	sports := make([]league.Sport, 0, 4)
	for _, c := range s.svc.LeagueConfigs() {
		sports = append(sports, c.Sport)
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sports": sports})
}

func (s *Server) listLeagues(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, leaguesResponse{Success: true, Leagues: s.svc.LeagueConfigs()})
}

func (s *Server) getLeague(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.svc.LeagueConfig(mux.Vars(r)["sport"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "league": cfg})
}

func (s *Server) simulateSeason(w http.ResponseWriter, r *http.Request) {
	var req service.SeasonRequest
	if err := decode(r, w, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.svc.SimulateSeason(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seasonResponse{Success: true, SeasonResult: res})
}

func (s *Server) submitTrade(w http.ResponseWriter, r *http.Request) {
	var req service.TradeRequest
	if err := decode(r, w, &req); err != nil {
		writeError(w, err)
		return
	}
	receipt, err := s.svc.SubmitTrade(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tradeResponse{Success: true, TradeReceipt: receipt})
}

func (s *Server) getTrade(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.GetTrade(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trade": t})
}

func (s *Server) whatIf(w http.ResponseWriter, r *http.Request) {
	var req service.ScenarioRequest
	if err := decode(r, w, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.svc.RunScenario(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scenarioResponse{Success: true, ScenarioResult: res})
}

func (s *Server) monteCarlo(w http.ResponseWriter, r *http.Request) {
	var req service.MonteCarloRequest
	if err := decode(r, w, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.svc.RunMonteCarlo(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, simulationResponse{Success: true, SimulationResult: res})
}
