package playoff

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/season"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

func seasonStandings(t *testing.T, cfg league.Config, user int, seed uint64) (models.Standings, map[string]float64) {
	t.Helper()
	n := cfg.ExpectedTeamCount
	teams := make([]models.TeamStrength, n)
	keys := make([]string, n)
	ratings := make([]float64, n)
	byKey := make(map[string]float64, n)
	for i := 0; i < n; i++ {
		teams[i] = models.TeamStrength{
			Key:        fmt.Sprintf("team-%02d", i),
			Conference: cfg.ConferenceNames[i%2],
			Rating:     1350 + float64(i*9),
		}
		keys[i] = teams[i].Key
		ratings[i] = teams[i].Rating
		byKey[keys[i]] = ratings[i]
	}
	sched, err := season.GenerateSchedule(cfg, keys, rand.New(rand.NewPCG(seed, 1)))
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	res, err := season.Simulate(context.Background(), cfg, sched, teams, ratings, user, rand.New(rand.NewPCG(seed, 2)))
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	st, err := res.Standings()
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	return st, byKey
}

func mustConfig(t *testing.T, sport league.Sport) league.Config {
	t.Helper()
	reg, err := league.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry: %v", err)
	}
	cfg, err := reg.ConfigFor(string(sport))
	if err != nil {
		t.Fatalf("ConfigFor(%s): %v", sport, err)
	}
	return cfg
}

func TestSimulateBracketShape(t *testing.T) {
	for _, cfg := range league.DefaultConfigs() {
		t.Run(string(cfg.Sport), func(t *testing.T) {
			st, ratings := seasonStandings(t, cfg, 0, 42)
			br, err := Simulate(context.Background(), cfg, st, ratings, rand.New(rand.NewPCG(42, 3)))
			if err != nil {
				t.Fatalf("Simulate: %v", err)
			}

			wantRounds := 2*cfg.ConferenceRounds() + 1
			if len(br.Rounds) != wantRounds {
				t.Fatalf("rounds = %d, want %d", len(br.Rounds), wantRounds)
			}
			first := br.Rounds[0]
			if len(first.Byes) != cfg.TopSeedByes {
				t.Fatalf("first round byes = %d, want %d", len(first.Byes), cfg.TopSeedByes)
			}
			if want := (cfg.PlayoffTeamsPerLeague - cfg.TopSeedByes) / 2; len(first.Series) != want {
				t.Fatalf("first round series = %d, want %d", len(first.Series), want)
			}
			for _, r := range br.Rounds {
				if r.Name != cfg.RoundNames[r.Round-1] {
					t.Fatalf("round %d named %q", r.Round, r.Name)
				}
				for _, s := range r.Series {
					need := cfg.WinsToTakeSeries()
					if s.HighSeedWins != need && s.LowSeedWins != need {
						t.Fatalf("series %s-%s ended %d-%d, need %d", s.HighSeed, s.LowSeed, s.HighSeedWins, s.LowSeedWins, need)
					}
					if s.HighSeedWins+s.LowSeedWins > cfg.SeriesLength {
						t.Fatalf("series %s-%s ran past %d games", s.HighSeed, s.LowSeed, cfg.SeriesLength)
					}
					if s.HighSeedRank >= s.LowSeedRank && r.Round <= cfg.ConferenceRounds() {
						t.Fatalf("series pairs seed %d as favourite over seed %d", s.HighSeedRank, s.LowSeedRank)
					}
				}
			}
			final := br.Rounds[len(br.Rounds)-1]
			if len(final.Series) != 1 || final.Series[0].Winner != br.Champion {
				t.Fatalf("final does not produce the champion: %+v", final)
			}
		})
	}
}

func TestNFLTopSeedHasBye(t *testing.T) {
	cfg := mustConfig(t, league.NFL)
	st, ratings := seasonStandings(t, cfg, 0, 7)
	br, err := Simulate(context.Background(), cfg, st, ratings, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	for _, r := range br.Rounds {
		if r.Round != 1 {
			continue
		}
		if len(r.Byes) != 1 {
			t.Fatalf("%s wild card byes = %v", r.Conference, r.Byes)
		}
		var conf []models.TeamSeasonRecord
		if r.Conference == st.Conference1Name {
			conf = st.Conference1
		} else {
			conf = st.Conference2
		}
		if r.Byes[0] != conf[0].TeamID {
			t.Fatalf("bye went to %s, want top seed %s", r.Byes[0], conf[0].TeamID)
		}
		for _, s := range r.Series {
			if s.HighSeed == conf[0].TeamID || s.LowSeed == conf[0].TeamID {
				t.Fatalf("top seed played in the wild card round")
			}
		}
	}
}

func TestUserTeamResultConsistent(t *testing.T) {
	cfg := mustConfig(t, league.NBA)
	for user := 0; user < cfg.ExpectedTeamCount; user += 3 {
		st, ratings := seasonStandings(t, cfg, user, uint64(user)+100)
		br, err := Simulate(context.Background(), cfg, st, ratings, rand.New(rand.NewPCG(uint64(user), 9)))
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}
		ur := br.UserTeamResult
		rec, _ := st.UserTeam()
		if ur.TeamID != rec.TeamID {
			t.Fatalf("user result for %s, want %s", ur.TeamID, rec.TeamID)
		}
		final := cfg.ConferenceRounds() + 1
		switch {
		case !ur.Qualified:
			if ur.RoundReached != 0 || ur.Champion {
				t.Fatalf("non-qualifier has %+v", ur)
			}
		case ur.Champion:
			if br.Champion != rec.TeamID || ur.RoundReached != final+1 {
				t.Fatalf("champion result inconsistent: %+v", ur)
			}
		default:
			if ur.RoundReached < 1 || ur.RoundReached > final || ur.EliminatedBy == "" {
				t.Fatalf("eliminated result inconsistent: %+v", ur)
			}
		}
		if ur.Description == "" {
			t.Fatal("empty description")
		}
	}
}

func TestSimulateIsReproducible(t *testing.T) {
	cfg := mustConfig(t, league.MLB)
	st, ratings := seasonStandings(t, cfg, 4, 11)
	a, _ := Simulate(context.Background(), cfg, st, ratings, rand.New(rand.NewPCG(5, 5)))
	b, _ := Simulate(context.Background(), cfg, st, ratings, rand.New(rand.NewPCG(5, 5)))
	if a.Champion != b.Champion || a.UserTeamResult != b.UserTeamResult {
		t.Fatalf("same seed gave different brackets: %s vs %s", a.Champion, b.Champion)
	}
}

func TestSimulateCancelled(t *testing.T) {
	cfg := mustConfig(t, league.NHL)
	st, ratings := seasonStandings(t, cfg, 0, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Simulate(ctx, cfg, st, ratings, rand.New(rand.NewPCG(1, 1))); !errors.Is(err, simerr.ErrCancelled) {
		t.Fatalf("expected cancelled, got %v", err)
	}
}

func TestSimulateMissingRating(t *testing.T) {
	cfg := mustConfig(t, league.NFL)
	st, ratings := seasonStandings(t, cfg, 0, 3)
	delete(ratings, st.Conference1[0].TeamID)
	if _, err := Simulate(context.Background(), cfg, st, ratings, rand.New(rand.NewPCG(1, 1))); !errors.Is(err, simerr.ErrInvariant) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}

func TestOrdinal(t *testing.T) {
	for n, want := range map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 21: "21st"} {
		if got := ordinal(n); got != want {
			t.Errorf("ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
