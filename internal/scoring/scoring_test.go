package scoring

import (
	"errors"
	"testing"

	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

func TestWinImprovement(t *testing.T) {
	tests := []struct {
		delta, games, want int
	}{
		{-3, 17, 0},
		{0, 82, 0},
		{1, 17, 10},
		{3, 17, 25},
		{10, 17, 25},
		{6, 82, 12},
		{25, 162, 25},
	}
	for _, tt := range tests {
		if got := WinImprovement(tt.delta, tt.games); got != tt.want {
			t.Errorf("WinImprovement(%d, %d) = %d, want %d", tt.delta, tt.games, got, tt.want)
		}
	}
}

func TestWinImprovementMonotonic(t *testing.T) {
	prev := 0
	for d := -10; d <= 40; d++ {
		got := WinImprovement(d, 82)
		if got < prev {
			t.Fatalf("WinImprovement dropped at delta %d: %d < %d", d, got, prev)
		}
		prev = got
	}
}

func TestPlayoffBonus(t *testing.T) {
	tests := []struct {
		base, mod, want int
	}{
		{0, 0, 0},
		{2, 1, 0},
		{0, 1, 5},
		{1, 3, 10},
		{0, 5, 15},
	}
	for _, tt := range tests {
		if got := PlayoffBonus(tt.base, tt.mod); got != tt.want {
			t.Errorf("PlayoffBonus(%d, %d) = %d, want %d", tt.base, tt.mod, got, tt.want)
		}
	}
}

func TestChampionshipBonus(t *testing.T) {
	if ChampionshipBonus(false, true) != MaxChampionshipBonus {
		t.Fatal("new title should earn the bonus")
	}
	if ChampionshipBonus(true, true) != 0 || ChampionshipBonus(false, false) != 0 || ChampionshipBonus(true, false) != 0 {
		t.Fatal("bonus awarded without a new title")
	}
}

func TestComposeSumsAndBounds(t *testing.T) {
	for tq := -5; tq <= 65; tq += 5 {
		for delta := -5; delta <= 20; delta += 5 {
			in := Input{
				TradeQualityScore: tq,
				GamesPerSeason:    17,
				Baseline:          models.RecordLine{Wins: 8, Losses: 9},
				Modified:          models.RecordLine{Wins: 8 + delta, Losses: 9 - delta},
				BaselinePlayoffs:  models.UserTeamResult{RoundReached: 0},
				ModifiedPlayoffs:  models.UserTeamResult{RoundReached: 5, Champion: true},
			}
			total, b, err := Compose(in)
			if err != nil {
				t.Fatalf("Compose: %v", err)
			}
			if total < 0 || total > MaxGMScore {
				t.Fatalf("gmScore %d out of range", total)
			}
			if b.Total() != total {
				t.Fatalf("components sum %d != %d", b.Total(), total)
			}
		}
	}
}

func TestComposeMaximum(t *testing.T) {
	total, _, err := Compose(Input{
		TradeQualityScore: 60,
		GamesPerSeason:    82,
		Baseline:          models.RecordLine{Wins: 30},
		Modified:          models.RecordLine{Wins: 60},
		ModifiedPlayoffs:  models.UserTeamResult{RoundReached: 5, Champion: true},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if total != MaxGMScore {
		t.Fatalf("gmScore = %d, want %d", total, MaxGMScore)
	}
}

func TestCheckRejectsMismatch(t *testing.T) {
	b := models.ScoreBreakdown{TradeQualityScore: 30, WinImprovementScore: 10}
	if err := Check(41, b); !errors.Is(err, simerr.ErrInvariant) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
	if err := Check(40, models.ScoreBreakdown{TradeQualityScore: 30, ChampionshipBonus: 10}); !errors.Is(err, simerr.ErrInvariant) {
		t.Fatalf("expected invariant violation for partial title bonus, got %v", err)
	}
	if err := Check(40, b); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestComposeRejectsBadGames(t *testing.T) {
	if _, _, err := Compose(Input{}); !errors.Is(err, simerr.ErrInvariant) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}
