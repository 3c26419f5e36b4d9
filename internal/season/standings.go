package season

import (
	"sort"

	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

// Standings ranks each conference and marks playoff seeds.
//
// Teams are ordered by win percentage. Teams level on win percentage are
// separated by (1) their win percentage in games among the tied group,
// (2) point differential, (3) team key.
func (r *Result) Standings() (models.Standings, error) {
	names := r.Config.ConferenceNames
	var conf [2][]int
	for i, t := range r.Teams {
		switch t.Conference {
		case names[0]:
			conf[0] = append(conf[0], i)
		case names[1]:
			conf[1] = append(conf[1], i)
		default:
			return models.Standings{}, simerr.Invariantf("team %q is in unknown conference %q", t.Key, t.Conference)
		}
	}

	out := models.Standings{Conference1Name: names[0], Conference2Name: names[1]}
	for c := 0; c < 2; c++ {
		ranked := r.rank(conf[c])
		records := make([]models.TeamSeasonRecord, len(ranked))
		for pos, i := range ranked {
			rec := r.Records[i]
			if pos < r.Config.PlayoffTeamsPerLeague {
				rec.Seed = pos + 1
			}
			records[pos] = rec
		}
		if c == 0 {
			out.Conference1 = records
		} else {
			out.Conference2 = records
		}
	}
	return out, nil
}

// fraction compares win rates without floating point.
type fraction struct{ num, den int }

func (a fraction) less(b fraction) bool { return a.num*b.den < b.num*a.den }
func (a fraction) equal(b fraction) bool { return a.num*b.den == b.num*a.den }

func (r *Result) winRate(i int) fraction {
	rec := r.Records[i]
	gp := rec.GamesPlayed()
	if gp == 0 {
		return fraction{1, 2}
	}
	return fraction{2*rec.Wins + rec.Ties, 2 * gp}
}

func (r *Result) rank(indexes []int) []int {
	ranked := append([]int(nil), indexes...)
	sort.SliceStable(ranked, func(a, b int) bool {
		ra, rb := r.winRate(ranked[a]), r.winRate(ranked[b])
		if !ra.equal(rb) {
			return rb.less(ra)
		}
		return r.Teams[ranked[a]].Key < r.Teams[ranked[b]].Key
	})

	for start := 0; start < len(ranked); {
		end := start + 1
		for end < len(ranked) && r.winRate(ranked[end]).equal(r.winRate(ranked[start])) {
			end++
		}
		if end-start > 1 {
			r.breakTie(ranked[start:end])
		}
		start = end
	}
	return ranked
}

func (r *Result) breakTie(group []int) {
	h2h := make(map[int]fraction, len(group))
	for _, i := range group {
		var won, played int
		for _, j := range group {
			if i == j {
				continue
			}
			won += r.HeadToHead[i][j]
			played += r.HeadToHead[i][j] + r.HeadToHead[j][i]
		}
		if played == 0 {
			h2h[i] = fraction{1, 2}
		} else {
			h2h[i] = fraction{won, played}
		}
	}

	sort.SliceStable(group, func(a, b int) bool {
		ia, ib := group[a], group[b]
		if !h2h[ia].equal(h2h[ib]) {
			return h2h[ib].less(h2h[ia])
		}
		da, db := r.Records[ia].PointDifferential, r.Records[ib].PointDifferential
		if da != db {
			return da > db
		}
		return r.Teams[ia].Key < r.Teams[ib].Key
	})
}
