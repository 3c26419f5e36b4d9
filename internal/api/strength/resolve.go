package strength

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

// Minimum normalized Levenshtein similarity for a typo-tolerant match.
// Hyphenated queries look like team keys and must be nearly exact.
const (
	similarityThreshold    = 0.7
	keySimilarityThreshold = 0.9
)

// ResolveTeam finds the index of the team named by query.
//
// Matching runs in stages and stops at the first stage with a hit: exact
// key or abbreviation, substring of a key or name, fuzzy subsequence match
// ranked by distance, then edit-distance similarity. Several equally good
// hits within a stage are a validation error. A key that belongs to a team
// of another league never falls through to the fuzzy stages.
func ResolveTeam(teams []models.TeamStrength, query string) (int, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return -1, simerr.Validationf("teamKey is required")
	}

	for i, t := range teams {
		if t.Key == q || strings.ToLower(t.Abbreviation) == q {
			return i, nil
		}
	}

	if isForeignKey(q) {
		return -1, simerr.Newf(simerr.CodeTeamNotFound, "team %q not found", query)
	}

	threshold := similarityThreshold
	if strings.Contains(q, "-") && !strings.Contains(q, " ") {
		threshold = keySimilarityThreshold
	}

	spaced := strings.ReplaceAll(q, "-", " ")
	var hits []int
	for i, t := range teams {
		if strings.Contains(strings.ReplaceAll(t.Key, "-", " "), spaced) || strings.Contains(strings.ToLower(t.Name), spaced) {
			hits = append(hits, i)
		}
	}
	if len(hits) > 0 {
		return pick(teams, query, hits)
	}

	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	if ranks := fuzzy.RankFindNormalizedFold(spaced, names); len(ranks) > 0 {
		sort.Sort(ranks)
		hits = hits[:0]
		for _, r := range ranks {
			if r.Distance == ranks[0].Distance {
				hits = append(hits, r.OriginalIndex)
			}
		}
		return pick(teams, query, hits)
	}

	best, bestScore, tie := -1, 0.0, false
	for i, t := range teams {
		for _, candidate := range []string{t.Key, strings.ToLower(t.Name)} {
			distance := fuzzy.LevenshteinDistance(q, candidate)
			maxLen := float64(max(len(q), len(candidate)))
			similarity := 1 - float64(distance)/maxLen
			if similarity <= threshold {
				continue
			}
			switch {
			case similarity > bestScore:
				best, bestScore, tie = i, similarity, false
			case similarity == bestScore && best != i:
				tie = true
			}
		}
	}
	if best < 0 {
		return -1, simerr.Newf(simerr.CodeTeamNotFound, "team %q not found", query)
	}
	if tie {
		return -1, simerr.Validationf("team %q is ambiguous", query)
	}
	return best, nil
}

func pick(teams []models.TeamStrength, query string, hits []int) (int, error) {
	if len(hits) == 1 {
		return hits[0], nil
	}
	keys := make([]string, len(hits))
	for i, h := range hits {
		keys[i] = teams[h].Key
	}
	sort.Strings(keys)
	return -1, simerr.Validationf("team %q is ambiguous: %s", query, strings.Join(keys, ", "))
}

var knownKeys = func() map[string]bool {
	keys := make(map[string]bool)
	for _, teams := range bundledTeams {
		for _, t := range teams {
			keys[t.Key] = true
		}
	}
	for k := range league.ChicagoTeams {
		keys[k] = true
	}
	return keys
}()

// isForeignKey reports whether q is the key of a team in some league. It is
// only consulted after the exact stage missed, so a hit means another league.
func isForeignKey(q string) bool {
	return knownKeys[q]
}
