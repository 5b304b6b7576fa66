// Package ranker scores each map head-to-head from two aligned map tables.
//
// The rating weights each team's winrate by a log-dampened play volume, then
// scales the difference by the combined volume:
//
//	rating = (W1·ln(1+P1) − W2·ln(1+P2)) · ln(1+P1+P2)
//
// A map barely played by either team cannot produce an extreme rating.
package ranker

import (
	"cmp"
	"math"
	"slices"

	"github.com/pable/go-cs-smartban/internal/model"
)

// Threshold is the absolute rating from which a map is highlighted.
const Threshold = 1.0

// Rating computes the head-to-head score of one map. Positive favors team 1.
func Rating(t1, t2 model.MapTableRow) float64 {
	return (t1.AvgWinrate*math.Log1p(t1.AvgPlayed) - t2.AvgWinrate*math.Log1p(t2.AvgPlayed)) *
		math.Log1p(t1.AvgPlayed+t2.AvgPlayed)
}

// Rate rates every map. Rows are paired by index; extra rows on either side
// are ignored.
func Rate(t1, t2 []model.MapTableRow) []model.MapRating {
	n := min(len(t1), len(t2))
	out := make([]model.MapRating, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.MapRating{
			Name:     t1[i].Name,
			IconPath: t1[i].IconPath,
			Rating:   Rating(t1[i], t2[i]),
		})
	}
	return out
}

// FavorsTeam1 returns maps rated at or above Threshold, best first.
func FavorsTeam1(ratings []model.MapRating) []model.MapRating {
	var out []model.MapRating
	for _, r := range ratings {
		if r.Rating >= Threshold {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b model.MapRating) int { return cmp.Compare(b.Rating, a.Rating) })
	return out
}

// FavorsTeam2 returns maps rated at or below -Threshold, most negative first.
func FavorsTeam2(ratings []model.MapRating) []model.MapRating {
	var out []model.MapRating
	for _, r := range ratings {
		if r.Rating <= -Threshold {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b model.MapRating) int { return cmp.Compare(a.Rating, b.Rating) })
	return out
}

// RecentlyPlayed returns the rows with any recent games, most recent first.
func RecentlyPlayed(rows []model.MapTableRow) []model.MapTableRow {
	var out []model.MapTableRow
	for _, r := range rows {
		if r.AvgRecentlyPlayed > 0 {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b model.MapTableRow) int {
		return cmp.Compare(b.AvgRecentlyPlayed, a.AvgRecentlyPlayed)
	})
	return out
}

// Highlight computes every highlight list for a comparison.
func Highlight(table model.MatchComparisonTable) model.Highlights {
	ratings := Rate(table[0].MapTable, table[1].MapTable)
	return model.Highlights{
		FavorsTeam1: FavorsTeam1(ratings),
		FavorsTeam2: FavorsTeam2(ratings),
		RecentTeam1: RecentlyPlayed(table[0].MapTable),
		RecentTeam2: RecentlyPlayed(table[1].MapTable),
	}
}

// PlayShare returns each row's fraction of the team's total average plays,
// the slice of the chart a map gets. All zero when nothing was played.
func PlayShare(rows []model.MapTableRow) []float64 {
	var total float64
	for _, r := range rows {
		total += r.AvgPlayed
	}
	out := make([]float64, len(rows))
	if total == 0 {
		return out
	}
	for i, r := range rows {
		out[i] = r.AvgPlayed / total
	}
	return out
}
