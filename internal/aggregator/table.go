package aggregator

import (
	"math"

	"github.com/pable/go-cs-smartban/internal/model"
)

// Round2 rounds half-up to two decimal places.
func Round2(x float64) float64 {
	return math.Floor(100*x+0.5) / 100
}

// BuildMapTable averages a faction's counters per map, one row per entry of
// maps and in the same order. Maps the faction played that are not in maps
// are ignored.
func BuildMapTable(maps []model.MapDefinition, faction model.FactionAggregate) []model.MapTableRow {
	size := float64(len(faction))
	rows := make([]model.MapTableRow, 0, len(maps))

	for _, m := range maps {
		var played, won, recent, kills, deaths uint
		for _, p := range faction {
			c, ok := p.MapStats[m.GUID]
			if !ok {
				continue
			}
			played += c.Played
			won += c.Won
			recent += c.RecentlyPlayed
			kills += c.TotalKills
			deaths += c.TotalDeaths
		}

		row := model.MapTableRow{
			Name:        m.Name,
			ID:          m.GUID,
			ImageURL:    m.ImageURL,
			IconPath:    m.IconPath,
			TotalKills:  kills,
			TotalDeaths: deaths,
		}
		if size > 0 {
			row.AvgPlayed = float64(played) / size
			row.AvgWon = float64(won) / size
			row.AvgRecentlyPlayed = float64(recent) / size
		}
		if row.AvgPlayed > 0 {
			row.AvgWinrate = Round2(row.AvgWon / row.AvgPlayed)
		}
		if deaths > 0 {
			row.AvgKD = Round2(float64(kills) / float64(deaths))
		}
		rows = append(rows, row)
	}
	return rows
}
