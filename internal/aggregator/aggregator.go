package aggregator

import (
	"time"

	"github.com/pable/go-cs-smartban/internal/collector"
	"github.com/pable/go-cs-smartban/internal/model"
)

// DefaultRecentWindow is how far back a match still counts as recently played.
const DefaultRecentWindow = 4 * time.Hour

// RecentlyThreshold returns the epoch second after which a finished match
// counts as recent.
func RecentlyThreshold(now time.Time, window time.Duration) int64 {
	return now.Add(-window).Unix()
}

// ReducePlayer folds one player's settled history into per-map counters.
// Failed entries contribute nothing, not even to Played, and neither does a
// match whose scoreboard line for this player is invalid.
func ReducePlayer(h collector.PlayerHistory, recentlyThreshold int64) model.PlayerAggregate {
	agg := model.NewPlayerAggregate(h.Identity)

	for _, s := range h.Settled {
		if !s.OK() {
			continue
		}
		m := s.Stats

		// Team 0 first, then team 1. A player missing from both is treated
		// as team 1 for the win check and adds no kills or deaths.
		line, inTeam0 := m.Teams[0].Find(h.Identity.PlayerID)
		if !inTeam0 {
			line, _ = m.Teams[1].Find(h.Identity.PlayerID)
		}
		// An unreadable line of the player's own: the match does not count for them.
		if line.Invalid {
			continue
		}

		c := agg.Counter(m.Map)
		c.Played++
		if m.FinishedAt > recentlyThreshold {
			c.RecentlyPlayed++
		}
		c.TotalKills += line.Kills
		c.TotalDeaths += line.Deaths

		team0Won := m.Winner == m.Teams[0].TeamID
		if inTeam0 == team0Won {
			c.Won++
		}
	}
	return agg
}

// ReduceFaction reduces every roster slot, keeping roster order.
func ReduceFaction(histories []collector.PlayerHistory, recentlyThreshold int64) model.FactionAggregate {
	out := make(model.FactionAggregate, 0, len(histories))
	for _, h := range histories {
		out = append(out, ReducePlayer(h, recentlyThreshold))
	}
	return out
}
