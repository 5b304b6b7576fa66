package faceit

import (
	"strconv"
	"strings"

	"github.com/pable/go-cs-smartban/internal/model"
)

// RosterPlayer is one entry of a faction roster.
type RosterPlayer struct {
	PlayerID string `json:"player_id"`
	Nickname string `json:"nickname"`
}

// Faction holds the fields we need from teams.factionN.
type Faction struct {
	Name   string         `json:"name"`
	Roster []RosterPlayer `json:"roster"`
}

// Identities returns the roster as pipeline identities, in roster order.
func (f *Faction) Identities() []model.PlayerIdentity {
	out := make([]model.PlayerIdentity, 0, len(f.Roster))
	for _, p := range f.Roster {
		out = append(out, model.PlayerIdentity{PlayerID: p.PlayerID, Nickname: p.Nickname})
	}
	return out
}

// MatchDetail holds the fields we need from /matches/{id}.
type MatchDetail struct {
	MatchID string `json:"match_id"`
	Teams   struct {
		Faction1 *Faction `json:"faction1"`
		Faction2 *Faction `json:"faction2"`
	} `json:"teams"`
}

// Factions returns faction1 and faction2, failing when either is absent.
func (m *MatchDetail) Factions() ([2]*Faction, error) {
	if m.Teams.Faction1 == nil {
		return [2]*Faction{}, &MissingDataError{Field: "teams.faction1"}
	}
	if m.Teams.Faction2 == nil {
		return [2]*Faction{}, &MissingDataError{Field: "teams.faction2"}
	}
	return [2]*Faction{m.Teams.Faction1, m.Teams.Faction2}, nil
}

// MatchHistoryItem is one entry from /players/{id}/history.
type MatchHistoryItem struct {
	MatchID    string `json:"match_id"`
	FinishedAt int64  `json:"finished_at"`
}

// StatsPlayer is a scoreboard line. The API encodes numbers as strings.
type StatsPlayer struct {
	PlayerID    string `json:"player_id"`
	PlayerStats struct {
		Kills  string `json:"Kills"`
		Deaths string `json:"Deaths"`
	} `json:"player_stats"`
}

// StatsTeam is one side of a scoreboard.
type StatsTeam struct {
	TeamID  string        `json:"team_id"`
	Players []StatsPlayer `json:"players"`
}

// StatsRound is one entry of /matches/{id}/stats rounds.
type StatsRound struct {
	RoundStats struct {
		Map    string `json:"Map"`
		Winner string `json:"Winner"`
	} `json:"round_stats"`
	Teams []StatsTeam `json:"teams"`
}

// MatchStats holds the fields we need from /matches/{id}/stats.
type MatchStats struct {
	Rounds []StatsRound `json:"rounds"`
}

// FirstRound returns rounds[0], the only round a best-of-one match has.
func (s *MatchStats) FirstRound() (*StatsRound, error) {
	if len(s.Rounds) == 0 {
		return nil, &MissingDataError{Field: "rounds[0]"}
	}
	return &s.Rounds[0], nil
}

// Normalize converts the raw scoreboard into a two-team RoundStats record.
// A line whose counts do not parse is kept with Invalid set, so it only
// affects the player it belongs to.
func (s *MatchStats) Normalize(matchID string, finishedAt int64) (model.RoundStats, error) {
	round, err := s.FirstRound()
	if err != nil {
		return model.RoundStats{}, err
	}
	if round.RoundStats.Map == "" {
		return model.RoundStats{}, &MissingDataError{Field: "rounds[0].round_stats.Map"}
	}
	if len(round.Teams) < 2 {
		return model.RoundStats{}, &MissingDataError{Field: "rounds[0].teams[1]"}
	}

	out := model.RoundStats{
		MatchID:    matchID,
		FinishedAt: finishedAt,
		Map:        round.RoundStats.Map,
		Winner:     round.RoundStats.Winner,
	}
	for i := 0; i < 2; i++ {
		team := round.Teams[i]
		out.Teams[i].TeamID = team.TeamID
		for _, p := range team.Players {
			line := model.PlayerRoundStats{PlayerID: p.PlayerID}
			kills, errK := parseCount(p.PlayerStats.Kills)
			deaths, errD := parseCount(p.PlayerStats.Deaths)
			if errK != nil || errD != nil {
				line.Invalid = true
			} else {
				line.Kills, line.Deaths = kills, deaths
			}
			out.Teams[i].Players = append(out.Teams[i].Players, line)
		}
	}
	return out, nil
}

func parseCount(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}
