package model

import "time"

// MapDefinition describes one map from the active competitive pool.
type MapDefinition struct {
	Name     string
	GUID     string
	ImageURL string
	IconPath string
}

// KnownMaps is the reference map order. Chart positions and table indexes
// downstream are aligned to it, so never reorder it.
var KnownMaps = []MapDefinition{
	{Name: "Dust2", GUID: "de_dust2", ImageURL: "https://liquipedia.net/commons/images/thumb/1/12/Csgo_dust2.0.jpg/534px-Csgo_dust2.0.jpg", IconPath: "assets/collection_icon_de_dust2.png"},
	{Name: "Mirage", GUID: "de_mirage", ImageURL: "https://liquipedia.net/commons/images/thumb/f/f3/Csgo_mirage.jpg/534px-Csgo_mirage.jpg", IconPath: "assets/collection_icon_de_mirage.png"},
	{Name: "Nuke", GUID: "de_nuke", ImageURL: "https://liquipedia.net/commons/images/thumb/5/5e/Nuke_csgo.jpg/534px-Nuke_csgo.jpg", IconPath: "assets/collection_icon_de_nuke.png"},
	{Name: "Overpass", GUID: "de_overpass", ImageURL: "https://liquipedia.net/commons/images/thumb/0/0f/Csgo_overpass.jpg/534px-Csgo_overpass.jpg", IconPath: "assets/collection_icon_de_overpass.png"},
	{Name: "Train", GUID: "de_train", ImageURL: "https://liquipedia.net/commons/images/thumb/5/56/Train_csgo.jpg/534px-Train_csgo.jpg", IconPath: "assets/collection_icon_de_train.png"},
	{Name: "Inferno", GUID: "de_inferno", ImageURL: "https://liquipedia.net/commons/images/thumb/2/2b/De_new_inferno.jpg/534px-De_new_inferno.jpg", IconPath: "assets/collection_icon_de_inferno.png"},
	{Name: "Vertigo", GUID: "de_vertigo", ImageURL: "https://liquipedia.net/commons/images/thumb/5/59/Csgo_de_vertigo_new.jpg/534px-Csgo_de_vertigo_new.jpg", IconPath: "assets/collection_icon_de_vertigo.png"},
	{Name: "Ancient", GUID: "de_ancient", ImageURL: "https://liquipedia.net/commons/images/thumb/3/35/Csgo_ancient.jpeg/534px-Csgo_ancient.jpeg", IconPath: "assets/collection_icon_de_ancient.png"},
	{Name: "Anubis", GUID: "de_anubis", ImageURL: "https://liquipedia.net/commons/images/5/59/Anubis_csgo.jpg", IconPath: "assets/collection_icon_de_anubis.png"},
}

// ---- Roster and per-match inputs ----

// PlayerIdentity identifies a rostered player.
type PlayerIdentity struct {
	PlayerID string `json:"player_id"`
	Nickname string `json:"nickname"`
}

// PlayerRoundStats is one player's line in a match scoreboard. Invalid
// marks a line whose counts could not be read; its Kills and Deaths are zero.
type PlayerRoundStats struct {
	PlayerID string
	Kills    uint
	Deaths   uint
	Invalid  bool
}

// TeamRoundStats is one side of a match scoreboard.
type TeamRoundStats struct {
	TeamID  string
	Players []PlayerRoundStats
}

// Find returns the stats line for playerID, if the player was on this team.
func (t TeamRoundStats) Find(playerID string) (PlayerRoundStats, bool) {
	for _, p := range t.Players {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return PlayerRoundStats{}, false
}

// RoundStats is the normalized first-round record of a finished match.
// Exactly two teams: index 0 and index 1.
type RoundStats struct {
	MatchID    string
	FinishedAt int64 // epoch seconds, copied from the history item
	Map        string
	Winner     string // team id of the declared winner
	Teams      [2]TeamRoundStats
}

// ---- Aggregates ----

// MapStatCounter accumulates one player's results on one map.
type MapStatCounter struct {
	Played         uint
	RecentlyPlayed uint
	Won            uint
	TotalKills     uint
	TotalDeaths    uint
}

// PlayerAggregate holds a player's per-map counters keyed by map guid.
type PlayerAggregate struct {
	Identity PlayerIdentity
	MapStats map[string]*MapStatCounter
}

// NewPlayerAggregate returns an aggregate with an empty counter map.
func NewPlayerAggregate(id PlayerIdentity) PlayerAggregate {
	return PlayerAggregate{Identity: id, MapStats: make(map[string]*MapStatCounter)}
}

// Counter returns the counter for guid, creating a zero one on first use.
func (p *PlayerAggregate) Counter(guid string) *MapStatCounter {
	if p.MapStats == nil {
		p.MapStats = make(map[string]*MapStatCounter)
	}
	c, ok := p.MapStats[guid]
	if !ok {
		c = &MapStatCounter{}
		p.MapStats[guid] = c
	}
	return c
}

// FactionAggregate is one team's player aggregates in roster order.
type FactionAggregate []PlayerAggregate

// ---- Comparison output ----

// MapTableRow is one map's team-level averages. JSON names follow the
// layout the popup reads from storage.
type MapTableRow struct {
	Name              string  `json:"name"`
	ID                string  `json:"id"`
	ImageURL          string  `json:"img"`
	IconPath          string  `json:"icon"`
	AvgPlayed         float64 `json:"avgPlayed"`
	AvgWon            float64 `json:"avgWon"`
	AvgWinrate        float64 `json:"avgWinrate"`
	AvgRecentlyPlayed float64 `json:"avgRecentlyPlayed"`
	TotalKills        uint    `json:"totalKills"`
	TotalDeaths       uint    `json:"totalDeaths"`
	AvgKD             float64 `json:"avgKD"`
}

// TeamTable is one team's name and its map rows in KnownMaps order.
type TeamTable struct {
	TeamName string        `json:"name"`
	MapTable []MapTableRow `json:"mapTable"`
}

// MatchComparisonTable is the ordered pair (faction1, faction2).
type MatchComparisonTable [2]TeamTable

// StoredComparison is the persisted artifact for the latest processed match.
type StoredComparison struct {
	MatchID     string               `json:"matchId"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Teams       MatchComparisonTable `json:"teams"`
}

// MapRating is the head-to-head score of one map. Positive favors team 1.
type MapRating struct {
	Name     string
	IconPath string
	Rating   float64
}

// Highlights are the map lists shown next to the comparison.
type Highlights struct {
	FavorsTeam1 []MapRating
	FavorsTeam2 []MapRating
	RecentTeam1 []MapTableRow
	RecentTeam2 []MapTableRow
}
