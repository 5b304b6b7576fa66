package collector

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pable/go-cs-smartban/internal/faceit"
	"github.com/pable/go-cs-smartban/internal/model"
)

// fakeAPI serves canned histories and scoreboards. Stats for a match id
// listed in delay are held back so later items finish first.
type fakeAPI struct {
	mu        sync.Mutex
	histories map[string][]faceit.MatchHistoryItem
	stats     map[string]*faceit.MatchStats
	delay     map[string]time.Duration
	calls     []string
	gotGame   string
	gotLimit  int
}

func (f *fakeAPI) GetMatchHistory(ctx context.Context, playerID, game string, offset, limit int) ([]faceit.MatchHistoryItem, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "history:"+playerID)
	f.gotGame, f.gotLimit = game, limit
	f.mu.Unlock()

	items, ok := f.histories[playerID]
	if !ok {
		return nil, &faceit.HTTPError{Method: "GET", Path: "/players/" + playerID + "/history", StatusCode: http.StatusInternalServerError}
	}
	return items, nil
}

func (f *fakeAPI) GetMatchStats(ctx context.Context, matchID string) (*faceit.MatchStats, error) {
	if d := f.delay[matchID]; d > 0 {
		time.Sleep(d)
	}
	f.mu.Lock()
	f.calls = append(f.calls, "stats:"+matchID)
	f.mu.Unlock()

	s, ok := f.stats[matchID]
	if !ok {
		return nil, errors.New("connection reset")
	}
	return s, nil
}

func scoreboard(mapName, winner string, team0, team1 []faceit.StatsPlayer) *faceit.MatchStats {
	r := faceit.StatsRound{Teams: []faceit.StatsTeam{
		{TeamID: "t0", Players: team0},
		{TeamID: "t1", Players: team1},
	}}
	r.RoundStats.Map = mapName
	r.RoundStats.Winner = winner
	return &faceit.MatchStats{Rounds: []faceit.StatsRound{r}}
}

func line(playerID, kills, deaths string) faceit.StatsPlayer {
	p := faceit.StatsPlayer{PlayerID: playerID}
	p.PlayerStats.Kills = kills
	p.PlayerStats.Deaths = deaths
	return p
}

func TestCollectPreservesHistoryOrder(t *testing.T) {
	api := &fakeAPI{
		histories: map[string][]faceit.MatchHistoryItem{
			"a": {{MatchID: "m1", FinishedAt: 300}, {MatchID: "m2", FinishedAt: 200}, {MatchID: "m3", FinishedAt: 100}},
		},
		stats: map[string]*faceit.MatchStats{
			"m1": scoreboard("de_dust2", "t0", []faceit.StatsPlayer{line("a", "1", "1")}, nil),
			"m2": scoreboard("de_mirage", "t0", []faceit.StatsPlayer{line("a", "2", "2")}, nil),
			"m3": scoreboard("de_nuke", "t0", []faceit.StatsPlayer{line("a", "3", "3")}, nil),
		},
		delay: map[string]time.Duration{"m1": 30 * time.Millisecond, "m2": 10 * time.Millisecond},
	}
	c := New(api, Options{}, zap.NewNop())

	got := c.Collect(context.Background(), []model.PlayerIdentity{{PlayerID: "a", Nickname: "alice"}})
	require.Len(t, got, 1)
	require.Len(t, got[0].Settled, 3)

	wantMaps := []string{"de_dust2", "de_mirage", "de_nuke"}
	wantFinished := []int64{300, 200, 100}
	for i, s := range got[0].Settled {
		require.True(t, s.OK(), "item %d: %v", i, s.Err)
		assert.Equal(t, wantMaps[i], s.Stats.Map)
		assert.Equal(t, wantFinished[i], s.Stats.FinishedAt)
	}

	assert.Equal(t, DefaultGame, api.gotGame)
	assert.Equal(t, DefaultHistoryLimit, api.gotLimit)
}

func TestCollectIsolatesFailures(t *testing.T) {
	api := &fakeAPI{
		histories: map[string][]faceit.MatchHistoryItem{
			"a": {{MatchID: "ok", FinishedAt: 10}, {MatchID: "missing", FinishedAt: 20}, {MatchID: "broken", FinishedAt: 30}},
			// "b" has no history: the fake answers HTTP 500.
		},
		stats: map[string]*faceit.MatchStats{
			"ok":     scoreboard("de_inferno", "t0", []faceit.StatsPlayer{line("a", "20", "10")}, nil),
			"broken": {},
		},
	}
	c := New(api, Options{Game: "cs2", HistoryLimit: 5}, zap.NewNop())

	got := c.Collect(context.Background(), []model.PlayerIdentity{{PlayerID: "a"}, {PlayerID: "b"}})
	require.Len(t, got, 2)

	a := got[0]
	assert.NoError(t, a.HistoryErr)
	assert.Equal(t, 1, a.Succeeded())
	assert.True(t, a.Settled[0].OK())
	assert.Error(t, a.Settled[1].Err)
	var missing *faceit.MissingDataError
	assert.True(t, errors.As(a.Settled[2].Err, &missing))

	b := got[1]
	assert.Equal(t, "b", b.Identity.PlayerID)
	var httpErr *faceit.HTTPError
	require.True(t, errors.As(b.HistoryErr, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Empty(t, b.Settled)

	assert.Equal(t, "cs2", api.gotGame)
	assert.Equal(t, 5, api.gotLimit)
}

func TestCollectEmptyRoster(t *testing.T) {
	api := &fakeAPI{}
	got := New(api, Options{}, nil).Collect(context.Background(), nil)
	assert.Empty(t, got)
	assert.Empty(t, api.calls)
}
