package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cs-smartban/internal/config"
	"github.com/pable/go-cs-smartban/internal/model"
	"github.com/pable/go-cs-smartban/internal/storage"
)

// fakeFaceit serves one room with one player per faction; player "a" has a
// single recent Dust2 win.
func fakeFaceit(t *testing.T, matchCalls *int32) *httptest.Server {
	t.Helper()
	finished := time.Now().Add(-time.Hour).Unix()
	mux := http.NewServeMux()
	mux.HandleFunc("/matches/1-room", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(matchCalls, 1)
		_, _ = w.Write([]byte(`{"match_id":"1-room","teams":{
			"faction1":{"name":"team_a","roster":[{"player_id":"a","nickname":"alice"}]},
			"faction2":{"name":"team_b","roster":[{"player_id":"b","nickname":"bob"}]}}}`))
	})
	mux.HandleFunc("/players/a/history", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"match_id":"h1","finished_at":` + strconv.FormatInt(finished, 10) + `}]}`))
	})
	mux.HandleFunc("/players/b/history", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	mux.HandleFunc("/matches/h1/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rounds":[{"round_stats":{"Map":"de_dust2","Winner":"t0"},"teams":[
			{"team_id":"t0","players":[{"player_id":"a","player_stats":{"Kills":"20","Deaths":"10"}}]},
			{"team_id":"t1","players":[]}]}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestWatchStoresComparison(t *testing.T) {
	var calls int32
	srv := fakeFaceit(t, &calls)

	cfg = &config.Config{APIKey: "k", BaseURL: srv.URL, HistoryGame: "csgo", HistoryLimit: 20, RecentWindow: 4 * time.Hour}
	dbPath = filepath.Join(t.TempDir(), "smartban.db")

	input := strings.Join([]string{
		"https://www.faceit.com/en/csgo/room/1-room",
		"https://www.faceit.com/en/csgo/room/1-room/scoreboard",
		"https://www.faceit.com/en/csgo/room/1-room/scoreboard",
		"https://www.faceit.com/en/players/someone",
	}, "\n")
	watchCmd.SetIn(strings.NewReader(input))
	watchCmd.SetContext(context.Background())
	require.NoError(t, runWatch(watchCmd, nil))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	db, err := storage.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	c, err := db.LoadComparison(context.Background(), storage.ComparisonKey)
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, "1-room", c.MatchID)
	assert.Equal(t, "team_a", c.Teams[0].TeamName)
	d := c.Teams[0].MapTable[0]
	assert.Equal(t, "de_dust2", d.ID)
	assert.Equal(t, 1.0, d.AvgPlayed)
	assert.Equal(t, 1.0, d.AvgWinrate)
	assert.Equal(t, 1.0, d.AvgRecentlyPlayed)
	assert.Equal(t, 2.0, d.AvgKD)
	for _, r := range c.Teams[1].MapTable {
		assert.Zero(t, r.AvgPlayed)
	}
}

func TestNewPipelineRequiresKey(t *testing.T) {
	cfg = &config.Config{}
	_, err := newPipeline(nil)
	assert.ErrorIs(t, err, config.ErrNoAPIKey)
}

func TestMapIndex(t *testing.T) {
	rows := make([]model.MapTableRow, len(model.KnownMaps))
	for i, m := range model.KnownMaps {
		rows[i] = model.MapTableRow{Name: m.Name, ID: m.GUID}
	}
	assert.Equal(t, 1, mapIndex(rows, "mirage"))
	assert.Equal(t, 8, mapIndex(rows, "DE_ANUBIS"))
	assert.Equal(t, -1, mapIndex(rows, "de_cache"))
}
