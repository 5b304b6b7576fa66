// Package collector fetches the recent match history of every player in a
// roster, together with the scoreboard of each historical match.
//
// Every fetch runs in its own goroutine. A failed fetch is logged and
// recorded on its own result; it never cancels siblings and never fails the
// roster as a whole.
package collector

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-cs-smartban/internal/faceit"
	"github.com/pable/go-cs-smartban/internal/model"
)

// Defaults mirror what the room page asks the API for.
const (
	DefaultGame         = "csgo"
	DefaultHistoryLimit = 20
)

// API is the subset of the FACEIT client the collector needs.
type API interface {
	GetMatchHistory(ctx context.Context, playerID, game string, offset, limit int) ([]faceit.MatchHistoryItem, error)
	GetMatchStats(ctx context.Context, matchID string) (*faceit.MatchStats, error)
}

// Options tune the history request.
type Options struct {
	Game         string
	HistoryLimit int
}

// SettledMatch is the outcome of fetching one historical match.
// Exactly one of Stats and Err is set.
type SettledMatch struct {
	MatchID    string
	FinishedAt int64
	Stats      *model.RoundStats
	Err        error
}

// OK reports whether the scoreboard was fetched and decoded.
func (s SettledMatch) OK() bool { return s.Err == nil && s.Stats != nil }

// PlayerHistory is one roster slot's collected history. Settled[i] belongs to
// the i-th history item returned by the API, whatever order the fetches
// completed in.
type PlayerHistory struct {
	Identity   model.PlayerIdentity
	HistoryErr error
	Settled    []SettledMatch
}

// Succeeded counts the matches whose scoreboard is usable.
func (h PlayerHistory) Succeeded() int {
	n := 0
	for _, s := range h.Settled {
		if s.OK() {
			n++
		}
	}
	return n
}

// Collector fans out history and scoreboard fetches for a roster.
type Collector struct {
	api    API
	opts   Options
	logger *zap.Logger
}

// New returns a Collector. Zero options fall back to the defaults.
func New(api API, opts Options, logger *zap.Logger) *Collector {
	if opts.Game == "" {
		opts.Game = DefaultGame
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{api: api, opts: opts, logger: logger}
}

// Collect returns one PlayerHistory per roster entry, in roster order.
func (c *Collector) Collect(ctx context.Context, roster []model.PlayerIdentity) []PlayerHistory {
	out := make([]PlayerHistory, len(roster))

	var g errgroup.Group
	for i, player := range roster {
		i, player := i, player
		out[i].Identity = player
		g.Go(func() error {
			out[i] = c.collectPlayer(ctx, player)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (c *Collector) collectPlayer(ctx context.Context, player model.PlayerIdentity) PlayerHistory {
	h := PlayerHistory{Identity: player}

	items, err := c.api.GetMatchHistory(ctx, player.PlayerID, c.opts.Game, 0, c.opts.HistoryLimit)
	if err != nil {
		c.logger.Warn("could not fetch match history",
			zap.String("player_id", player.PlayerID),
			zap.String("nickname", player.Nickname),
			zap.Error(err))
		h.HistoryErr = err
		return h
	}

	h.Settled = make([]SettledMatch, len(items))

	var g errgroup.Group
	for i, item := range items {
		i, item := i, item
		h.Settled[i] = SettledMatch{MatchID: item.MatchID, FinishedAt: item.FinishedAt}
		g.Go(func() error {
			h.Settled[i] = c.fetchStats(ctx, player, item)
			return nil
		})
	}
	_ = g.Wait()

	return h
}

func (c *Collector) fetchStats(ctx context.Context, player model.PlayerIdentity, item faceit.MatchHistoryItem) SettledMatch {
	settled := SettledMatch{MatchID: item.MatchID, FinishedAt: item.FinishedAt}

	raw, err := c.api.GetMatchStats(ctx, item.MatchID)
	if err == nil {
		var rs model.RoundStats
		rs, err = raw.Normalize(item.MatchID, item.FinishedAt)
		if err == nil {
			settled.Stats = &rs
			return settled
		}
	}

	c.logger.Warn("could not fetch match stats",
		zap.String("match_id", item.MatchID),
		zap.String("player_id", player.PlayerID),
		zap.String("nickname", player.Nickname),
		zap.Error(err))
	settled.Err = err
	return settled
}
