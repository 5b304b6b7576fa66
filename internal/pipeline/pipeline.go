// Package pipeline turns a match identifier into a stored two-team map
// comparison: roster lookup, history collection, reduction and table build.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-cs-smartban/internal/aggregator"
	"github.com/pable/go-cs-smartban/internal/collector"
	"github.com/pable/go-cs-smartban/internal/faceit"
	"github.com/pable/go-cs-smartban/internal/model"
	"github.com/pable/go-cs-smartban/internal/storage"
)

// MatchAPI is everything the pipeline fetches from FACEIT.
type MatchAPI interface {
	collector.API
	GetMatch(ctx context.Context, matchID string) (*faceit.MatchDetail, error)
}

// Store receives the finished comparison.
type Store interface {
	SaveComparison(ctx context.Context, key string, c model.StoredComparison) error
}

// Config tunes a Pipeline. Zero values fall back to defaults.
type Config struct {
	Game         string
	HistoryLimit int
	RecentWindow time.Duration
	Maps         []model.MapDefinition
	StoreKey     string
}

// Pipeline runs the match comparison end to end.
type Pipeline struct {
	api       MatchAPI
	collector *collector.Collector
	store     Store
	cfg       Config
	now       func() time.Time
	logger    *zap.Logger
}

// New builds a Pipeline.
func New(api MatchAPI, store Store, cfg Config, logger *zap.Logger) *Pipeline {
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = aggregator.DefaultRecentWindow
	}
	if len(cfg.Maps) == 0 {
		cfg.Maps = model.KnownMaps
	}
	if cfg.StoreKey == "" {
		cfg.StoreKey = storage.ComparisonKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		api:       api,
		collector: collector.New(api, collector.Options{Game: cfg.Game, HistoryLimit: cfg.HistoryLimit}, logger),
		store:     store,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger,
	}
}

// Run builds and stores the comparison for matchID. Failing to load the
// match itself aborts the run and leaves the stored comparison untouched;
// per-player and per-match failures only shrink the data.
func (p *Pipeline) Run(ctx context.Context, matchID string) (*model.StoredComparison, error) {
	log := p.logger.With(zap.String("match_id", matchID))
	now := p.now()
	threshold := aggregator.RecentlyThreshold(now, p.cfg.RecentWindow)

	match, err := p.api.GetMatch(ctx, matchID)
	if err != nil {
		log.Error("could not fetch match", zap.Error(err))
		return nil, fmt.Errorf("fetch match %s: %w", matchID, err)
	}
	factions, err := match.Factions()
	if err != nil {
		log.Error("match has no usable rosters", zap.Error(err))
		return nil, fmt.Errorf("match %s: %w", matchID, err)
	}

	var histories [2][]collector.PlayerHistory
	var g errgroup.Group
	for i, f := range factions {
		i, f := i, f
		g.Go(func() error {
			histories[i] = p.collector.Collect(ctx, f.Identities())
			return nil
		})
	}
	_ = g.Wait()

	out := &model.StoredComparison{MatchID: matchID, GeneratedAt: now.UTC()}
	for i, f := range factions {
		faction := aggregator.ReduceFaction(histories[i], threshold)
		out.Teams[i] = model.TeamTable{
			TeamName: f.Name,
			MapTable: aggregator.BuildMapTable(p.cfg.Maps, faction),
		}
		log.Info("faction aggregated",
			zap.String("team", f.Name),
			zap.Int("players", len(faction)),
			zap.Int("matches", countSucceeded(histories[i])))
	}

	if err := p.store.SaveComparison(ctx, p.cfg.StoreKey, *out); err != nil {
		log.Error("could not store comparison", zap.Error(err))
		return nil, fmt.Errorf("store comparison: %w", err)
	}
	return out, nil
}

func countSucceeded(histories []collector.PlayerHistory) int {
	n := 0
	for _, h := range histories {
		n += h.Succeeded()
	}
	return n
}
