package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-smartban/internal/faceit"
	"github.com/pable/go-cs-smartban/internal/model"
	"github.com/pable/go-cs-smartban/internal/pipeline"
	"github.com/pable/go-cs-smartban/internal/ranker"
	"github.com/pable/go-cs-smartban/internal/report"
	"github.com/pable/go-cs-smartban/internal/storage"
)

// compareQuiet suppresses the printed tables; the comparison is still stored.
var compareQuiet bool

// compareCmd builds, stores and prints the comparison for one match room.
var compareCmd = &cobra.Command{
	Use:   "compare <match-id | room-url>",
	Short: "Compare both teams of a FACEIT match map by map",
	Long: `Fetches the last 20 matches of every player in the room, aggregates them
per map for each team, stores the result as the current comparison and prints it.

Examples:
  smartban compare 1-8c3a2f0e-1234-4d2b-9a55-0123456789ab
  smartban compare https://www.faceit.com/en/csgo/room/1-8c3a2f0e-1234-4d2b-9a55-0123456789ab`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().BoolVarP(&compareQuiet, "quiet", "q", false, "store the comparison without printing it")
}

func runCompare(cmd *cobra.Command, args []string) error {
	matchID, ok := pipeline.MatchIDFromURL(args[0])
	if !ok {
		return fmt.Errorf("not a FACEIT match id or room URL: %q", args[0])
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := newPipeline(db)
	if err != nil {
		return err
	}

	out, err := p.Run(cmd.Context(), matchID)
	if err != nil {
		return err
	}
	if !compareQuiet {
		printComparison(*out)
	}
	return nil
}

// openStore opens the artifact database, creating its directory if needed.
func openStore() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// newPipeline wires the FACEIT client and the store from loaded config.
func newPipeline(db *storage.DB) (*pipeline.Pipeline, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	client := faceit.NewClient(cfg.APIKey, faceit.WithBaseURL(cfg.BaseURL))
	return pipeline.New(client, db, pipeline.Config{
		Game:         cfg.HistoryGame,
		HistoryLimit: cfg.HistoryLimit,
		RecentWindow: cfg.RecentWindow,
	}, logger), nil
}

func printComparison(c model.StoredComparison) {
	report.PrintComparisonHeader(os.Stdout, c)
	report.PrintMapComparison(os.Stdout, c.Teams)
	report.PrintHighlights(os.Stdout, c.Teams, ranker.Highlight(c.Teams))
}
