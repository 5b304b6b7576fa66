package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pable/go-cs-smartban/internal/pipeline"
)

// watchCmd consumes navigation events (room URLs, one per line) and keeps the
// stored comparison in sync with the most recent room.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the comparison for each room URL read from stdin",
	Long: `Reads FACEIT room URLs or match ids from stdin, one per line, as a browser
would report page navigations. Each new match is processed in the background.
A line naming a match that is still being processed, or that was the last one
processed, is ignored. Runs are never cancelled: if runs for two different
matches overlap, whichever finishes last is the stored comparison.

Example:
  tail -f ~/faceit-navigation.log | smartban watch`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := newPipeline(db)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var (
		trig pipeline.Trigger
		wg   sync.WaitGroup
	)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		matchID, ok := pipeline.MatchIDFromURL(scanner.Text())
		if !ok {
			logger.Debug("ignoring navigation", zap.String("line", scanner.Text()))
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := pipeline.Handle(ctx, p, &trig, matchID)
			if err != nil || out == nil {
				return
			}
			fmt.Fprintf(os.Stdout, "stored comparison for %s: %s vs %s\n",
				out.MatchID, out.Teams[0].TeamName, out.Teams[1].TeamName)
		}()
	}
	wg.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}
