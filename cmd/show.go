package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-smartban/internal/model"
	"github.com/pable/go-cs-smartban/internal/report"
	"github.com/pable/go-cs-smartban/internal/storage"
)

var (
	showMap   string
	showShare bool
)

// showCmd prints the stored comparison without touching the API.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored comparison of the last processed match",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showMap, "map", "", "show every stat of one map (name or guid, e.g. Mirage or de_mirage)")
	showCmd.Flags().BoolVar(&showShare, "share", false, "show each team's share of games per map")
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := db.LoadComparison(cmd.Context(), storage.ComparisonKey)
	if err != nil {
		return fmt.Errorf("load comparison: %w", err)
	}
	if c == nil {
		fmt.Fprintln(os.Stdout, "No comparison stored yet. Run 'smartban compare <room-url>' first.")
		return nil
	}

	if showMap != "" {
		idx := mapIndex(c.Teams[0].MapTable, showMap)
		if idx < 0 {
			return fmt.Errorf("unknown map %q", showMap)
		}
		report.PrintComparisonHeader(os.Stdout, *c)
		return report.PrintMapDetail(os.Stdout, c.Teams, idx)
	}

	printComparison(*c)
	if showShare {
		report.PrintPlayShare(os.Stdout, c.Teams)
	}
	return nil
}

// mapIndex finds a row by display name or guid, case-insensitively.
func mapIndex(rows []model.MapTableRow, query string) int {
	for i, r := range rows {
		if strings.EqualFold(r.Name, query) || strings.EqualFold(r.ID, query) {
			return i
		}
	}
	return -1
}
