package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-smartban/internal/model"
	"github.com/pable/go-cs-smartban/internal/report"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List the map pool used for comparisons",
	Long:  "List the maps every comparison is built over, in table order. Matches on other maps are ignored.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report.PrintKnownMaps(os.Stdout, model.KnownMaps)
		return nil
	},
}
