package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-smartban/internal/storage"
)

var (
	dropAll   bool
	dropForce bool
)

// dropCmd forgets the stored comparison, or the whole database with --all.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Forget the stored comparison",
	Long: `Remove the stored comparison so 'smartban show' reports nothing until the
next 'smartban compare'. With --all the SQLite database file itself is deleted.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVar(&dropAll, "all", false, "delete the database file instead of the stored comparison")
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt for --all")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !dropAll {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Delete(cmd.Context(), storage.ComparisonKey); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Stored comparison cleared.")
		return nil
	}

	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --all --force to confirm.\n")
		return nil
	}
	removed := 0
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("remove %s: %w", p, err)
		}
		removed++
	}
	if removed == 0 {
		fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}
