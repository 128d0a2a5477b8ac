package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"glint/internal/config"
	"glint/internal/presentation"
	"glint/internal/store"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored review cycles",
	Long: `List past review cycles from the history database, newest first.

Every completed analysis is recorded with its source digest, findings,
and summary, so reviews can be compared across runs.

Examples:
  # The last twenty reviews
  glint history

  # Everything, as JSON
  glint history --limit 0 --json | jq '.[].digest'`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"maximum cycles to list (0 lists all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false,
		"print the listing as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	path := cfg.Store.Path
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	if path == "" {
		return fmt.Errorf("no history database path configured")
	}

	db, err := store.NewDB(expandHome(path))
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer func() { _ = db.Close() }()

	cycles, err := db.ReviewRepository().ListRecent(historyLimit)
	if err != nil {
		return fmt.Errorf("listing review cycles: %w", err)
	}

	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	dtos := presentation.FromCycles(cycles)
	if historyJSON {
		return formatter.FormatCyclesJSON(dtos)
	}
	return formatter.FormatCycles(dtos)
}
