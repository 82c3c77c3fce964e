package cmd

import (
	"fmt"
	"time"

	units "github.com/docker/go-units"
	"github.com/pbhenson/icinga-plugins/internal/db"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent journaled check results",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getDatabasePath(cmd)
		if path == "" {
			return fmt.Errorf("no result journal path given (use --database)")
		}
		limit, _ := cmd.Flags().GetInt("limit")

		ctx := cmd.Context()
		database, err := db.Connect(ctx, path)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.Init(ctx); err != nil {
			return err
		}

		records, err := database.RecentResults(ctx, limit)
		if err != nil {
			return err
		}
		for _, rec := range records {
			age := units.HumanDuration(time.Since(rec.CreatedAt)) + " ago"
			fmt.Printf("%-16s %-8s %s\n", age, rec.Severity, rec.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Maximum entries to list")
}
