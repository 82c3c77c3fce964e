package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pbhenson/icinga-plugins/internal/config"
	"github.com/pbhenson/icinga-plugins/internal/db"
	"github.com/pbhenson/icinga-plugins/internal/probe"
	"github.com/pbhenson/icinga-plugins/internal/probes/zpool"
	"github.com/spf13/cobra"
)

var zpoolCmd = &cobra.Command{
	Use:   zpool.Name,
	Short: "Check storage pool health, capacity, scrub age, and error counters",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)

		warnings, _ := cmd.Flags().GetStringArray("warning")
		criticals, _ := cmd.Flags().GetStringArray("critical")

		// Threshold overrides are validated before any evaluation begins.
		registry := zpool.NewRegistry()
		for _, triple := range warnings {
			if err := registry.SetWarning(triple); err != nil {
				exitUnknown(err)
			}
		}
		for _, triple := range criticals {
			if err := registry.SetCritical(triple); err != nil {
				exitUnknown(err)
			}
		}

		cfg := config.NewZpoolConfig()
		cfg.Include, _ = cmd.Flags().GetStringSlice("include")
		cfg.Exclude, _ = cmd.Flags().GetStringSlice("exclude")
		cfg.Database = getDatabasePath(cmd)

		results, err := zpool.Check(cfg, registry)
		if err != nil {
			exitUnknown(err)
		}

		if cfg.Database != "" {
			recordResults(cfg.Database, results)
		}

		overall := probe.OK
		messages := make([]string, 0, len(results))
		for _, result := range results {
			overall = probe.Max(overall, result.Severity)
			messages = append(messages, result.Message)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			outputResults(results)
		} else {
			fmt.Printf("ZPOOL %s - %s\n", overall, strings.Join(messages, " / "))
		}
		os.Exit(overall.ExitCode())
	},
}

func exitUnknown(err error) {
	fmt.Printf("ZPOOL %s - %v\n", probe.Unknown, err)
	os.Exit(probe.Unknown.ExitCode())
}

// recordResults appends the run to the journal. Journal failures must not
// change the plugin outcome, so they are only logged.
func recordResults(path string, results []probe.Result) {
	ctx := context.Background()
	database, err := db.Connect(ctx, path)
	if err != nil {
		slog.Warn("result journal unavailable", "error", err)
		return
	}
	defer database.Close()
	if err := database.Init(ctx); err != nil {
		slog.Warn("result journal init failed", "error", err)
		return
	}
	for _, result := range results {
		if err := database.RecordResult(ctx, result.Pool, result.Severity.String(), result.Message); err != nil {
			slog.Warn("result journal write failed", "error", err)
			return
		}
	}
}

func init() {
	zpoolCmd.GroupID = probeGroupID
	rootCmd.AddCommand(zpoolCmd)

	zpoolCmd.Flags().StringSlice("include", nil, "Pool names to evaluate (default all)")
	zpoolCmd.Flags().StringSlice("exclude", nil, "Pool names to skip")
	zpoolCmd.Flags().StringArray("warning", nil, "Warning threshold override as pool.category.value")
	zpoolCmd.Flags().StringArray("critical", nil, "Critical threshold override as pool.category.value")
	zpoolCmd.Flags().Bool("json", false, "Output results as JSON instead of the plugin line")
}
