package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pbhenson/icinga-plugins/internal/probe"
	"github.com/pbhenson/icinga-plugins/internal/probes"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version and exit")
	rootCmd.Flags().Bool("describe", false, "Output built-in probe descriptions as JSON array")

	// Override Run to handle flags
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("icinga-plugins version %s\n", Version)
			return
		}
		if describe, _ := cmd.Flags().GetBool("describe"); describe {
			printDescriptions()
			return
		}
		cmd.Help()
	}
}

func printDescriptions() {
	descs := probes.GetAllDescriptions()
	json.NewEncoder(os.Stdout).Encode(descs)
}

func outputResults(results []probe.Result) {
	json.NewEncoder(os.Stdout).Encode(results)
}
