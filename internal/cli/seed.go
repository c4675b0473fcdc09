package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"attrib/config"
	"attrib/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load input CSV exports into the store",
	Long: `Seed the conversions, session_sources, and session_costs tables
from CSV exports. Any flag left empty skips that table.

Example:
  attrib seed --config attrib.yaml --conversions conversions.csv \
    --sessions session_sources.csv --costs session_costs.csv`,
	RunE: runSeed,
}

var (
	seedConfigPath  string
	seedConversions string
	seedSessions    string
	seedCosts       string
)

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVarP(&seedConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	seedCmd.Flags().StringVar(&seedConversions, "conversions", "", "conversions CSV (conv_id,user_id,conv_time,revenue)")
	seedCmd.Flags().StringVar(&seedSessions, "sessions", "", "session_sources CSV")
	seedCmd.Flags().StringVar(&seedCosts, "costs", "", "session_costs CSV (session_id,cost)")
	seedCmd.MarkFlagRequired("config")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(seedConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := store.Seed(cmd.Context(), st, store.SeedFiles{
		Conversions: seedConversions,
		Sessions:    seedSessions,
		Costs:       seedCosts,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Seeded. conversions=%d sessions=%d costs=%d\n",
		stats.Conversions, stats.Sessions, stats.Costs)
	return nil
}
