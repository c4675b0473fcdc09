package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"attrib/attribution"
	"attrib/config"
	"attrib/pipeline"
	"attrib/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the attribution pipeline from a config file",
	Long: `Run one full attribution pass: load sessions, costs, and
conversions from the store, build journeys, assign IHC credit, write
the attribution and channel reporting tables, and export the final
report CSV.

Example:
  attrib run --config attrib.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if v, err := st.Version(ctx); err == nil {
		slog.Info("store connected", "driver", cfg.Store.Driver, "version", v)
	}

	weights, err := attribution.LoadWeights(cfg.Files.Weights)
	if err != nil {
		return err
	}
	slog.Info("channel weights loaded", "channels", len(weights))

	runner := &pipeline.Runner{
		Provider:     st,
		Sink:         st,
		Weights:      weights,
		JourneysPath: cfg.Files.Journeys,
		ReportPath:   cfg.Files.Report,
		Window:       cfg.Pipeline.Window,
		Log:          slog.Default(),
	}

	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Done. run=%s sessions=%d conversions=%d touchpoints=%d report_rows=%d elapsed=%s\n",
		res.RunID, res.Sessions, res.Conversions, res.Touchpoints, res.ReportRows, res.Elapsed)
	return nil
}
