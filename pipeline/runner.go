// Package pipeline wires the five attribution stages into one
// synchronous batch run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"attrib/artifact"
	"attrib/attribution"
	"attrib/dataset"
	"attrib/journey"
	"attrib/pkg/id"
	"attrib/reporting"
	"attrib/store"
)

// Runner drives one full pipeline run: assemble, build journeys,
// attribute, aggregate, derive metrics. Stages run strictly in order
// and each fully materializes before the next starts.
type Runner struct {
	Provider store.Provider
	Sink     store.Sink
	Weights  attribution.WeightTable

	// JourneysPath is the journey snapshot consumed back in by the
	// attribution stage; ReportPath is the terminal report file.
	JourneysPath string
	ReportPath   string

	Window journey.Window
	Log    *slog.Logger
}

// Result summarizes a completed run.
type Result struct {
	RunID       string
	Sessions    int
	Costs       int
	Conversions int
	Touchpoints int
	Credited    int
	ReportRows  int
	Elapsed     time.Duration
}

// Run executes the pipeline. Structural failures (unreadable inputs,
// malformed timestamps, store errors) abort with nothing committed;
// missing optional data flows through as nulls and zeros.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.Provider == nil {
		return Result{}, fmt.Errorf("pipeline: Provider is required")
	}
	if r.Sink == nil {
		return Result{}, fmt.Errorf("pipeline: Sink is required")
	}
	if r.JourneysPath == "" || r.ReportPath == "" {
		return Result{}, fmt.Errorf("pipeline: JourneysPath and ReportPath are required")
	}
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	res := Result{RunID: id.New()}
	log = log.With("run_id", res.RunID)
	started := time.Now()

	sessions, err := r.Provider.Sessions(ctx)
	if err != nil {
		return res, fmt.Errorf("read sessions: %w", err)
	}
	costs, err := r.Provider.Costs(ctx)
	if err != nil {
		return res, fmt.Errorf("read session costs: %w", err)
	}
	conversions, err := r.Provider.Conversions(ctx)
	if err != nil {
		return res, fmt.Errorf("read conversions: %w", err)
	}
	res.Sessions = len(sessions)
	res.Costs = len(costs)
	res.Conversions = len(conversions)
	log.Info("inputs loaded",
		"sessions", res.Sessions, "costs", res.Costs, "conversions", res.Conversions)

	assembled := dataset.Assemble(sessions, costs, conversions)

	builder := journey.Builder{Window: r.Window}
	touchpoints, err := builder.Build(assembled)
	if err != nil {
		return res, err
	}
	if err := artifact.WriteJourneys(r.JourneysPath, touchpoints); err != nil {
		return res, err
	}
	log.Info("journeys built", "rows", len(assembled), "touchpoints", len(touchpoints))

	// Attribution reads the snapshot back rather than the in-memory
	// slice, so it stays re-runnable against a persisted artifact.
	reloaded, err := artifact.ReadJourneys(r.JourneysPath)
	if err != nil {
		return res, err
	}
	res.Touchpoints = len(reloaded)

	credits := attribution.Assign(reloaded, r.Weights)
	if err := r.Sink.ReplaceCredits(ctx, credits); err != nil {
		return res, fmt.Errorf("write attribution_customer_journey: %w", err)
	}
	res.Credited = len(credits)
	log.Info("credit assigned", "touchpoints", res.Credited)

	rows := reporting.Aggregate(sessions, costs, credits, conversions)
	if err := r.Sink.ReplaceChannelReport(ctx, rows); err != nil {
		return res, fmt.Errorf("write channel_reporting: %w", err)
	}

	report := reporting.WithMetrics(rows)
	if err := artifact.WriteReport(r.ReportPath, report); err != nil {
		return res, err
	}
	res.ReportRows = len(report)
	res.Elapsed = time.Since(started)
	log.Info("run complete", "report_rows", res.ReportRows, "elapsed", res.Elapsed)

	return res, nil
}
