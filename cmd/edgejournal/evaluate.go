package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yourusername/edge-journal/internal/evaluation"
	"github.com/yourusername/edge-journal/internal/service"
)

var evalOpts struct {
	source profileSource
	format string
	runs   int
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Show the status of a funded-account evaluation",
	Example: `  edgejournal evaluate --profile 9b1d...
  edgejournal evaluate --profile-file profiles/apex-50k.yaml --account 3f0c...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(evalOpts.format); err != nil {
			return err
		}
		result, err := runEvaluation(cmd.Context())
		if err != nil {
			return err
		}
		if evalOpts.format == formatJSON {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		return printEvaluation(cmd.OutOrStdout(), result)
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Project the outcome of a funded-account evaluation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(evalOpts.format); err != nil {
			return err
		}
		result, err := runPrediction(cmd.Context())
		if err != nil {
			return err
		}
		if evalOpts.format == formatJSON {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		if err := printEvaluation(cmd.OutOrStdout(), &result.ProfileEvaluation); err != nil {
			return err
		}
		return printPrediction(cmd.OutOrStdout(), result.Prediction)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{evaluateCmd, predictCmd} {
		f := cmd.Flags()
		f.StringVar(&evalOpts.source.id, "profile", "", "Stored profile id (UUID)")
		f.StringVar(&evalOpts.source.file, "profile-file", "", "Profile YAML file")
		f.StringVar(&evalOpts.source.account, "account", "", "Account id for --profile-file (overrides the file)")
		f.StringVarP(&evalOpts.format, "format", "f", formatText, "Output format: text or json")
	}
	predictCmd.Flags().IntVar(&evalOpts.runs, "runs", 0, "Simulation runs (default from config)")
}

func runEvaluation(ctx context.Context) (*service.ProfileEvaluation, error) {
	if err := evalOpts.source.validate(); err != nil {
		return nil, err
	}
	if evalOpts.source.file != "" {
		profile, err := evalOpts.source.load()
		if err != nil {
			return nil, err
		}
		return analytic.EvaluateWithProfile(ctx, profile)
	}
	id, err := uuid.Parse(evalOpts.source.id)
	if err != nil {
		return nil, fmt.Errorf("invalid profile id %q: %w", evalOpts.source.id, err)
	}
	return analytic.EvaluateProfile(ctx, id)
}

func runPrediction(ctx context.Context) (*service.ProfilePrediction, error) {
	if err := evalOpts.source.validate(); err != nil {
		return nil, err
	}
	if evalOpts.source.file != "" {
		profile, err := evalOpts.source.load()
		if err != nil {
			return nil, err
		}
		return analytic.PredictWithProfile(ctx, profile, evalOpts.runs)
	}
	id, err := uuid.Parse(evalOpts.source.id)
	if err != nil {
		return nil, fmt.Errorf("invalid profile id %q: %w", evalOpts.source.id, err)
	}
	return analytic.PredictProfile(ctx, id, evalOpts.runs)
}

func printEvaluation(w io.Writer, result *service.ProfileEvaluation) error {
	s := result.State
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Evaluation\t%s (%s)\n", result.Profile.Name, result.Profile.Firm)
	fmt.Fprintf(tw, "Status\t%s\n", s.Status)
	if s.FailReason != "" {
		fmt.Fprintf(tw, "Reason\t%s\n", s.FailReason)
	}
	fmt.Fprintf(tw, "Cumulative P&L\t%.2f of %.2f target (%.1f%%)\n", s.CumPnL, s.ProfitTarget, s.TargetProgress)
	fmt.Fprintf(tw, "Equity\t%.2f (high %.2f)\n", s.CurrentEquity, s.EquityHigh)
	fmt.Fprintf(tw, "Drawdown\t%.2f of %.2f allowed (%.1f%%), worst %.2f\n",
		s.TrailingDD, s.MaxDrawdown, s.DrawdownProgress, s.MaxTrailingDD)
	fmt.Fprintf(tw, "Today\t%.2f of %.2f daily limit (%.1f%%)\n", s.TodayPnL, s.DailyLossLimit, s.DailyProgress)
	fmt.Fprintf(tw, "Days\t%d traded, %d calendar, %s remaining\n", s.DaysTraded, s.CalendarDays, daysRemaining(s.DaysRemaining))
	return tw.Flush()
}

func printPrediction(w io.Writer, p evaluation.Prediction) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw)
	if p.Insufficient {
		fmt.Fprintf(tw, "Projection\tnot enough trading history (%d days with P&L)\n", p.Samples)
		return tw.Flush()
	}
	fmt.Fprintf(tw, "Projection\t%d runs over %d days, %s confidence\n", p.Runs, p.HorizonDays, p.Confidence)
	fmt.Fprintf(tw, "Pass / Fail / Open\t%.1f%% / %.1f%% / %.1f%%\n", p.PassRate, p.FailRate, p.ActiveRate)
	if p.AvgDaysToPass > 0 {
		fmt.Fprintf(tw, "Avg days to pass\t%.1f\n", p.AvgDaysToPass)
	}
	fmt.Fprintf(tw, "Final P&L p10 / median / p90\t%.2f / %.2f / %.2f\n", p.FinalPnL.P10, p.FinalPnL.Median, p.FinalPnL.P90)
	return tw.Flush()
}

func daysRemaining(days int) string {
	if days == evaluation.UnlimitedDays {
		return "unlimited"
	}
	return fmt.Sprintf("%d", days)
}
