package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/edge-journal/internal/analytics"
)

var statsOpts struct {
	account    string
	from       string
	to         string
	format     string
	csvPath    string
	equityPath string
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compute performance statistics for an account",
	Example: `  edgejournal stats --account 3f0c... --from 2024-01-01 --to 2024-03-31
  edgejournal stats --account 3f0c... --format json --csv out/summary.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(statsOpts.format); err != nil {
			return err
		}
		account, err := parseAccount(statsOpts.account)
		if err != nil {
			return err
		}
		start, end, err := parseRange(statsOpts.from, statsOpts.to, settings.Location)
		if err != nil {
			return err
		}

		result, err := analytic.AccountStatistics(cmd.Context(), account, start, end)
		if err != nil {
			return err
		}

		if statsOpts.csvPath != "" {
			if err := analytics.GenerateCSVExport(*result, statsOpts.csvPath); err != nil {
				return fmt.Errorf("failed to write CSV export: %w", err)
			}
			logger.WithField("path", statsOpts.csvPath).Info("CSV export written")
		}
		if statsOpts.equityPath != "" {
			if err := analytics.WriteEquityCurveCSV(result.EquityCurve, statsOpts.equityPath); err != nil {
				return fmt.Errorf("failed to write equity curve: %w", err)
			}
			logger.WithFields(logrus.Fields{
				"path":   statsOpts.equityPath,
				"points": len(result.EquityCurve),
			}).Info("Equity curve written")
		}

		if statsOpts.format == formatJSON {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), analytics.GenerateConsoleReport(*result))
		return err
	},
}

func init() {
	f := statsCmd.Flags()
	f.StringVar(&statsOpts.account, "account", "", "Account id (UUID)")
	f.StringVar(&statsOpts.from, "from", "", "First trade date, YYYY-MM-DD")
	f.StringVar(&statsOpts.to, "to", "", "Last trade date, YYYY-MM-DD (inclusive)")
	f.StringVarP(&statsOpts.format, "format", "f", formatText, "Output format: text or json")
	f.StringVar(&statsOpts.csvPath, "csv", "", "Also write a metrics CSV to this path")
	f.StringVar(&statsOpts.equityPath, "equity-csv", "", "Also write the equity curve CSV to this path")
	_ = statsCmd.MarkFlagRequired("account")
}
